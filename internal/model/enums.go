package model

import (
	"database/sql/driver"
	"fmt"
)

type enum interface {
	~string
	Valid() bool
}

func parseEnum[T enum](kind, s string) (T, error) {
	v := T(s)
	if !v.Valid() {
		return v, fmt.Errorf("invalid %s %q", kind, s)
	}
	return v, nil
}

func scanEnum[T enum](kind string, dst *T, src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", src, kind)
	}
	parsed, err := parseEnum[T](kind, s)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func valueEnum[T enum](kind string, v T) (driver.Value, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid %s %q", kind, string(v))
	}
	return string(v), nil
}

// TransactionType is the kind of a stock ledger row.
type TransactionType string

const (
	TransactionPurchase    TransactionType = "purchase"
	TransactionConsumption TransactionType = "consumption"
	TransactionAdjustment  TransactionType = "adjustment"
)

func ParseTransactionType(s string) (TransactionType, error) {
	return parseEnum[TransactionType]("transaction type", s)
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionConsumption, TransactionAdjustment:
		return true
	}
	return false
}

func (t TransactionType) String() string { return string(t) }

func (t *TransactionType) Scan(src any) error { return scanEnum("transaction type", t, src) }

func (t TransactionType) Value() (driver.Value, error) { return valueEnum("transaction type", t) }

func (t *TransactionType) UnmarshalText(b []byte) error {
	v, err := ParseTransactionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ReservationStatus tracks how much of a reservation production has drawn down.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationPartial  ReservationStatus = "partial"
	ReservationConsumed ReservationStatus = "consumed"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	return parseEnum[ReservationStatus]("reservation status", s)
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationPartial, ReservationConsumed:
		return true
	}
	return false
}

func (s ReservationStatus) String() string { return string(s) }

func (s *ReservationStatus) Scan(src any) error { return scanEnum("reservation status", s, src) }

func (s ReservationStatus) Value() (driver.Value, error) { return valueEnum("reservation status", s) }

func (s *ReservationStatus) UnmarshalText(b []byte) error {
	v, err := ParseReservationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type AlertLevel string

const (
	AlertHealthy  AlertLevel = "healthy"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

func ParseAlertLevel(s string) (AlertLevel, error) {
	return parseEnum[AlertLevel]("alert level", s)
}

func (l AlertLevel) Valid() bool {
	switch l {
	case AlertHealthy, AlertWarning, AlertCritical:
		return true
	}
	return false
}

func (l AlertLevel) String() string { return string(l) }

func (l *AlertLevel) Scan(src any) error { return scanEnum("alert level", l, src) }

func (l AlertLevel) Value() (driver.Value, error) { return valueEnum("alert level", l) }

func (l *AlertLevel) UnmarshalText(b []byte) error {
	v, err := ParseAlertLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

type AlertType string

const (
	AlertTypeLowStock      AlertType = "low_stock"
	AlertTypeReorderNeeded AlertType = "reorder_needed"
	AlertTypeOutOfStock    AlertType = "out_of_stock"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeLowStock, AlertTypeReorderNeeded, AlertTypeOutOfStock:
		return true
	}
	return false
}

func (t AlertType) String() string { return string(t) }

func (t *AlertType) Scan(src any) error { return scanEnum("alert type", t, src) }

func (t AlertType) Value() (driver.Value, error) { return valueEnum("alert type", t) }

// StockStatus is the forecaster's classification of a material.
type StockStatus string

const (
	StockHealthy    StockStatus = "healthy"
	StockLow        StockStatus = "low"
	StockCritical   StockStatus = "critical"
	StockOutOfStock StockStatus = "out_of_stock"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StockHealthy, StockLow, StockCritical, StockOutOfStock:
		return true
	}
	return false
}

func (s StockStatus) String() string { return string(s) }

// Level maps a stock status onto the alert severity scale.
func (s StockStatus) Level() AlertLevel {
	switch s {
	case StockOutOfStock, StockCritical:
		return AlertCritical
	case StockLow:
		return AlertWarning
	}
	return AlertHealthy
}

// AlertType returns the alert category raised for s. Healthy materials raise none.
func (s StockStatus) AlertType() (AlertType, bool) {
	switch s {
	case StockOutOfStock:
		return AlertTypeOutOfStock, true
	case StockCritical:
		return AlertTypeReorderNeeded, true
	case StockLow:
		return AlertTypeLowStock, true
	}
	return "", false
}

// StatusReason names the classification rule that produced a StockStatus.
type StatusReason string

const (
	ReasonNone                   StatusReason = ""
	ReasonOutOfStock             StatusReason = "out_of_stock"
	ReasonBelowMinimum           StatusReason = "below_minimum"
	ReasonDepletesWithinLeadTime StatusReason = "depletes_within_lead_time"
	ReasonBelowReorderPoint      StatusReason = "below_reorder_point"
)

func (r StatusReason) String() string { return string(r) }

// OrderStatus values come from the order subsystem and are not validated here.
type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderDesign    OrderStatus = "design"
	OrderPrinting  OrderStatus = "printing"
	OrderCutting   OrderStatus = "cutting"
	OrderReady     OrderStatus = "ready"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PendingOrderStatuses are the statuses whose orders still need materials.
var PendingOrderStatuses = []OrderStatus{OrderNew, OrderDesign, OrderPrinting, OrderCutting}

// RecalculableOrderStatuses are the statuses whose reservations may be rebuilt
// from scratch because production has not started.
var RecalculableOrderStatuses = []OrderStatus{OrderNew, OrderDesign}
