// Package apperr holds the typed errors shared by the inventory use cases.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrBusy is returned when a maintenance job is already running elsewhere.
var ErrBusy = errors.New("operation already in progress")

// ValidationError reports a malformed or missing input field. It is returned
// before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientStockError is returned when a consumption exceeds current stock.
type InsufficientStockError struct {
	MaterialID   string
	MaterialName string
	UnitType     string
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %s %s, required %s %s",
		e.MaterialName, e.Available, e.UnitType, e.Requested, e.UnitType)
}

type Shortage struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	UnitType     string          `json:"unit_type"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// InsufficientMaterialError lists every material an order cannot be reserved for.
type InsufficientMaterialError struct {
	OrderID   string
	Shortages []Shortage
}

func (e *InsufficientMaterialError) Error() string {
	names := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		names[i] = fmt.Sprintf("%s (short %s %s)", s.MaterialName, s.Shortfall, s.UnitType)
	}
	return fmt.Sprintf("insufficient materials for order %s: %s", e.OrderID, strings.Join(names, ", "))
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// AsInsufficientMaterial unwraps err into an InsufficientMaterialError.
func AsInsufficientMaterial(err error) (*InsufficientMaterialError, bool) {
	var target *InsufficientMaterialError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
