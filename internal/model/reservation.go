package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID               string            `db:"id" json:"id"`
	OrderID          string            `db:"order_id" json:"order_id"`
	MaterialID       string            `db:"material_id" json:"material_id"`
	QuantityReserved decimal.Decimal   `db:"quantity_reserved" json:"quantity_reserved"`
	QuantityConsumed decimal.Decimal   `db:"quantity_consumed" json:"quantity_consumed"`
	Status           ReservationStatus `db:"reservation_status" json:"reservation_status"`
	ReservedAt       time.Time         `db:"reserved_at" json:"reserved_at"`
	ConsumedAt       *time.Time        `db:"consumed_at" json:"consumed_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// Outstanding is the reserved quantity production has not drawn yet.
func (r *Reservation) Outstanding() decimal.Decimal {
	out := r.QuantityReserved.Sub(r.QuantityConsumed)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Draw records qty as consumed and recomputes the status. qty must not exceed
// Outstanding.
func (r *Reservation) Draw(qty decimal.Decimal, at time.Time) {
	r.QuantityConsumed = r.QuantityConsumed.Add(qty)
	r.UpdatedAt = at
	if r.QuantityConsumed.GreaterThanOrEqual(r.QuantityReserved) {
		r.Status = ReservationConsumed
		r.ConsumedAt = &at
		return
	}
	if r.QuantityConsumed.IsPositive() {
		r.Status = ReservationPartial
	}
}

// ReservationLine is a reservation joined with its material name.
type ReservationLine struct {
	Reservation
	MaterialName string `db:"material_name" json:"material_name"`
	UnitType     string `db:"unit_type" json:"unit_type"`
}
