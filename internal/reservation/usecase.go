package reservation

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type UseCase interface {
	// Reserve reserves every material the order needs or nothing at all.
	Reserve(ctx context.Context, orderID string) ([]model.Reservation, error)
	// Release deletes the order's reservations and returns how many were removed.
	Release(ctx context.Context, orderID string) (int, error)
	// DrawDown consumes the outstanding part of every pending or partial reservation.
	DrawDown(ctx context.Context, orderID string) ([]model.Reservation, error)
	// ForceFinalConsumption consumes whatever is still outstanding on any reservation.
	ForceFinalConsumption(ctx context.Context, orderID string) ([]model.Reservation, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.ReservationLine, error)
	// PendingOrdersStatus reports the reservation totals of every order that
	// still needs materials.
	PendingOrdersStatus(ctx context.Context) ([]model.OrderInventoryStatus, error)
}
