package reservation

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type Repository interface {
	ListByOrder(ctx context.Context, orderID string) ([]model.ReservationLine, error)
	// MaterialIDsByOrder is an unlocked read used to decide which material rows
	// to lock before touching the order's reservations.
	MaterialIDsByOrder(ctx context.Context, orderID string) ([]string, error)

	// The locking reads below must run inside a transaction, after the
	// affected material rows are locked.
	LockByOrder(ctx context.Context, orderID string) ([]model.Reservation, error)
	LockForOrderMaterial(ctx context.Context, orderID, materialID string) (*model.Reservation, error)

	Upsert(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, r *model.Reservation) error
	DeleteForOrderMaterial(ctx context.Context, orderID, materialID string) error
	DeleteByOrder(ctx context.Context, orderID string) (int, error)
}
