package lifecycle

import (
	"context"
	"time"

	alertDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

// UseCase reacts to order events raised by the order subsystem. Hooks run
// synchronously and are not retried.
type UseCase interface {
	// OnOrderCreated reserves materials for a new order. A shortage never fails
	// the hook; it comes back as a warning on the result.
	OnOrderCreated(ctx context.Context, orderID string) (*dto.CreatedResult, error)
	OnOrderStatusChanged(ctx context.Context, orderID string, oldStatus, newStatus model.OrderStatus) (*dto.StatusChangeResult, error)
	OnOrderDeleted(ctx context.Context, orderID string) (int, error)
	// RecalculateAllReservations rebuilds the reservations of every order that
	// has not entered production.
	RecalculateAllReservations(ctx context.Context) (*dto.RecalculateResult, error)
	// SweepAlerts refreshes every alert unless another instance is already
	// sweeping.
	SweepAlerts(ctx context.Context) (*alertDTO.RefreshResult, error)
}

// Locker is a cluster-wide mutex for maintenance jobs.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
