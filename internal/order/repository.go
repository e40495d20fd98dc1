package order

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

// Repository is a read-only view over the order subsystem's tables.
type Repository interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ListItemsForOrders(ctx context.Context, orderIDs []string) ([]model.OrderItem, error)
	ListIDsByStatus(ctx context.Context, statuses []model.OrderStatus) ([]string, error)
	// InventoryStatus lists the orders in statuses, oldest first, with totals of
	// their material reservations.
	InventoryStatus(ctx context.Context, statuses []model.OrderStatus) ([]model.OrderInventoryStatus, error)
}
