package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &o,
		`SELECT id, order_number, status FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return r.ListItemsForOrders(ctx, []string{orderID})
}

func (r *PGRepository) ListItemsForOrders(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []model.OrderItem{}, nil
	}
	var items []model.OrderItem
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, `
        SELECT oi.order_id, oi.product_id, p.name AS product_name, oi.quantity
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = ANY($1)
        ORDER BY oi.order_id, oi.product_id
    `, pq.Array(orderIDs))
	return items, err
}

func (r *PGRepository) ListIDsByStatus(ctx context.Context, statuses []model.OrderStatus) ([]string, error) {
	var ids []string
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ids,
		`SELECT id FROM orders WHERE status = ANY($1) ORDER BY created_at, id`, pq.Array(statusNames(statuses)))
	return ids, err
}

func (r *PGRepository) InventoryStatus(ctx context.Context, statuses []model.OrderStatus) ([]model.OrderInventoryStatus, error) {
	var items []model.OrderInventoryStatus
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, `
        SELECT
            o.id AS order_id,
            o.order_number,
            o.status,
            COUNT(omr.id) AS materials_count,
            COALESCE(SUM(omr.quantity_reserved), 0) AS total_reserved,
            COALESCE(SUM(omr.quantity_consumed), 0) AS total_consumed,
            COALESCE(BOOL_AND(m.available_stock >= 0), false) AS can_fulfill
        FROM orders o
        LEFT JOIN order_material_reservations omr ON omr.order_id = o.id
        LEFT JOIN materials m ON m.id = omr.material_id
        WHERE o.status = ANY($1)
        GROUP BY o.id, o.order_number, o.status, o.created_at
        ORDER BY o.created_at, o.id
    `, pq.Array(statusNames(statuses)))
	return items, err
}

func statusNames(statuses []model.OrderStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}
