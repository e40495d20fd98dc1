package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListByOrder(ctx context.Context, orderID string) ([]model.ReservationLine, error) {
	var items []model.ReservationLine
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, `
        SELECT omr.*, m.name AS material_name, m.unit_type
        FROM order_material_reservations omr
        JOIN materials m ON m.id = omr.material_id
        WHERE omr.order_id = $1
        ORDER BY m.name
    `, orderID)
	return items, err
}

func (r *PGRepository) MaterialIDsByOrder(ctx context.Context, orderID string) ([]string, error) {
	var ids []string
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ids, `
        SELECT material_id FROM order_material_reservations
        WHERE order_id = $1
        ORDER BY material_id
    `, orderID)
	return ids, err
}

func (r *PGRepository) LockByOrder(ctx context.Context, orderID string) ([]model.Reservation, error) {
	if !postgres.InTx(ctx) {
		return nil, errors.New("LockByOrder requires a transaction")
	}
	var items []model.Reservation
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, `
        SELECT * FROM order_material_reservations
        WHERE order_id = $1
        ORDER BY material_id
        FOR UPDATE
    `, orderID)
	return items, err
}

func (r *PGRepository) LockForOrderMaterial(ctx context.Context, orderID, materialID string) (*model.Reservation, error) {
	if !postgres.InTx(ctx) {
		return nil, errors.New("LockForOrderMaterial requires a transaction")
	}
	var res model.Reservation
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &res, `
        SELECT * FROM order_material_reservations
        WHERE order_id = $1 AND material_id = $2
        FOR UPDATE
    `, orderID, materialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGRepository) Upsert(ctx context.Context, res *model.Reservation) error {
	query := `
        INSERT INTO order_material_reservations (
            id, order_id, material_id, quantity_reserved, quantity_consumed,
            reservation_status, reserved_at, consumed_at, updated_at
        )
        VALUES (
            :id, :order_id, :material_id, :quantity_reserved, :quantity_consumed,
            :reservation_status, :reserved_at, :consumed_at, :updated_at
        )
        ON CONFLICT (order_id, material_id)
        DO UPDATE SET
            quantity_reserved = EXCLUDED.quantity_reserved,
            quantity_consumed = EXCLUDED.quantity_consumed,
            reservation_status = EXCLUDED.reservation_status,
            reserved_at = EXCLUDED.reserved_at,
            consumed_at = EXCLUDED.consumed_at,
            updated_at = EXCLUDED.updated_at
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, res)
	return err
}

func (r *PGRepository) Update(ctx context.Context, res *model.Reservation) error {
	query := `
        UPDATE order_material_reservations
        SET quantity_consumed = :quantity_consumed,
            reservation_status = :reservation_status,
            consumed_at = :consumed_at,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, res)
	return err
}

func (r *PGRepository) DeleteForOrderMaterial(ctx context.Context, orderID, materialID string) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM order_material_reservations WHERE order_id = $1 AND material_id = $2`, orderID, materialID)
	return err
}

func (r *PGRepository) DeleteByOrder(ctx context.Context, orderID string) (int, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM order_material_reservations WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
