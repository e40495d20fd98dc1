package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
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

func (r *PGRepository) DeactivateActive(ctx context.Context, materialID string, at time.Time) (*model.InventoryAlert, error) {
	var prev model.InventoryAlert
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &prev, `
        UPDATE inventory_alerts
        SET is_active = false, resolved_at = $2
        WHERE material_id = $1 AND is_active = true
        RETURNING *
    `, materialID, at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &prev, nil
}

func (r *PGRepository) Insert(ctx context.Context, a *model.InventoryAlert) error {
	query := `
        INSERT INTO inventory_alerts (
            id, material_id, material_name, alert_level, alert_type, alert_message,
            recommended_action, current_stock, reserved_stock, available_stock,
            min_stock_level, estimated_depletion_date, days_until_depletion,
            suggested_reorder_quantity, is_active, is_acknowledged, created_at
        )
        VALUES (
            :id, :material_id, :material_name, :alert_level, :alert_type, :alert_message,
            :recommended_action, :current_stock, :reserved_stock, :available_stock,
            :min_stock_level, :estimated_depletion_date, :days_until_depletion,
            :suggested_reorder_quantity, :is_active, :is_acknowledged, :created_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) ActiveMaterialIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ids,
		`SELECT DISTINCT material_id FROM inventory_alerts WHERE is_active = true ORDER BY material_id`)
	return ids, err
}

func (r *PGRepository) ListActive(ctx context.Context, f *dto.ActiveFilters) ([]model.InventoryAlert, error) {
	var items []model.InventoryAlert

	conditions := []string{"is_active = true"}
	args := map[string]interface{}{}
	if f != nil && f.Level != "" {
		conditions = append(conditions, "alert_level = :alert_level")
		args["alert_level"] = string(f.Level)
	}
	if f != nil && f.MaterialID != "" {
		conditions = append(conditions, "material_id = :material_id")
		args["material_id"] = f.MaterialID
	}

	query := `SELECT * FROM inventory_alerts WHERE ` + strings.Join(conditions, " AND ") + `
        ORDER BY
            CASE alert_level WHEN 'critical' THEN 1 WHEN 'warning' THEN 2 ELSE 3 END,
            created_at DESC`

	conn := postgres.Conn(ctx, r.DB)
	query, queryArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, err
	}
	err = conn.SelectContext(ctx, &items, conn.Rebind(query), queryArgs...)
	return items, err
}

func (r *PGRepository) Summary(ctx context.Context) (*model.AlertSummary, error) {
	var s model.AlertSummary
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &s, `
        SELECT
            COUNT(*) FILTER (WHERE alert_level = 'critical') AS critical,
            COUNT(*) FILTER (WHERE alert_level = 'warning') AS warning,
            COUNT(*) FILTER (WHERE is_acknowledged = false) AS unacknowledged,
            COUNT(*) AS total
        FROM inventory_alerts
        WHERE is_active = true
    `)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Acknowledge(ctx context.Context, id, by string, at time.Time) (*model.InventoryAlert, error) {
	var a model.InventoryAlert
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &a, `
        UPDATE inventory_alerts
        SET is_acknowledged = true, acknowledged_at = $2, acknowledged_by = $3
        WHERE id = $1
        RETURNING *
    `, id, at, by)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
