package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.Material) error {
	query := `
        INSERT INTO materials (
            id, name, description, unit_type,
            current_stock, reserved_stock, min_stock_level, reorder_point, reorder_quantity,
            cost_per_unit, supplier_name, supplier_lead_time_days, is_active,
            created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :unit_type,
            :current_stock, :reserved_stock, :min_stock_level, :reorder_point, :reorder_quantity,
            :cost_per_unit, :supplier_name, :supplier_lead_time_days, :is_active,
            :created_at, :updated_at
        )
    `
	// available_stock is a generated column
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Material, error) {
	var m model.Material
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &m, `SELECT * FROM materials WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Material, error) {
	if len(ids) == 0 {
		return []model.Material{}, nil
	}
	var items []model.Material
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items,
		`SELECT * FROM materials WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	return items, err
}

func (r *PGRepository) LockByIDs(ctx context.Context, ids []string) ([]model.Material, error) {
	if len(ids) == 0 {
		return []model.Material{}, nil
	}
	if !postgres.InTx(ctx) {
		return nil, errors.New("LockByIDs requires a transaction")
	}
	var items []model.Material
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items,
		`SELECT * FROM materials WHERE id = ANY($1) ORDER BY id FOR UPDATE`, pq.Array(ids))
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MaterialFilters) ([]model.Material, int, error) {
	var items []model.Material
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}
	if f.LowStock {
		conditions = append(conditions, "available_stock < reorder_point")
	}
	if f.Search != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	conn := postgres.Conn(ctx, r.DB)

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM materials"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := conn.GetContext(ctx, &count, conn.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM materials" + whereClause + " ORDER BY name"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	query, queryArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	err = conn.SelectContext(ctx, &items, conn.Rebind(query), queryArgs...)
	return items, count, err
}

func (r *PGRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ids,
		`SELECT id FROM materials WHERE is_active = true ORDER BY id`)
	return ids, err
}

func (r *PGRepository) Update(ctx context.Context, in *dto.UpdateMaterialInput) (bool, error) {
	sets := []string{}
	args := map[string]interface{}{"id": in.ID}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = :"+column)
		args[column] = value
	}
	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}
	if in.UnitType != nil {
		set("unit_type", *in.UnitType)
	}
	if in.MinStockLevel != nil {
		set("min_stock_level", *in.MinStockLevel)
	}
	if in.ReorderPoint != nil {
		set("reorder_point", *in.ReorderPoint)
	}
	if in.ReorderQuantity != nil {
		set("reorder_quantity", *in.ReorderQuantity)
	}
	if in.CostPerUnit != nil {
		set("cost_per_unit", *in.CostPerUnit)
	}
	if in.SupplierName != nil {
		set("supplier_name", *in.SupplierName)
	}
	if in.SupplierLeadTimeDays != nil {
		set("supplier_lead_time_days", *in.SupplierLeadTimeDays)
	}
	if in.IsActive != nil {
		set("is_active", *in.IsActive)
	}
	if len(sets) == 0 {
		return false, errors.New("no fields to update")
	}

	query := "UPDATE materials SET " + strings.Join(sets, ", ") + ", updated_at = NOW() WHERE id = :id"
	res, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, args)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) SetStock(ctx context.Context, id string, current, reserved decimal.Decimal) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `
        UPDATE materials
        SET current_stock = $2, reserved_stock = $3, updated_at = NOW()
        WHERE id = $1
    `, id, current, reserved)
	return err
}

func (r *PGRepository) SetLastPurchase(ctx context.Context, id string, price decimal.Decimal, at time.Time) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `
        UPDATE materials
        SET last_purchase_price = $2, last_purchase_date = $3, updated_at = NOW()
        WHERE id = $1
    `, id, price, at)
	return err
}

func (r *PGRepository) InsertTransaction(ctx context.Context, t *model.MaterialTransaction) error {
	query := `
        INSERT INTO material_transactions (
            id, material_id, transaction_type, quantity, stock_before, stock_after,
            order_id, unit_cost, total_cost, supplier_name, purchase_order_number,
            notes, performed_by, created_at
        )
        VALUES (
            :id, :material_id, :transaction_type, :quantity, :stock_before, :stock_after,
            :order_id, :unit_cost, :total_cost, :supplier_name, :purchase_order_number,
            :notes, :performed_by, :created_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.MaterialTransaction, int, error) {
	var items []model.MaterialTransaction
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MaterialID != "" {
		conditions = append(conditions, "material_id = :material_id")
		args["material_id"] = f.MaterialID
	}
	if f.Type != "" {
		conditions = append(conditions, "transaction_type = :transaction_type")
		args["transaction_type"] = string(f.Type)
	}
	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at < :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	conn := postgres.Conn(ctx, r.DB)

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM material_transactions"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := conn.GetContext(ctx, &count, conn.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM material_transactions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	query, queryArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	err = conn.SelectContext(ctx, &items, conn.Rebind(query), queryArgs...)
	return items, count, err
}

func (r *PGRepository) Statistics(ctx context.Context, id string) (*model.MaterialStatistics, error) {
	var s model.MaterialStatistics
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &s, `
        SELECT
            COUNT(*) FILTER (WHERE transaction_type = 'purchase') AS purchase_count,
            COALESCE(SUM(quantity) FILTER (WHERE transaction_type = 'purchase'), 0) AS total_purchased,
            COALESCE(SUM(total_cost) FILTER (WHERE transaction_type = 'purchase'), 0) AS total_purchase_cost,
            COUNT(*) FILTER (WHERE transaction_type = 'consumption') AS consumption_count,
            COALESCE(-SUM(quantity) FILTER (WHERE transaction_type = 'consumption'), 0) AS total_consumed,
            COUNT(*) FILTER (WHERE transaction_type = 'adjustment') AS adjustment_count,
            MAX(created_at) FILTER (WHERE transaction_type = 'purchase') AS last_purchase_at,
            MAX(created_at) FILTER (WHERE transaction_type = 'consumption') AS last_consumed_at
        FROM material_transactions
        WHERE material_id = $1
    `, id)
	if err != nil {
		return nil, err
	}
	s.MaterialID = id
	return &s, nil
}

// ConsumptionStats aggregates consumption rows over the last 7 and 30 days.
// The daily average is the 30-day total spread over 30 days.
func (r *PGRepository) ConsumptionStats(ctx context.Context, ids []string, now time.Time) (map[string]model.ConsumptionStats, error) {
	out := make(map[string]model.ConsumptionStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []model.ConsumptionStats
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, `
        SELECT
            material_id,
            COALESCE(-SUM(quantity) FILTER (WHERE created_at >= $2), 0) AS consumption_last_7_days,
            COALESCE(-SUM(quantity), 0) AS consumption_last_30_days,
            COALESCE(-SUM(quantity), 0) / 30.0 AS avg_daily_consumption
        FROM material_transactions
        WHERE transaction_type = 'consumption'
          AND material_id = ANY($1)
          AND created_at >= $3
        GROUP BY material_id
    `, pq.Array(ids), now.AddDate(0, 0, -7), now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.MaterialID] = row
	}
	return out, nil
}
