package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
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

func (r *PGRepository) Upsert(ctx context.Context, e *model.BOMEntry) error {
	query := `
        INSERT INTO product_materials (
            id, product_id, material_id, quantity_per_unit, waste_percentage, notes,
            created_at, updated_at
        )
        VALUES (
            :id, :product_id, :material_id, :quantity_per_unit, :waste_percentage, :notes,
            NOW(), NOW()
        )
        ON CONFLICT (product_id, material_id)
        DO UPDATE SET
            quantity_per_unit = EXCLUDED.quantity_per_unit,
            waste_percentage = EXCLUDED.waste_percentage,
            notes = EXCLUDED.notes,
            updated_at = NOW()
    `
	// effective_quantity is a generated column
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) Get(ctx context.Context, productID, materialID string) (*model.BOMEntry, error) {
	var e model.BOMEntry
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &e,
		`SELECT * FROM product_materials WHERE product_id = $1 AND material_id = $2`, productID, materialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) Update(ctx context.Context, in *dto.UpdateEntryInput) (bool, error) {
	sets := []string{}
	args := map[string]interface{}{"product_id": in.ProductID, "material_id": in.MaterialID}

	if in.QuantityPerUnit != nil {
		sets = append(sets, "quantity_per_unit = :quantity_per_unit")
		args["quantity_per_unit"] = *in.QuantityPerUnit
	}
	if in.WastePercentage != nil {
		sets = append(sets, "waste_percentage = :waste_percentage")
		args["waste_percentage"] = *in.WastePercentage
	}
	if in.Notes != nil {
		sets = append(sets, "notes = :notes")
		args["notes"] = *in.Notes
	}
	if len(sets) == 0 {
		return false, errors.New("no fields to update")
	}

	query := "UPDATE product_materials SET " + strings.Join(sets, ", ") +
		", updated_at = NOW() WHERE product_id = :product_id AND material_id = :material_id"
	res, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, args)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) Delete(ctx context.Context, productID, materialID string) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM product_materials WHERE product_id = $1 AND material_id = $2`, productID, materialID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) ListByProduct(ctx context.Context, productID string) ([]model.BOMLine, error) {
	var lines []model.BOMLine
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &lines, `
        SELECT
            pm.*,
            m.name AS material_name,
            m.unit_type,
            m.cost_per_unit,
            m.available_stock,
            pm.effective_quantity * m.cost_per_unit AS cost_per_product
        FROM product_materials pm
        JOIN materials m ON m.id = pm.material_id
        WHERE pm.product_id = $1
        ORDER BY m.name
    `, productID)
	return lines, err
}

func (r *PGRepository) ListByMaterial(ctx context.Context, materialID string) ([]model.ProductUsage, error) {
	var usages []model.ProductUsage
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &usages, `
        SELECT
            p.id AS product_id,
            p.name AS product_name,
            pm.quantity_per_unit,
            pm.waste_percentage,
            pm.effective_quantity
        FROM product_materials pm
        JOIN products p ON p.id = pm.product_id
        WHERE pm.material_id = $1
        ORDER BY p.name
    `, materialID)
	return usages, err
}

func (r *PGRepository) ListForProducts(ctx context.Context, productIDs []string) ([]model.BOMEntry, error) {
	if len(productIDs) == 0 {
		return []model.BOMEntry{}, nil
	}
	var entries []model.BOMEntry
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &entries,
		`SELECT * FROM product_materials WHERE product_id = ANY($1) ORDER BY product_id, material_id`,
		pq.Array(productIDs))
	return entries, err
}

func (r *PGRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID)
	return exists, err
}
