package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var bomColumns = []string{
	"id", "product_id", "material_id", "quantity_per_unit", "waste_percentage",
	"effective_quantity", "notes", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestUpsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)

	mock.ExpectExec(`INSERT INTO product_materials .*ON CONFLICT \(product_id, material_id\) DO UPDATE SET quantity_per_unit = EXCLUDED.quantity_per_unit`).
		WithArgs("e1", "magnet", "mdf", sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &model.BOMEntry{
		ID: "e1", ProductID: "magnet", MaterialID: "mdf",
		QuantityPerUnit: decimal.RequireFromString("0.25"),
		WastePercentage: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery(`SELECT \* FROM product_materials WHERE product_id = \$1 AND material_id = \$2`).
		WithArgs("magnet", "glue").
		WillReturnRows(sqlmock.NewRows(bomColumns))

	e, err := repo.Get(context.Background(), "magnet", "glue")
	if err != nil || e != nil {
		t.Errorf("Expected nil, nil, got %v, %v", e, err)
	}
}

func TestListForProducts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	empty, err := repo.ListForProducts(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty entries without a query, got %v (%v)", empty, err)
	}

	mock.ExpectQuery(`SELECT \* FROM product_materials WHERE product_id = ANY\(\$1\) ORDER BY product_id, material_id`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bomColumns).
			AddRow("e1", "magnet", "mdf", "0.25", "10", "0.275", nil, now, now))

	entries, err := repo.ListForProducts(context.Background(), []string{"magnet"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 1 || !entries[0].EffectiveQuantity.Equal(decimal.RequireFromString("0.275")) {
		t.Errorf("Expected one entry with effective quantity 0.275, got %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
