package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var materialColumns = []string{
	"id", "name", "description", "unit_type",
	"current_stock", "reserved_stock", "available_stock",
	"min_stock_level", "reorder_point", "reorder_quantity", "cost_per_unit",
	"supplier_name", "supplier_lead_time_days", "last_purchase_price", "last_purchase_date",
	"is_active", "created_at", "updated_at",
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

func TestGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM materials WHERE id = \$1`).
		WithArgs("mdf").
		WillReturnRows(sqlmock.NewRows(materialColumns).AddRow(
			"mdf", "MDF 3mm", nil, "sheet",
			"100.5", "40", "60.5",
			"10", "20", "50", "12.75",
			nil, int64(5), nil, nil,
			true, now, now,
		))

	m, err := repo.GetByID(context.Background(), "mdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m == nil {
		t.Fatalf("Expected material, got nil")
	}
	if !m.CurrentStock.Equal(decimal.RequireFromString("100.5")) || !m.Available().Equal(decimal.RequireFromString("60.5")) {
		t.Errorf("Expected stock 100.5 with 60.5 available, got %s and %s", m.CurrentStock, m.Available())
	}
	if m.LeadTimeDays() != 5 || m.LastPurchasePrice.Valid {
		t.Errorf("Expected lead time 5 and no purchase price, got %d and %v", m.LeadTimeDays(), m.LastPurchasePrice)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery(`SELECT \* FROM materials WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(materialColumns))

	m, err := repo.GetByID(context.Background(), "missing")
	if err != nil || m != nil {
		t.Errorf("Expected nil, nil, got %v, %v", m, err)
	}
}

func TestLockByIDsRequiresTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)

	if _, err := repo.LockByIDs(context.Background(), []string{"mdf"}); err == nil {
		t.Errorf("Expected error outside a transaction")
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM materials WHERE id = ANY\(\$1\) ORDER BY id FOR UPDATE`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(materialColumns))
	mock.ExpectCommit()

	err := postgres.NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.LockByIDs(ctx, []string{"mdf"})
		return err
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	name := "Birch plywood"

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"found", 1, true},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewPGRepository(db)

			mock.ExpectExec(`UPDATE materials SET name = \$1, updated_at = NOW\(\) WHERE id = \$2`).
				WithArgs(name, "mdf").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			found, err := repo.Update(context.Background(), &dto.UpdateMaterialInput{ID: "mdf", Name: &name})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if found != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, found)
			}
		})
	}

	db, _ := newMock(t)
	if _, err := NewPGRepository(db).Update(context.Background(), &dto.UpdateMaterialInput{ID: "mdf"}); err == nil {
		t.Errorf("Expected error for an empty update")
	}
}

func TestConsumptionStats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM material_transactions`).
		WithArgs(sqlmock.AnyArg(), now.AddDate(0, 0, -7), now.AddDate(0, 0, -30)).
		WillReturnRows(sqlmock.NewRows([]string{
			"material_id", "consumption_last_7_days", "consumption_last_30_days", "avg_daily_consumption",
		}).AddRow("mdf", "14", "30", "1"))

	stats, err := repo.ConsumptionStats(context.Background(), []string{"mdf", "ring"}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(stats) != 1 || !stats["mdf"].AvgDaily.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected mdf averaging 1 per day, got %+v", stats)
	}
	if _, ok := stats["ring"]; ok {
		t.Errorf("Expected no row for ring")
	}

	empty, err := repo.ConsumptionStats(context.Background(), nil, now)
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty stats, got %v (%v)", empty, err)
	}
}
