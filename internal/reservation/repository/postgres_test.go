package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var reservationColumns = []string{
	"id", "order_id", "material_id", "quantity_reserved", "quantity_consumed",
	"reservation_status", "reserved_at", "consumed_at", "updated_at",
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

func TestLockByOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	if _, err := repo.LockByOrder(context.Background(), "o1"); err == nil {
		t.Errorf("Expected error outside a transaction")
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM order_material_reservations\s+WHERE order_id = \$1\s+ORDER BY material_id\s+FOR UPDATE`).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow("r1", "o1", "mdf", "60", "20", "partial", now, nil, now).
			AddRow("r2", "o1", "ring", "10", "0", "pending", now, nil, now))
	mock.ExpectCommit()

	var got []model.Reservation
	err := postgres.NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context) error {
		var err error
		got, err = repo.LockByOrder(ctx, "o1")
		return err
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 reservations, got %d", len(got))
	}
	if got[0].Status != model.ReservationPartial || !got[0].Outstanding().Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected partial with 40 outstanding, got %s with %s", got[0].Status, got[0].Outstanding())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestLockForOrderMaterialNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)

	if _, err := repo.LockForOrderMaterial(context.Background(), "o1", "mdf"); err == nil {
		t.Errorf("Expected error outside a transaction")
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE order_id = \$1 AND material_id = \$2\s+FOR UPDATE`).
		WithArgs("o1", "glue").
		WillReturnRows(sqlmock.NewRows(reservationColumns))
	mock.ExpectCommit()

	err := postgres.NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context) error {
		res, err := repo.LockForOrderMaterial(ctx, "o1", "glue")
		if res != nil {
			t.Errorf("Expected nil reservation, got %+v", res)
		}
		return err
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestUpsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO order_material_reservations .*ON CONFLICT \(order_id, material_id\)\s+DO UPDATE SET`).
		WithArgs("r1", "o1", "mdf",
			sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", now, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &model.Reservation{
		ID: "r1", OrderID: "o1", MaterialID: "mdf",
		QuantityReserved: decimal.NewFromInt(60),
		Status:           model.ReservationPending,
		ReservedAt:       now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPGRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM order_material_reservations WHERE order_id = \$1 AND material_id = \$2`).
		WithArgs("o1", "mdf").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM order_material_reservations WHERE order_id = \$1$`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteForOrderMaterial(ctx, "o1", "mdf"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	n, err := repo.DeleteByOrder(ctx, "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 deleted, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
