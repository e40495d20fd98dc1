package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestWithinTxCommits(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE materials").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewTxManager(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		if !InTx(ctx) {
			t.Errorf("Expected transaction on context")
		}
		_, err := Conn(ctx, db).ExecContext(ctx, "UPDATE materials SET is_active = false")
		return err
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestWithinTxJoinsOuterTransaction(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := NewTxManager(db)
	calls := 0
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		return m.WithinTx(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected inner fn called once, got %d", calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestConnWithoutTransactionUsesDB(t *testing.T) {
	db, _ := newMock(t)
	if _, ok := Conn(context.Background(), db).(*sqlx.DB); !ok {
		t.Errorf("Expected *sqlx.DB outside a transaction")
	}
}
