package material

import (
	"context"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, m *model.Material) error
	GetByID(ctx context.Context, id string) (*model.Material, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Material, error)
	FindAll(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, input *dto.UpdateMaterialInput) (bool, error)

	// LockByIDs reads materials FOR UPDATE in id order. Must run inside a
	// transaction.
	LockByIDs(ctx context.Context, ids []string) ([]model.Material, error)
	SetStock(ctx context.Context, id string, current, reserved decimal.Decimal) error
	SetLastPurchase(ctx context.Context, id string, price decimal.Decimal, at time.Time) error

	// Ledger
	InsertTransaction(ctx context.Context, t *model.MaterialTransaction) error
	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.MaterialTransaction, int, error)
	Statistics(ctx context.Context, id string) (*model.MaterialStatistics, error)
}

// ConsumptionSource supplies rolling consumption figures per material.
type ConsumptionSource interface {
	ConsumptionStats(ctx context.Context, materialIDs []string, now time.Time) (map[string]model.ConsumptionStats, error)
}
