package material

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type UseCase interface {
	CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error)
	GetMaterial(ctx context.Context, id string) (*model.Material, error)
	ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error)
	UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error)

	// Stock ledger
	RecordPurchase(ctx context.Context, input *dto.PurchaseInput) (*dto.StockMovement, error)
	RecordConsumption(ctx context.Context, input *dto.ConsumptionInput) (*dto.StockMovement, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.StockMovement, error)
	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.MaterialTransaction, int, error)
	GetStatistics(ctx context.Context, id string) (*model.MaterialStatistics, error)
}
