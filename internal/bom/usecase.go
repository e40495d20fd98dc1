package bom

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type UseCase interface {
	UpsertEntry(ctx context.Context, input *dto.UpsertEntryInput) (*model.BOMEntry, error)
	UpdateEntry(ctx context.Context, input *dto.UpdateEntryInput) (*model.BOMEntry, error)
	DeleteEntry(ctx context.Context, productID, materialID string) error
	GetProductBOM(ctx context.Context, productID string) (*dto.ProductBOM, error)
	GetProductsUsingMaterial(ctx context.Context, materialID string) ([]model.ProductUsage, error)

	// Requirement calculation
	RequirementsFor(ctx context.Context, orderID string) ([]model.MaterialRequirement, error)
	RequirementsForBatch(ctx context.Context, orderIDs []string) (*dto.BatchRequirements, error)
	RequirementsForPendingOrders(ctx context.Context) (*dto.BatchRequirements, error)
	CheckFulfillment(ctx context.Context, orderID string) (*model.FulfillmentCheck, error)
	AnalyzeImpact(ctx context.Context, items []dto.ImpactItem) (*model.ImpactAnalysis, error)
}
