package bom

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type Repository interface {
	// Upsert inserts the entry or overwrites the existing (product, material) pair.
	Upsert(ctx context.Context, e *model.BOMEntry) error
	Get(ctx context.Context, productID, materialID string) (*model.BOMEntry, error)
	Update(ctx context.Context, input *dto.UpdateEntryInput) (bool, error)
	Delete(ctx context.Context, productID, materialID string) (bool, error)

	ListByProduct(ctx context.Context, productID string) ([]model.BOMLine, error)
	ListByMaterial(ctx context.Context, materialID string) ([]model.ProductUsage, error)
	ListForProducts(ctx context.Context, productIDs []string) ([]model.BOMEntry, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
}
