package alert

import (
	"context"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type Repository interface {
	// DeactivateActive resolves the material's active alert, if any, and
	// returns it as it was before resolution.
	DeactivateActive(ctx context.Context, materialID string, at time.Time) (*model.InventoryAlert, error)
	Insert(ctx context.Context, a *model.InventoryAlert) error
	// ActiveMaterialIDs lists materials that currently hold an active alert.
	ActiveMaterialIDs(ctx context.Context) ([]string, error)
	ListActive(ctx context.Context, filters *dto.ActiveFilters) ([]model.InventoryAlert, error)
	Summary(ctx context.Context) (*model.AlertSummary, error)
	Acknowledge(ctx context.Context, id, by string, at time.Time) (*model.InventoryAlert, error)
}
