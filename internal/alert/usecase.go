package alert

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type UseCase interface {
	// RefreshAlert replaces the material's active alert with one for its
	// current classification. Returns nil when the material is healthy.
	RefreshAlert(ctx context.Context, materialID string) (*model.InventoryAlert, error)
	// RefreshAllAlerts refreshes every active material. A failing material is
	// logged and listed in the result, the sweep carries on.
	RefreshAllAlerts(ctx context.Context) (*dto.RefreshResult, error)
	ListActive(ctx context.Context, filters *dto.ActiveFilters) ([]model.InventoryAlert, error)
	Summary(ctx context.Context) (*model.AlertSummary, error)
	Acknowledge(ctx context.Context, alertID, by string) (*model.InventoryAlert, error)
}

// Publisher fans alert changes out to other services.
type Publisher interface {
	Publish(ctx context.Context, event *dto.AlertEvent) error
}
