package forecast

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type UseCase interface {
	Forecast(ctx context.Context, materialID string) (*model.Forecast, error)
	// ForecastAll covers every active material, most severe first.
	ForecastAll(ctx context.Context) ([]model.Forecast, error)
}
