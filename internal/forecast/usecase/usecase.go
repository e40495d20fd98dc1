package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"go.uber.org/zap"
)

type forecastUseCase struct {
	materials   material.Repository
	consumption material.ConsumptionSource
	logger      logger.ZapLogger
	now         func() time.Time
}

func NewForecastUseCase(materials material.Repository, consumption material.ConsumptionSource, log logger.ZapLogger) forecast.UseCase {
	return &forecastUseCase{
		materials:   materials,
		consumption: consumption,
		logger:      log,
		now:         time.Now,
	}
}

func (uc *forecastUseCase) Forecast(ctx context.Context, materialID string) (*model.Forecast, error) {
	if materialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}
	m, err := uc.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("material", materialID)
	}

	now := uc.now()
	stats, err := uc.consumption.ConsumptionStats(ctx, []string{m.ID}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read consumption: %w", err)
	}

	f := forecast.Compute(m, stats[m.ID], now)
	return &f, nil
}

func (uc *forecastUseCase) ForecastAll(ctx context.Context) ([]model.Forecast, error) {
	ids, err := uc.materials.ListActiveIDs(ctx)
	if err != nil {
		return nil, err
	}
	mats, err := uc.materials.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	stats, err := uc.consumption.ConsumptionStats(ctx, ids, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read consumption: %w", err)
	}

	out := make([]model.Forecast, 0, len(mats))
	for i := range mats {
		out = append(out, forecast.Compute(&mats[i], stats[mats[i].ID], now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := severity(out[i].Assessment.Level), severity(out[j].Assessment.Level)
		if si != sj {
			return si > sj
		}
		return out[i].MaterialName < out[j].MaterialName
	})

	uc.logger.Debug("Forecast computed", zap.Int("materials", len(out)))
	return out, nil
}

func severity(l model.AlertLevel) int {
	switch l {
	case model.AlertCritical:
		return 2
	case model.AlertWarning:
		return 1
	}
	return 0
}
