package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type alertUseCase struct {
	repo       alert.Repository
	materials  material.Repository
	forecaster forecast.UseCase
	publisher  alert.Publisher
	tx         postgres.Transactor
	logger     logger.ZapLogger
	now        func() time.Time
}

// NewAlertUseCase builds the alert engine. publisher may be nil.
func NewAlertUseCase(
	repo alert.Repository,
	materials material.Repository,
	forecaster forecast.UseCase,
	publisher alert.Publisher,
	tx postgres.Transactor,
	log logger.ZapLogger,
) alert.UseCase {
	return &alertUseCase{
		repo:       repo,
		materials:  materials,
		forecaster: forecaster,
		publisher:  publisher,
		tx:         tx,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *alertUseCase) RefreshAlert(ctx context.Context, materialID string) (*model.InventoryAlert, error) {
	if materialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}

	var prev, next *model.InventoryAlert
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		// The material row lock serializes refreshes of the same material, which
		// keeps the one-active-alert rule intact under concurrent sweeps.
		locked, err := uc.materials.LockByIDs(ctx, []string{materialID})
		if err != nil {
			return fmt.Errorf("failed to lock material: %w", err)
		}
		if len(locked) == 0 {
			return apperr.NotFound("material", materialID)
		}

		now := uc.now()
		// Inactive materials are not monitored; any alert they still hold is resolved.
		if !locked[0].IsActive {
			prev, err = uc.repo.DeactivateActive(ctx, materialID, now)
			if err != nil {
				return fmt.Errorf("failed to deactivate alert: %w", err)
			}
			return nil
		}

		f, err := uc.forecaster.Forecast(ctx, materialID)
		if err != nil {
			return err
		}

		prev, err = uc.repo.DeactivateActive(ctx, materialID, now)
		if err != nil {
			return fmt.Errorf("failed to deactivate alert: %w", err)
		}

		alertType, raise := f.Assessment.Status.AlertType()
		if !raise {
			return nil
		}

		next = &model.InventoryAlert{
			ID:                       uuid.New().String(),
			MaterialID:               f.MaterialID,
			MaterialName:             f.MaterialName,
			Level:                    f.Assessment.Level,
			Type:                     alertType,
			Message:                  f.Assessment.Message,
			RecommendedAction:        f.Assessment.RecommendedAction,
			CurrentStock:             f.CurrentStock,
			ReservedStock:            f.ReservedStock,
			AvailableStock:           f.AvailableStock,
			MinStockLevel:            f.MinStockLevel,
			EstimatedDepletionDate:   f.EstimatedDepletionDate,
			DaysUntilDepletion:       f.DaysOfAvailableStock,
			SuggestedReorderQuantity: f.Assessment.SuggestedReorderQuantity,
			IsActive:                 true,
			CreatedAt:                now,
		}
		if err := uc.repo.Insert(ctx, next); err != nil {
			return fmt.Errorf("failed to insert alert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, materialID, prev, next)
	return next, nil
}

func (uc *alertUseCase) RefreshAllAlerts(ctx context.Context) (*dto.RefreshResult, error) {
	ids, err := uc.materials.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	// Deactivated materials drop out of ListActiveIDs but may still hold an alert.
	alerted, err := uc.repo.ActiveMaterialIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerted materials: %w", err)
	}
	ids = mergeIDs(ids, alerted)

	result := &dto.RefreshResult{Alerts: []model.InventoryAlert{}, Failed: []string{}}
	for _, id := range ids {
		result.Checked++
		a, err := uc.RefreshAlert(ctx, id)
		if err != nil {
			uc.logger.Error("Failed to refresh alert", zap.String("material_id", id), zap.Error(err))
			result.Failed = append(result.Failed, id)
			continue
		}
		if a != nil {
			result.Alerts = append(result.Alerts, *a)
		}
	}

	uc.logger.Info("Alert sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("active", len(result.Alerts)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (uc *alertUseCase) ListActive(ctx context.Context, filters *dto.ActiveFilters) ([]model.InventoryAlert, error) {
	if filters != nil && filters.Level != "" && !filters.Level.Valid() {
		return nil, apperr.Invalid("alert_level", "is unknown")
	}
	return uc.repo.ListActive(ctx, filters)
}

func (uc *alertUseCase) Summary(ctx context.Context) (*model.AlertSummary, error) {
	return uc.repo.Summary(ctx)
}

func (uc *alertUseCase) Acknowledge(ctx context.Context, alertID, by string) (*model.InventoryAlert, error) {
	if alertID == "" {
		return nil, apperr.Invalid("alert_id", "is required")
	}
	if by == "" {
		by = auth.GetUserID(ctx)
	}

	a, err := uc.repo.Acknowledge(ctx, alertID, by, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	if a == nil {
		return nil, apperr.NotFound("alert", alertID)
	}
	return a, nil
}

// publish reports level changes only. Failures are logged and dropped.
func (uc *alertUseCase) publish(ctx context.Context, materialID string, prev, next *model.InventoryAlert) {
	if uc.publisher == nil {
		return
	}

	var event *dto.AlertEvent
	switch {
	case next != nil && (prev == nil || prev.Level != next.Level):
		event = &dto.AlertEvent{Event: dto.EventAlertRaised, MaterialID: materialID, Alert: next}
	case next == nil && prev != nil:
		event = &dto.AlertEvent{Event: dto.EventAlertResolved, MaterialID: materialID}
	default:
		return
	}

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish alert event",
			zap.String("material_id", materialID),
			zap.String("event", event.Event),
			zap.Error(err),
		)
	}
}

func mergeIDs(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, id := range append(append([]string{}, a...), b...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
