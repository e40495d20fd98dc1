package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert"
	alertDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/order"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	recalculateLockKey = "inventory:lock:recalculate-reservations"
	sweepLockKey       = "inventory:lock:alert-sweep"
)

type lifecycleUseCase struct {
	reservations reservation.UseCase
	alerts       alert.UseCase
	orders       order.Repository
	tx           postgres.Transactor
	locker       lifecycle.Locker
	lockTTL      time.Duration
	tracer       trace.Tracer
	logger       logger.ZapLogger
}

// NewLifecycleUseCase wires the order hooks. locker may be nil, in which case
// maintenance jobs run without cluster-wide exclusion.
func NewLifecycleUseCase(
	reservations reservation.UseCase,
	alerts alert.UseCase,
	orders order.Repository,
	tx postgres.Transactor,
	locker lifecycle.Locker,
	lockTTL time.Duration,
	tracer trace.Tracer,
	log logger.ZapLogger,
) lifecycle.UseCase {
	return &lifecycleUseCase{
		reservations: reservations,
		alerts:       alerts,
		orders:       orders,
		tx:           tx,
		locker:       locker,
		lockTTL:      lockTTL,
		tracer:       tracer,
		logger:       log,
	}
}

func (uc *lifecycleUseCase) OnOrderCreated(ctx context.Context, orderID string) (res *dto.CreatedResult, err error) {
	ctx, span := uc.startSpan(ctx, "lifecycle.OnOrderCreated", orderID)
	defer func() { endSpan(span, err) }()

	uc.logger.Info("Order created, reserving materials", zap.String("order_id", orderID))

	reserved, err := uc.reservations.Reserve(ctx, orderID)
	if err != nil {
		short, ok := apperr.AsInsufficientMaterial(err)
		if !ok {
			return nil, err
		}
		uc.logger.Warn("Order cannot be fulfilled",
			zap.String("order_id", orderID),
			zap.Int("short_materials", len(short.Shortages)),
		)
		span.AddEvent("insufficient_materials", trace.WithAttributes(attribute.Int("shortages", len(short.Shortages))))
		uc.refreshAlerts(ctx)
		return &dto.CreatedResult{
			OrderID:      orderID,
			CanFulfill:   false,
			Reservations: []model.Reservation{},
			Shortages:    short.Shortages,
			Warning:      dto.WarningInsufficientMaterials,
		}, nil
	}

	uc.refreshAlerts(ctx)
	return &dto.CreatedResult{OrderID: orderID, CanFulfill: true, Reservations: reserved}, nil
}

func (uc *lifecycleUseCase) OnOrderStatusChanged(ctx context.Context, orderID string, oldStatus, newStatus model.OrderStatus) (res *dto.StatusChangeResult, err error) {
	ctx, span := uc.startSpan(ctx, "lifecycle.OnOrderStatusChanged", orderID)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("order.status.old", string(oldStatus)),
		attribute.String("order.status.new", string(newStatus)),
	)

	if orderID == "" {
		return nil, apperr.Invalid("order_id", "is required")
	}

	res = &dto.StatusChangeResult{OrderID: orderID, Action: dto.ActionNone}
	switch {
	case newStatus == model.OrderPrinting && oldStatus != model.OrderPrinting:
		res.Action = dto.ActionDrawDown
		res.Reservations, err = uc.reservations.DrawDown(ctx, orderID)
	case newStatus == model.OrderCancelled:
		res.Action = dto.ActionRelease
		res.Released, err = uc.reservations.Release(ctx, orderID)
	case newStatus == model.OrderDelivered && oldStatus != model.OrderDelivered:
		res.Action = dto.ActionFinalConsumption
		res.Reservations, err = uc.reservations.ForceFinalConsumption(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Order status change applied",
		zap.String("order_id", orderID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)),
		zap.String("action", string(res.Action)),
	)
	uc.refreshAlerts(ctx)
	return res, nil
}

func (uc *lifecycleUseCase) OnOrderDeleted(ctx context.Context, orderID string) (released int, err error) {
	ctx, span := uc.startSpan(ctx, "lifecycle.OnOrderDeleted", orderID)
	defer func() { endSpan(span, err) }()

	released, err = uc.reservations.Release(ctx, orderID)
	if err != nil {
		return 0, err
	}
	uc.refreshAlerts(ctx)
	return released, nil
}

// RecalculateAllReservations releases and re-reserves each order in its own
// transaction, so an order that no longer fits keeps its previous reservations.
func (uc *lifecycleUseCase) RecalculateAllReservations(ctx context.Context) (res *dto.RecalculateResult, err error) {
	ctx, span := uc.tracer.Start(ctx, "lifecycle.RecalculateAllReservations")
	defer func() { endSpan(span, err) }()

	unlock, err := uc.lock(ctx, recalculateLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ids, err := uc.orders.ListIDsByStatus(ctx, model.RecalculableOrderStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	res = &dto.RecalculateResult{Failed: []string{}}
	for _, id := range ids {
		err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := uc.reservations.Release(ctx, id); err != nil {
				return err
			}
			_, err := uc.reservations.Reserve(ctx, id)
			return err
		})
		if err != nil {
			uc.logger.Error("Failed to recalculate reservations", zap.String("order_id", id), zap.Error(err))
			res.OrdersFailed++
			res.Failed = append(res.Failed, id)
			continue
		}
		res.OrdersUpdated++
	}
	span.SetAttributes(
		attribute.Int("orders.updated", res.OrdersUpdated),
		attribute.Int("orders.failed", res.OrdersFailed),
	)

	uc.logger.Info("Reservations recalculated",
		zap.Int("updated", res.OrdersUpdated),
		zap.Int("failed", res.OrdersFailed),
	)
	uc.refreshAlerts(ctx)
	return res, nil
}

func (uc *lifecycleUseCase) SweepAlerts(ctx context.Context) (res *alertDTO.RefreshResult, err error) {
	ctx, span := uc.tracer.Start(ctx, "lifecycle.SweepAlerts")
	defer func() { endSpan(span, err) }()

	unlock, err := uc.lock(ctx, sweepLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.alerts.RefreshAllAlerts(ctx)
}

// refreshAlerts is the follow-up sweep of every hook. It is advisory, so a
// failure is logged and never fails the hook.
func (uc *lifecycleUseCase) refreshAlerts(ctx context.Context) {
	if _, err := uc.alerts.RefreshAllAlerts(ctx); err != nil {
		uc.logger.Warn("Alert refresh failed", zap.Error(err))
	}
}

func (uc *lifecycleUseCase) lock(ctx context.Context, key string) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	token := uuid.New().String()
	ok, err := uc.locker.AcquireLock(ctx, key, token, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, apperr.ErrBusy
	}
	return func() {
		// The caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := uc.locker.ReleaseLock(releaseCtx, key, token); err != nil {
			uc.logger.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (uc *lifecycleUseCase) startSpan(ctx context.Context, name, orderID string) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("order.id", orderID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, apperr.ErrBusy) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
