package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	alertUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	forecastUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/dto"
	matUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	resUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/store/memory"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace/noop"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	hooks  lifecycle.UseCase
	s      *memory.Store
	locker *memory.Locker
}

func newFixture() *fixture {
	s := memory.NewStore()
	log := logger.NewNop()
	locker := memory.NewLocker()

	ledger := matUCPkg.NewMaterialUseCase(s.Materials(), s.Reservations(), s.Materials(), s, log)
	res := resUCPkg.NewReservationUseCase(s.Reservations(), s.Materials(), ledger, s.BOMs(), s.Orders(), s, log)
	fc := forecastUCPkg.NewForecastUseCase(s.Materials(), s.Materials(), log)
	alerts := alertUCPkg.NewAlertUseCase(s.Alerts(), s.Materials(), fc, nil, s, log)
	hooks := NewLifecycleUseCase(res, alerts, s.Orders(), s, locker, time.Minute, noop.NewTracerProvider().Tracer("test"), log)

	s.PutMaterial(model.Material{
		BaseModel:     model.BaseModel{ID: "mdf"},
		Name:          "MDF 3mm",
		UnitType:      "sheet",
		CurrentStock:  dec("100"),
		MinStockLevel: dec("10"),
		ReorderPoint:  dec("20"),
		IsActive:      true,
	})
	s.AddProduct("magnet", "Fridge magnet")
	_ = s.BOMs().Upsert(context.Background(), &model.BOMEntry{
		ProductID: "magnet", MaterialID: "mdf", QuantityPerUnit: dec("1"), WastePercentage: dec("0"),
	})
	return &fixture{hooks: hooks, s: s, locker: locker}
}

func (f *fixture) order(id, qty string, status model.OrderStatus) {
	f.s.AddOrder(model.Order{ID: id, OrderNumber: "ORD-" + id, Status: status},
		model.OrderItem{ProductID: "magnet", Quantity: dec(qty)})
}

func (f *fixture) stock(t *testing.T) (current, reserved decimal.Decimal) {
	t.Helper()
	m, _ := f.s.Materials().GetByID(context.Background(), "mdf")
	return m.CurrentStock, m.ReservedStock
}

func TestOnOrderCreatedReservesAndRaisesAlert(t *testing.T) {
	f := newFixture()
	f.order("o1", "95", model.OrderNew)
	ctx := context.Background()

	res, err := f.hooks.OnOrderCreated(ctx, "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !res.CanFulfill || len(res.Reservations) != 1 || res.Warning != "" {
		t.Fatalf("Expected fulfilled order with one reservation, got %+v", res)
	}

	// Available 5 is below the minimum of 10.
	alerts, _ := f.s.Alerts().ListActive(ctx, nil)
	if len(alerts) != 1 || alerts[0].Level != model.AlertCritical {
		t.Errorf("Expected one critical alert, got %+v", alerts)
	}
}

func TestOnOrderCreatedShortageIsAWarning(t *testing.T) {
	f := newFixture()
	f.order("o1", "150", model.OrderNew)

	res, err := f.hooks.OnOrderCreated(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.CanFulfill {
		t.Errorf("Expected CanFulfill false")
	}
	if res.Warning != dto.WarningInsufficientMaterials {
		t.Errorf("Expected warning %q, got %q", dto.WarningInsufficientMaterials, res.Warning)
	}
	if len(res.Shortages) != 1 || !res.Shortages[0].Shortfall.Equal(dec("50")) {
		t.Errorf("Expected shortfall 50, got %+v", res.Shortages)
	}
	if current, reserved := f.stock(t); !current.Equal(dec("100")) || !reserved.IsZero() {
		t.Errorf("Expected stock untouched, got %s / %s", current, reserved)
	}
}

func TestOnOrderCreatedUnknownOrderFails(t *testing.T) {
	f := newFixture()
	if _, err := f.hooks.OnOrderCreated(context.Background(), "ghost"); !apperr.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestOnOrderStatusChanged(t *testing.T) {
	tests := []struct {
		name         string
		from, to     model.OrderStatus
		wantAction   dto.Action
		wantCurrent  string
		wantReserved string
	}{
		{"enter printing", model.OrderDesign, model.OrderPrinting, dto.ActionDrawDown, "60", "0"},
		{"already printing", model.OrderPrinting, model.OrderPrinting, dto.ActionNone, "100", "40"},
		{"cancelled", model.OrderNew, model.OrderCancelled, dto.ActionRelease, "100", "0"},
		{"delivered", model.OrderShipped, model.OrderDelivered, dto.ActionFinalConsumption, "60", "0"},
		{"design", model.OrderNew, model.OrderDesign, dto.ActionNone, "100", "40"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.order("o1", "40", tt.from)
			ctx := context.Background()
			if _, err := f.hooks.OnOrderCreated(ctx, "o1"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			res, err := f.hooks.OnOrderStatusChanged(ctx, "o1", tt.from, tt.to)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if res.Action != tt.wantAction {
				t.Errorf("Expected action %s, got %s", tt.wantAction, res.Action)
			}
			current, reserved := f.stock(t)
			if !current.Equal(dec(tt.wantCurrent)) || !reserved.Equal(dec(tt.wantReserved)) {
				t.Errorf("Expected current %s reserved %s, got %s / %s", tt.wantCurrent, tt.wantReserved, current, reserved)
			}
		})
	}
}

func TestOnOrderDeletedReleases(t *testing.T) {
	f := newFixture()
	f.order("o1", "40", model.OrderNew)
	ctx := context.Background()
	if _, err := f.hooks.OnOrderCreated(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	n, err := f.hooks.OnOrderDeleted(ctx, "o1")
	if err != nil || n != 1 {
		t.Fatalf("Expected 1 released, got %d (%v)", n, err)
	}
	if _, reserved := f.stock(t); !reserved.IsZero() {
		t.Errorf("Expected reserved 0, got %s", reserved)
	}
}

func TestRecalculateAllReservations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.order("o1", "30", model.OrderNew)
	f.order("o2", "20", model.OrderDesign)
	f.order("o3", "10", model.OrderPrinting)
	for _, id := range []string{"o1", "o2", "o3"} {
		if _, err := f.hooks.OnOrderCreated(ctx, id); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	// The BOM changes after the orders were reserved.
	_ = f.s.BOMs().Upsert(ctx, &model.BOMEntry{ProductID: "magnet", MaterialID: "mdf", QuantityPerUnit: dec("1"), WastePercentage: dec("50")})

	res, err := f.hooks.RecalculateAllReservations(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.OrdersUpdated != 2 || res.OrdersFailed != 0 {
		t.Errorf("Expected 2 updated 0 failed, got %d / %d", res.OrdersUpdated, res.OrdersFailed)
	}
	// 30*1.5 + 20*1.5 + 10 untouched
	if _, reserved := f.stock(t); !reserved.Equal(dec("85")) {
		t.Errorf("Expected reserved 85, got %s", reserved)
	}
}

func TestRecalculateKeepsReservationsThatNoLongerFit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.order("o1", "60", model.OrderNew)
	if _, err := f.hooks.OnOrderCreated(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_ = f.s.BOMs().Upsert(ctx, &model.BOMEntry{ProductID: "magnet", MaterialID: "mdf", QuantityPerUnit: dec("2"), WastePercentage: dec("0")})

	res, err := f.hooks.RecalculateAllReservations(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.OrdersFailed != 1 || len(res.Failed) != 1 || res.Failed[0] != "o1" {
		t.Errorf("Expected o1 to fail, got %+v", res)
	}
	if _, reserved := f.stock(t); !reserved.Equal(dec("60")) {
		t.Errorf("Expected previous reservation of 60 kept, got %s", reserved)
	}
}

func TestMaintenanceJobsReturnBusyWhenLocked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if ok, _ := f.locker.AcquireLock(ctx, recalculateLockKey, "other-instance", time.Minute); !ok {
		t.Fatalf("Expected to take the lock")
	}
	if _, err := f.hooks.RecalculateAllReservations(ctx); !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	if ok, _ := f.locker.AcquireLock(ctx, sweepLockKey, "other-instance", time.Minute); !ok {
		t.Fatalf("Expected to take the lock")
	}
	if _, err := f.hooks.SweepAlerts(ctx); !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	_ = f.locker.ReleaseLock(ctx, sweepLockKey, "other-instance")
	res, err := f.hooks.SweepAlerts(ctx)
	if err != nil {
		t.Fatalf("Expected no error once released, got %v", err)
	}
	if res.Checked != 1 {
		t.Errorf("Expected 1 material checked, got %d", res.Checked)
	}

	// The sweep releases its own lock.
	if _, err := f.hooks.SweepAlerts(ctx); err != nil {
		t.Errorf("Expected second sweep to run, got %v", err)
	}
}
