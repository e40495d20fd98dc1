package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	materialDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	matUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/store/memory"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc *reservationUseCase
	s  *memory.Store
}

// newFixture seeds one material (current 100, min 10, reorder 20) and a
// product that needs exactly one unit of it with no waste.
func newFixture() *fixture {
	s := memory.NewStore()
	log := logger.NewNop()
	ledger := matUCPkg.NewMaterialUseCase(s.Materials(), s.Reservations(), s.Materials(), s, log)
	uc := NewReservationUseCase(s.Reservations(), s.Materials(), ledger, s.BOMs(), s.Orders(), s, log).(*reservationUseCase)
	uc.now = func() time.Time { return time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC) }

	s.PutMaterial(model.Material{
		BaseModel:     model.BaseModel{ID: "mdf"},
		Name:          "MDF 3mm",
		UnitType:      "sheet",
		CurrentStock:  dec("100"),
		ReservedStock: dec("0"),
		MinStockLevel: dec("10"),
		ReorderPoint:  dec("20"),
		CostPerUnit:   dec("1"),
		IsActive:      true,
	})
	s.AddProduct("magnet", "Fridge magnet")
	_ = s.BOMs().Upsert(context.Background(), &model.BOMEntry{
		ID: "b1", ProductID: "magnet", MaterialID: "mdf",
		QuantityPerUnit: dec("1"), WastePercentage: dec("0"),
	})
	return &fixture{uc: uc, s: s}
}

func (f *fixture) order(id, qty string) {
	f.s.AddOrder(model.Order{ID: id, OrderNumber: "ORD-" + id, Status: model.OrderNew},
		model.OrderItem{ProductID: "magnet", Quantity: dec(qty)})
}

func (f *fixture) material(t *testing.T) *model.Material {
	t.Helper()
	m, err := f.s.Materials().GetByID(context.Background(), "mdf")
	if err != nil || m == nil {
		t.Fatalf("Expected material, got %v (%v)", m, err)
	}
	return m
}

func TestReserveWithinAvailability(t *testing.T) {
	f := newFixture()
	f.order("o1", "95")

	res, err := f.uc.Reserve(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res) != 1 || !res[0].QuantityReserved.Equal(dec("95")) || res[0].Status != model.ReservationPending {
		t.Fatalf("Expected one pending reservation of 95, got %+v", res)
	}

	m := f.material(t)
	if !m.ReservedStock.Equal(dec("95")) {
		t.Errorf("Expected reserved 95, got %s", m.ReservedStock)
	}
	if !m.AvailableStock.Equal(dec("5")) {
		t.Errorf("Expected available 5, got %s", m.AvailableStock)
	}
}

func TestReserveShortageIsAllOrNothing(t *testing.T) {
	f := newFixture()
	f.s.PutMaterial(model.Material{BaseModel: model.BaseModel{ID: "ring"}, Name: "Key ring", UnitType: "piece", CurrentStock: dec("500"), IsActive: true})
	_ = f.s.BOMs().Upsert(context.Background(), &model.BOMEntry{ProductID: "magnet", MaterialID: "ring", QuantityPerUnit: dec("1"), WastePercentage: dec("0")})
	f.order("o1", "150")

	_, err := f.uc.Reserve(context.Background(), "o1")
	short, ok := apperr.AsInsufficientMaterial(err)
	if !ok {
		t.Fatalf("Expected insufficient material, got %v", err)
	}
	if len(short.Shortages) != 1 || short.Shortages[0].MaterialID != "mdf" {
		t.Fatalf("Expected one shortage on mdf, got %+v", short.Shortages)
	}
	if !short.Shortages[0].Shortfall.Equal(dec("50")) {
		t.Errorf("Expected shortfall 50, got %s", short.Shortages[0].Shortfall)
	}

	m := f.material(t)
	if !m.CurrentStock.Equal(dec("100")) || !m.ReservedStock.IsZero() {
		t.Errorf("Expected stock untouched, got current %s reserved %s", m.CurrentStock, m.ReservedStock)
	}
	lines, _ := f.uc.ListByOrder(context.Background(), "o1")
	if len(lines) != 0 {
		t.Errorf("Expected no reservations, got %d", len(lines))
	}
}

func TestReserveTwiceReplacesHold(t *testing.T) {
	f := newFixture()
	f.order("o1", "60")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
			t.Fatalf("Reserve #%d: expected no error, got %v", i+1, err)
		}
	}
	if m := f.material(t); !m.ReservedStock.Equal(dec("60")) {
		t.Errorf("Expected reserved 60 after re-reserving, got %s", m.ReservedStock)
	}
}

func TestReserveDropsMaterialsNoLongerNeeded(t *testing.T) {
	tests := []struct {
		name      string
		withRing  bool
		wantLines int
	}{
		{"material swapped in BOM", true, 1},
		{"BOM emptied", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.order("o1", "60")
			ctx := context.Background()

			if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if _, err := f.s.BOMs().Delete(ctx, "magnet", "mdf"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if tt.withRing {
				f.s.PutMaterial(model.Material{BaseModel: model.BaseModel{ID: "ring"}, Name: "Key ring", UnitType: "piece", CurrentStock: dec("500"), IsActive: true})
				_ = f.s.BOMs().Upsert(ctx, &model.BOMEntry{ProductID: "magnet", MaterialID: "ring", QuantityPerUnit: dec("1"), WastePercentage: dec("0")})
			}

			res, err := f.uc.Reserve(ctx, "o1")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(res) != tt.wantLines {
				t.Errorf("Expected %d reservations, got %d", tt.wantLines, len(res))
			}

			lines, _ := f.uc.ListByOrder(ctx, "o1")
			if len(lines) != tt.wantLines {
				t.Fatalf("Expected %d stored reservations, got %d", tt.wantLines, len(lines))
			}
			if tt.withRing && lines[0].MaterialID != "ring" {
				t.Errorf("Expected ring reservation, got %s", lines[0].MaterialID)
			}
			if m := f.material(t); !m.ReservedStock.IsZero() || !m.AvailableStock.Equal(dec("100")) {
				t.Errorf("Expected mdf hold returned, got reserved %s available %s", m.ReservedStock, m.AvailableStock)
			}
		})
	}
}

func TestPendingOrdersStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.order("o1", "60")
	f.s.AddOrder(model.Order{ID: "o2", OrderNumber: "ORD-o2", Status: model.OrderPrinting},
		model.OrderItem{ProductID: "magnet", Quantity: dec("10")})
	f.s.AddOrder(model.Order{ID: "o3", OrderNumber: "ORD-o3", Status: model.OrderDelivered},
		model.OrderItem{ProductID: "magnet", Quantity: dec("5")})

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := f.uc.PendingOrdersStatus(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 || got[0].OrderID != "o1" || got[1].OrderID != "o2" {
		t.Fatalf("Expected o1 and o2, got %+v", got)
	}
	if got[0].MaterialsCount != 1 || !got[0].TotalReserved.Equal(dec("60")) || !got[0].TotalConsumed.IsZero() || !got[0].CanFulfill {
		t.Errorf("Expected o1 holding 60 and fulfillable, got %+v", got[0])
	}
	if got[1].MaterialsCount != 0 || got[1].CanFulfill {
		t.Errorf("Expected o2 without reservations, got %+v", got[1])
	}

	// A manual correction below the reserved level over-reserves mdf.
	if err := f.s.Materials().SetStock(ctx, "mdf", dec("50"), dec("60")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got, _ = f.uc.PendingOrdersStatus(ctx)
	if got[0].CanFulfill {
		t.Errorf("Expected o1 unfulfillable once mdf is over-reserved")
	}
}

func TestReserveUnknownOrder(t *testing.T) {
	f := newFixture()
	if _, err := f.uc.Reserve(context.Background(), "ghost"); !apperr.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
	if _, err := f.uc.Reserve(context.Background(), ""); !apperr.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestReserveRejectsDrawnReservations(t *testing.T) {
	f := newFixture()
	f.order("o1", "50")
	ctx := context.Background()

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	orderID := "o1"
	if _, err := f.uc.ledger.RecordConsumption(ctx, &materialDTO.ConsumptionInput{MaterialID: "mdf", Quantity: dec("10"), OrderID: &orderID}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := f.uc.Reserve(ctx, "o1"); !apperr.IsValidation(err) {
		t.Errorf("Expected validation error re-reserving a drawn order, got %v", err)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	f := newFixture()
	f.order("o1", "30")
	ctx := context.Background()

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	n, err := f.uc.Release(ctx, "o1")
	if err != nil || n != 1 {
		t.Fatalf("Expected 1 released, got %d (%v)", n, err)
	}

	m := f.material(t)
	if !m.ReservedStock.IsZero() || !m.AvailableStock.Equal(dec("100")) {
		t.Errorf("Expected reserved 0 available 100, got %s / %s", m.ReservedStock, m.AvailableStock)
	}

	n, err = f.uc.Release(ctx, "o1")
	if err != nil || n != 0 {
		t.Errorf("Expected idempotent release, got %d (%v)", n, err)
	}
}

func TestDrawDownConsumesReservation(t *testing.T) {
	f := newFixture()
	f.order("o1", "50")
	ctx := context.Background()

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	res, err := f.uc.DrawDown(ctx, "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("Expected 1 reservation, got %d", len(res))
	}
	r := res[0]
	if r.Status != model.ReservationConsumed || !r.QuantityConsumed.Equal(dec("50")) {
		t.Errorf("Expected consumed 50, got %s %s", r.Status, r.QuantityConsumed)
	}
	if r.ConsumedAt == nil {
		t.Errorf("Expected consumed_at to be set")
	}

	m := f.material(t)
	if !m.CurrentStock.Equal(dec("50")) || !m.ReservedStock.IsZero() {
		t.Errorf("Expected current 50 reserved 0, got %s / %s", m.CurrentStock, m.ReservedStock)
	}

	// Nothing left outstanding.
	if _, err := f.uc.DrawDown(ctx, "o1"); err != nil {
		t.Errorf("Expected second draw-down to be a no-op, got %v", err)
	}
	if m := f.material(t); !m.CurrentStock.Equal(dec("50")) {
		t.Errorf("Expected current still 50, got %s", m.CurrentStock)
	}
}

func TestForceFinalConsumptionAfterPartialDraw(t *testing.T) {
	f := newFixture()
	f.order("o1", "40")
	ctx := context.Background()

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	orderID := "o1"
	if _, err := f.uc.ledger.RecordConsumption(ctx, &materialDTO.ConsumptionInput{MaterialID: "mdf", Quantity: dec("15"), OrderID: &orderID}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	res, err := f.uc.ForceFinalConsumption(ctx, "o1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res[0].Status != model.ReservationConsumed || !res[0].QuantityConsumed.Equal(dec("40")) {
		t.Errorf("Expected fully consumed 40, got %s %s", res[0].Status, res[0].QuantityConsumed)
	}
	if m := f.material(t); !m.CurrentStock.Equal(dec("60")) || !m.ReservedStock.IsZero() {
		t.Errorf("Expected current 60 reserved 0, got %s / %s", m.CurrentStock, m.ReservedStock)
	}
}

func TestDrawDownRollsBackOnShortStock(t *testing.T) {
	f := newFixture()
	f.order("o1", "80")
	ctx := context.Background()

	if _, err := f.uc.Reserve(ctx, "o1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := f.uc.ledger.AdjustStock(ctx, &materialDTO.AdjustStockInput{MaterialID: "mdf", NewQuantity: dec("30"), Reason: "recount"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := f.uc.DrawDown(ctx, "o1"); !apperr.IsInsufficientStock(err) {
		t.Fatalf("Expected insufficient stock, got %v", err)
	}
	lines, _ := f.uc.ListByOrder(ctx, "o1")
	if len(lines) != 1 || !lines[0].QuantityConsumed.IsZero() {
		t.Errorf("Expected reservation untouched, got %+v", lines)
	}
	if m := f.material(t); !m.CurrentStock.Equal(dec("30")) || !m.ReservedStock.Equal(dec("80")) {
		t.Errorf("Expected current 30 reserved 80, got %s / %s", m.CurrentStock, m.ReservedStock)
	}
}

func TestConcurrentReservesNeverOverbook(t *testing.T) {
	f := newFixture()
	const orders = 8
	for i := 0; i < orders; i++ {
		f.order(string(rune('a'+i)), "30")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := f.uc.Reserve(context.Background(), id); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()

	if success != 3 {
		t.Errorf("Expected 3 successful reservations, got %d", success)
	}
	if m := f.material(t); !m.ReservedStock.Equal(dec("90")) {
		t.Errorf("Expected reserved 90, got %s", m.ReservedStock)
	}
}
