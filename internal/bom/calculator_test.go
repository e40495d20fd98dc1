package bom

import (
	"testing"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func material(id, name string, current, reserved string) model.Material {
	return model.Material{
		BaseModel:     model.BaseModel{ID: id},
		Name:          name,
		UnitType:      "sheet",
		CurrentStock:  dec(current),
		ReservedStock: dec(reserved),
		CostPerUnit:   dec("2"),
	}
}

func TestCalculateAggregatesAcrossOrders(t *testing.T) {
	items := []model.OrderItem{
		{OrderID: "o1", ProductID: "magnet", Quantity: dec("10")},
		{OrderID: "o2", ProductID: "magnet", Quantity: dec("5")},
		{OrderID: "o2", ProductID: "keychain", Quantity: dec("4")},
	}
	entries := []model.BOMEntry{
		{ProductID: "magnet", MaterialID: "mdf", QuantityPerUnit: dec("1"), WastePercentage: dec("10")},
		{ProductID: "keychain", MaterialID: "mdf", QuantityPerUnit: dec("0.5"), WastePercentage: dec("0")},
		{ProductID: "keychain", MaterialID: "ring", QuantityPerUnit: dec("1"), WastePercentage: dec("0")},
	}
	mats := []model.Material{
		material("mdf", "MDF", "100", "0"),
		material("ring", "Ring", "2", "0"),
	}

	reqs := Calculate(items, entries, mats, nil)
	if len(reqs) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(reqs))
	}

	// Shortages sort first.
	ring, mdf := reqs[0], reqs[1]
	if ring.MaterialID != "ring" || ring.IsAvailable {
		t.Fatalf("Expected ring shortage first, got %+v", ring)
	}
	if !ring.Shortage.Equal(dec("2")) {
		t.Errorf("Expected ring shortage 2, got %s", ring.Shortage)
	}

	// 15 magnets * 1.1 + 4 keychains * 0.5
	if !mdf.Required.Equal(dec("18.5")) {
		t.Errorf("Expected mdf required 18.5, got %s", mdf.Required)
	}
	if mdf.OrderCount != 2 {
		t.Errorf("Expected mdf order count 2, got %d", mdf.OrderCount)
	}
	if !mdf.MaterialCost.Equal(dec("37")) {
		t.Errorf("Expected mdf cost 37, got %s", mdf.MaterialCost)
	}
	if !mdf.Shortage.IsZero() || !mdf.IsAvailable {
		t.Errorf("Expected mdf available without shortage, got %+v", mdf)
	}
}

func TestCalculateAppliesCredit(t *testing.T) {
	items := []model.OrderItem{{OrderID: "o1", ProductID: "p", Quantity: dec("10")}}
	entries := []model.BOMEntry{{ProductID: "p", MaterialID: "m", QuantityPerUnit: dec("1"), WastePercentage: dec("0")}}
	mats := []model.Material{material("m", "M", "10", "10")}

	without := Calculate(items, entries, mats, nil)
	if without[0].IsAvailable {
		t.Fatalf("Expected shortage without credit")
	}

	with := Calculate(items, entries, mats, map[string]decimal.Decimal{"m": dec("10")})
	if !with[0].IsAvailable {
		t.Errorf("Expected credit to cover the requirement, got %+v", with[0])
	}
	if !with[0].AvailableStock.Equal(dec("10")) {
		t.Errorf("Expected available 10 with credit, got %s", with[0].AvailableStock)
	}
}

func TestCalculateSkipsUnknownMaterials(t *testing.T) {
	items := []model.OrderItem{{OrderID: "o1", ProductID: "p", Quantity: dec("1")}}
	entries := []model.BOMEntry{{ProductID: "p", MaterialID: "gone", QuantityPerUnit: dec("1"), WastePercentage: dec("0")}}

	if reqs := Calculate(items, entries, nil, nil); len(reqs) != 0 {
		t.Errorf("Expected no requirements, got %d", len(reqs))
	}
}

func TestShortagesAndIDs(t *testing.T) {
	reqs := []model.MaterialRequirement{
		{MaterialID: "a", IsAvailable: true},
		{MaterialID: "b", MaterialName: "B", Required: dec("5"), AvailableStock: dec("1"), Shortage: dec("4")},
	}
	short := Shortages(reqs)
	if len(short) != 1 || short[0].MaterialID != "b" || !short[0].Shortfall.Equal(dec("4")) {
		t.Errorf("Expected one shortage for b of 4, got %+v", short)
	}

	ids := MaterialIDs([]model.BOMEntry{{MaterialID: "z"}, {MaterialID: "a"}, {MaterialID: "z"}})
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "z" {
		t.Errorf("Expected [a z], got %v", ids)
	}
	pids := ProductIDs([]model.OrderItem{{ProductID: "q"}, {ProductID: "q"}, {ProductID: "b"}})
	if len(pids) != 2 || pids[0] != "b" {
		t.Errorf("Expected [b q], got %v", pids)
	}
}
