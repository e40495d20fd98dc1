package bom

import (
	"sort"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

// Calculate aggregates order lines through the BOM into one requirement per
// material. credit adds quantity back to a material's availability, used when
// an order's own outstanding reservation is being replaced. Materials missing
// from materials are skipped. The result lists shortages first, then by name.
func Calculate(items []model.OrderItem, entries []model.BOMEntry, materials []model.Material, credit map[string]decimal.Decimal) []model.MaterialRequirement {
	byProduct := make(map[string][]model.BOMEntry)
	for _, e := range entries {
		byProduct[e.ProductID] = append(byProduct[e.ProductID], e)
	}
	byID := make(map[string]*model.Material, len(materials))
	for i := range materials {
		byID[materials[i].ID] = &materials[i]
	}

	required := make(map[string]decimal.Decimal)
	orders := make(map[string]map[string]struct{})
	for _, item := range items {
		for _, e := range byProduct[item.ProductID] {
			if _, ok := byID[e.MaterialID]; !ok {
				continue
			}
			qty := item.Quantity.Mul(model.EffectiveQuantity(e.QuantityPerUnit, e.WastePercentage))
			required[e.MaterialID] = required[e.MaterialID].Add(qty)
			if orders[e.MaterialID] == nil {
				orders[e.MaterialID] = make(map[string]struct{})
			}
			orders[e.MaterialID][item.OrderID] = struct{}{}
		}
	}

	reqs := make([]model.MaterialRequirement, 0, len(required))
	for id, qty := range required {
		m := byID[id]
		available := m.Available().Add(credit[id])
		shortage := decimal.Max(decimal.Zero, qty.Sub(available))
		reqs = append(reqs, model.MaterialRequirement{
			MaterialID:     id,
			MaterialName:   m.Name,
			UnitType:       m.UnitType,
			Required:       qty,
			AvailableStock: available,
			CurrentStock:   m.CurrentStock,
			IsAvailable:    qty.LessThanOrEqual(available),
			Shortage:       shortage,
			CostPerUnit:    m.CostPerUnit,
			MaterialCost:   qty.Mul(m.CostPerUnit),
			OrderCount:     len(orders[id]),
		})
	}

	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].IsAvailable != reqs[j].IsAvailable {
			return !reqs[i].IsAvailable
		}
		if reqs[i].MaterialName != reqs[j].MaterialName {
			return reqs[i].MaterialName < reqs[j].MaterialName
		}
		return reqs[i].MaterialID < reqs[j].MaterialID
	})
	return reqs
}

// Shortages converts the unavailable requirements into shortage entries.
func Shortages(reqs []model.MaterialRequirement) []apperr.Shortage {
	var out []apperr.Shortage
	for _, r := range reqs {
		if r.IsAvailable {
			continue
		}
		out = append(out, apperr.Shortage{
			MaterialID:   r.MaterialID,
			MaterialName: r.MaterialName,
			UnitType:     r.UnitType,
			Required:     r.Required,
			Available:    r.AvailableStock,
			Shortfall:    r.Shortage,
		})
	}
	return out
}

// MaterialIDs returns the distinct materials referenced by entries, sorted.
func MaterialIDs(entries []model.BOMEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.MaterialID]; ok {
			continue
		}
		seen[e.MaterialID] = struct{}{}
		ids = append(ids, e.MaterialID)
	}
	sort.Strings(ids)
	return ids
}

// ProductIDs returns the distinct products referenced by items.
func ProductIDs(items []model.OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Strings(ids)
	return ids
}
