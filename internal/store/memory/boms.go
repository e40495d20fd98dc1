package memory

import (
	"context"
	"sort"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type BOMRepository struct {
	s *Store
}

func (r *BOMRepository) Upsert(_ context.Context, e *model.BOMEntry) error {
	r.s.read(func(t *tables) {
		k := key(e.ProductID, e.MaterialID)
		now := r.s.now()
		cp := *e
		cp.EffectiveQuantity = model.EffectiveQuantity(cp.QuantityPerUnit, cp.WastePercentage)
		cp.CreatedAt, cp.UpdatedAt = now, now
		if prev, ok := t.boms[k]; ok {
			cp.ID = prev.ID
			cp.CreatedAt = prev.CreatedAt
		}
		t.boms[k] = cp
	})
	return nil
}

func (r *BOMRepository) Get(_ context.Context, productID, materialID string) (*model.BOMEntry, error) {
	var out *model.BOMEntry
	r.s.read(func(t *tables) {
		if e, ok := t.boms[key(productID, materialID)]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *BOMRepository) Update(_ context.Context, in *dto.UpdateEntryInput) (bool, error) {
	var found bool
	r.s.read(func(t *tables) {
		k := key(in.ProductID, in.MaterialID)
		e, ok := t.boms[k]
		if !ok {
			return
		}
		found = true
		if in.QuantityPerUnit != nil {
			e.QuantityPerUnit = *in.QuantityPerUnit
		}
		if in.WastePercentage != nil {
			e.WastePercentage = *in.WastePercentage
		}
		if in.Notes != nil {
			e.Notes = in.Notes
		}
		e.EffectiveQuantity = model.EffectiveQuantity(e.QuantityPerUnit, e.WastePercentage)
		e.UpdatedAt = r.s.now()
		t.boms[k] = e
	})
	return found, nil
}

func (r *BOMRepository) Delete(_ context.Context, productID, materialID string) (bool, error) {
	var found bool
	r.s.read(func(t *tables) {
		k := key(productID, materialID)
		if _, found = t.boms[k]; found {
			delete(t.boms, k)
		}
	})
	return found, nil
}

func (r *BOMRepository) ListByProduct(_ context.Context, productID string) ([]model.BOMLine, error) {
	out := []model.BOMLine{}
	r.s.read(func(t *tables) {
		for _, e := range t.boms {
			if e.ProductID != productID {
				continue
			}
			m, ok := t.materials[e.MaterialID]
			if !ok {
				continue
			}
			out = append(out, model.BOMLine{
				BOMEntry:       e,
				MaterialName:   m.Name,
				UnitType:       m.UnitType,
				CostPerUnit:    m.CostPerUnit,
				AvailableStock: m.AvailableStock,
				CostPerProduct: e.EffectiveQuantity.Mul(m.CostPerUnit),
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialName < out[j].MaterialName })
	return out, nil
}

func (r *BOMRepository) ListByMaterial(_ context.Context, materialID string) ([]model.ProductUsage, error) {
	out := []model.ProductUsage{}
	r.s.read(func(t *tables) {
		for _, e := range t.boms {
			if e.MaterialID != materialID {
				continue
			}
			name, ok := t.products[e.ProductID]
			if !ok {
				continue
			}
			out = append(out, model.ProductUsage{
				ProductID:         e.ProductID,
				ProductName:       name,
				QuantityPerUnit:   e.QuantityPerUnit,
				WastePercentage:   e.WastePercentage,
				EffectiveQuantity: e.EffectiveQuantity,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (r *BOMRepository) ListForProducts(_ context.Context, productIDs []string) ([]model.BOMEntry, error) {
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := []model.BOMEntry{}
	r.s.read(func(t *tables) {
		for _, e := range t.boms {
			if _, ok := wanted[e.ProductID]; ok {
				out = append(out, e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].MaterialID < out[j].MaterialID
	})
	return out, nil
}

func (r *BOMRepository) ProductExists(_ context.Context, productID string) (bool, error) {
	var ok bool
	r.s.read(func(t *tables) { _, ok = t.products[productID] })
	return ok, nil
}
