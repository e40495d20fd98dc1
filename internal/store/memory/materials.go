package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

var thirty = decimal.NewFromInt(30)

type MaterialRepository struct {
	s *Store
}

func (r *MaterialRepository) Create(_ context.Context, m *model.Material) error {
	var err error
	r.s.read(func(t *tables) {
		if _, ok := t.materials[m.ID]; ok {
			err = errors.New("duplicate material id")
			return
		}
		cp := *m
		cp.AvailableStock = cp.Available()
		t.materials[m.ID] = cp
	})
	return err
}

func (r *MaterialRepository) GetByID(_ context.Context, id string) (*model.Material, error) {
	var out *model.Material
	r.s.read(func(t *tables) {
		if m, ok := t.materials[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *MaterialRepository) GetByIDs(_ context.Context, ids []string) ([]model.Material, error) {
	out := []model.Material{}
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if m, ok := t.materials[id]; ok {
				out = append(out, m)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MaterialRepository) LockByIDs(ctx context.Context, ids []string) ([]model.Material, error) {
	if len(ids) == 0 {
		return []model.Material{}, nil
	}
	if !inTx(ctx) {
		return nil, errNoTx
	}
	return r.GetByIDs(ctx, ids)
}

func (r *MaterialRepository) FindAll(_ context.Context, f *dto.MaterialFilters) ([]model.Material, int, error) {
	var all []model.Material
	search := strings.ToLower(f.Search)
	r.s.read(func(t *tables) {
		for _, m := range t.materials {
			if f.ActiveOnly && !m.IsActive {
				continue
			}
			if f.LowStock && !m.AvailableStock.LessThan(m.ReorderPoint) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
				continue
			}
			all = append(all, m)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, f.Page, f.PageSize), len(all), nil
}

func (r *MaterialRepository) ListActiveIDs(_ context.Context) ([]string, error) {
	ids := []string{}
	r.s.read(func(t *tables) {
		for id, m := range t.materials {
			if m.IsActive {
				ids = append(ids, id)
			}
		}
	})
	sort.Strings(ids)
	return ids, nil
}

func (r *MaterialRepository) Update(_ context.Context, in *dto.UpdateMaterialInput) (bool, error) {
	if in.Empty() {
		return false, errors.New("no fields to update")
	}
	var found bool
	r.s.read(func(t *tables) {
		m, ok := t.materials[in.ID]
		if !ok {
			return
		}
		found = true
		if in.Name != nil {
			m.Name = *in.Name
		}
		if in.Description != nil {
			m.Description = in.Description
		}
		if in.UnitType != nil {
			m.UnitType = *in.UnitType
		}
		if in.MinStockLevel != nil {
			m.MinStockLevel = *in.MinStockLevel
		}
		if in.ReorderPoint != nil {
			m.ReorderPoint = *in.ReorderPoint
		}
		if in.ReorderQuantity != nil {
			m.ReorderQuantity = *in.ReorderQuantity
		}
		if in.CostPerUnit != nil {
			m.CostPerUnit = *in.CostPerUnit
		}
		if in.SupplierName != nil {
			m.SupplierName = in.SupplierName
		}
		if in.SupplierLeadTimeDays != nil {
			m.SupplierLeadTimeDays = *in.SupplierLeadTimeDays
		}
		if in.IsActive != nil {
			m.IsActive = *in.IsActive
		}
		m.UpdatedAt = r.s.now()
		t.materials[in.ID] = m
	})
	return found, nil
}

func (r *MaterialRepository) SetStock(_ context.Context, id string, current, reserved decimal.Decimal) error {
	r.s.read(func(t *tables) {
		m, ok := t.materials[id]
		if !ok {
			return
		}
		m.CurrentStock = current
		m.ReservedStock = reserved
		m.AvailableStock = m.Available()
		m.UpdatedAt = r.s.now()
		t.materials[id] = m
	})
	return nil
}

func (r *MaterialRepository) SetLastPurchase(_ context.Context, id string, price decimal.Decimal, at time.Time) error {
	r.s.read(func(t *tables) {
		m, ok := t.materials[id]
		if !ok {
			return
		}
		m.LastPurchasePrice = decimal.NewNullDecimal(price)
		m.LastPurchaseDate = &at
		t.materials[id] = m
	})
	return nil
}

func (r *MaterialRepository) InsertTransaction(_ context.Context, tx *model.MaterialTransaction) error {
	r.s.read(func(t *tables) { t.transactions = append(t.transactions, *tx) })
	return nil
}

func (r *MaterialRepository) ListTransactions(_ context.Context, f *dto.TransactionFilters) ([]model.MaterialTransaction, int, error) {
	var all []model.MaterialTransaction
	r.s.read(func(t *tables) {
		for _, tx := range t.transactions {
			if f.MaterialID != "" && tx.MaterialID != f.MaterialID {
				continue
			}
			if f.Type != "" && tx.Type != f.Type {
				continue
			}
			if f.OrderID != "" && (tx.OrderID == nil || *tx.OrderID != f.OrderID) {
				continue
			}
			if f.StartDate != nil && tx.CreatedAt.Before(*f.StartDate) {
				continue
			}
			if f.EndDate != nil && !tx.CreatedAt.Before(*f.EndDate) {
				continue
			}
			all = append(all, tx)
		}
	})
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, f.Page, f.PageSize), len(all), nil
}

func (r *MaterialRepository) Statistics(_ context.Context, id string) (*model.MaterialStatistics, error) {
	s := &model.MaterialStatistics{MaterialID: id}
	r.s.read(func(t *tables) {
		for _, tx := range t.transactions {
			if tx.MaterialID != id {
				continue
			}
			at := tx.CreatedAt
			switch tx.Type {
			case model.TransactionPurchase:
				s.PurchaseCount++
				s.TotalPurchased = s.TotalPurchased.Add(tx.Quantity)
				if tx.TotalCost.Valid {
					s.TotalPurchaseCost = s.TotalPurchaseCost.Add(tx.TotalCost.Decimal)
				}
				if s.LastPurchaseAt == nil || at.After(*s.LastPurchaseAt) {
					s.LastPurchaseAt = &at
				}
			case model.TransactionConsumption:
				s.ConsumptionCount++
				s.TotalConsumed = s.TotalConsumed.Sub(tx.Quantity)
				if s.LastConsumedAt == nil || at.After(*s.LastConsumedAt) {
					s.LastConsumedAt = &at
				}
			case model.TransactionAdjustment:
				s.AdjustmentCount++
			}
		}
	})
	return s, nil
}

// ConsumptionStats implements material.ConsumptionSource with the same
// windows as the SQL aggregate.
func (r *MaterialRepository) ConsumptionStats(_ context.Context, ids []string, now time.Time) (map[string]model.ConsumptionStats, error) {
	out := make(map[string]model.ConsumptionStats, len(ids))
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	week, month := now.AddDate(0, 0, -7), now.AddDate(0, 0, -30)

	r.s.read(func(t *tables) {
		for _, tx := range t.transactions {
			if tx.Type != model.TransactionConsumption || tx.CreatedAt.Before(month) {
				continue
			}
			if _, ok := wanted[tx.MaterialID]; !ok {
				continue
			}
			st := out[tx.MaterialID]
			st.MaterialID = tx.MaterialID
			consumed := tx.Quantity.Neg()
			st.Last30Days = st.Last30Days.Add(consumed)
			if !tx.CreatedAt.Before(week) {
				st.Last7Days = st.Last7Days.Add(consumed)
			}
			out[tx.MaterialID] = st
		}
	})
	for id, st := range out {
		st.AvgDaily = st.Last30Days.Div(thirty)
		out[id] = st
	}
	return out, nil
}

func paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
