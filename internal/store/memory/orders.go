package memory

import (
	"context"
	"sort"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) Get(_ context.Context, id string) (*model.Order, error) {
	var out *model.Order
	r.s.read(func(t *tables) {
		if o, ok := t.orders[id]; ok {
			out = &o
		}
	})
	return out, nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return r.ListItemsForOrders(ctx, []string{orderID})
}

func (r *OrderRepository) ListItemsForOrders(_ context.Context, orderIDs []string) ([]model.OrderItem, error) {
	wanted := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}
	out := []model.OrderItem{}
	r.s.read(func(t *tables) {
		for _, it := range t.items {
			if _, ok := wanted[it.OrderID]; ok {
				out = append(out, it)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderID != out[j].OrderID {
			return out[i].OrderID < out[j].OrderID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (r *OrderRepository) ListIDsByStatus(_ context.Context, statuses []model.OrderStatus) ([]string, error) {
	wanted := make(map[model.OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}
	ids := []string{}
	r.s.read(func(t *tables) {
		for _, id := range t.orderSeq {
			if _, ok := wanted[t.orders[id].Status]; ok {
				ids = append(ids, id)
			}
		}
	})
	return ids, nil
}

func (r *OrderRepository) InventoryStatus(_ context.Context, statuses []model.OrderStatus) ([]model.OrderInventoryStatus, error) {
	wanted := make(map[model.OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}
	out := []model.OrderInventoryStatus{}
	r.s.read(func(t *tables) {
		for _, id := range t.orderSeq {
			o := t.orders[id]
			if _, ok := wanted[o.Status]; !ok {
				continue
			}
			st := model.OrderInventoryStatus{
				OrderID:       o.ID,
				OrderNumber:   o.OrderNumber,
				Status:        o.Status,
				TotalReserved: decimal.Zero,
				TotalConsumed: decimal.Zero,
				CanFulfill:    true,
			}
			for _, res := range t.reservations {
				if res.OrderID != o.ID {
					continue
				}
				st.MaterialsCount++
				st.TotalReserved = st.TotalReserved.Add(res.QuantityReserved)
				st.TotalConsumed = st.TotalConsumed.Add(res.QuantityConsumed)
				if m := t.materials[res.MaterialID]; m.Available().IsNegative() {
					st.CanFulfill = false
				}
			}
			if st.MaterialsCount == 0 {
				st.CanFulfill = false
			}
			out = append(out, st)
		}
	})
	return out, nil
}
