package memory

import (
	"context"
	"sort"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type ReservationRepository struct {
	s *Store
}

func (r *ReservationRepository) ListByOrder(_ context.Context, orderID string) ([]model.ReservationLine, error) {
	out := []model.ReservationLine{}
	r.s.read(func(t *tables) {
		for _, res := range t.reservations {
			if res.OrderID != orderID {
				continue
			}
			m := t.materials[res.MaterialID]
			out = append(out, model.ReservationLine{Reservation: res, MaterialName: m.Name, UnitType: m.UnitType})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialName < out[j].MaterialName })
	return out, nil
}

func (r *ReservationRepository) MaterialIDsByOrder(_ context.Context, orderID string) ([]string, error) {
	ids := []string{}
	r.s.read(func(t *tables) {
		for _, res := range t.reservations {
			if res.OrderID == orderID {
				ids = append(ids, res.MaterialID)
			}
		}
	})
	sort.Strings(ids)
	return ids, nil
}

func (r *ReservationRepository) LockByOrder(ctx context.Context, orderID string) ([]model.Reservation, error) {
	if !inTx(ctx) {
		return nil, errNoTx
	}
	out := []model.Reservation{}
	r.s.read(func(t *tables) {
		for _, res := range t.reservations {
			if res.OrderID == orderID {
				out = append(out, res)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}

func (r *ReservationRepository) LockForOrderMaterial(ctx context.Context, orderID, materialID string) (*model.Reservation, error) {
	if !inTx(ctx) {
		return nil, errNoTx
	}
	var out *model.Reservation
	r.s.read(func(t *tables) {
		if res, ok := t.reservations[key(orderID, materialID)]; ok {
			out = &res
		}
	})
	return out, nil
}

func (r *ReservationRepository) Upsert(_ context.Context, res *model.Reservation) error {
	r.s.read(func(t *tables) {
		k := key(res.OrderID, res.MaterialID)
		cp := *res
		if prev, ok := t.reservations[k]; ok {
			cp.ID = prev.ID
		}
		t.reservations[k] = cp
	})
	return nil
}

func (r *ReservationRepository) Update(_ context.Context, res *model.Reservation) error {
	r.s.read(func(t *tables) {
		for k, cur := range t.reservations {
			if cur.ID != res.ID {
				continue
			}
			cur.QuantityConsumed = res.QuantityConsumed
			cur.Status = res.Status
			cur.ConsumedAt = res.ConsumedAt
			cur.UpdatedAt = res.UpdatedAt
			t.reservations[k] = cur
			return
		}
	})
	return nil
}

func (r *ReservationRepository) DeleteForOrderMaterial(_ context.Context, orderID, materialID string) error {
	r.s.read(func(t *tables) { delete(t.reservations, key(orderID, materialID)) })
	return nil
}

func (r *ReservationRepository) DeleteByOrder(_ context.Context, orderID string) (int, error) {
	var n int
	r.s.read(func(t *tables) {
		for k, res := range t.reservations {
			if res.OrderID == orderID {
				delete(t.reservations, k)
				n++
			}
		}
	})
	return n, nil
}
