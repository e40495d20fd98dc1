package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type AlertRepository struct {
	s *Store
}

func (r *AlertRepository) DeactivateActive(_ context.Context, materialID string, at time.Time) (*model.InventoryAlert, error) {
	var prev *model.InventoryAlert
	r.s.read(func(t *tables) {
		for i := range t.alerts {
			a := &t.alerts[i]
			if a.MaterialID != materialID || !a.IsActive {
				continue
			}
			cp := *a
			prev = &cp
			a.IsActive = false
			a.ResolvedAt = &at
		}
	})
	return prev, nil
}

// Insert rejects a second active alert for a material, like the partial
// unique index does.
func (r *AlertRepository) Insert(_ context.Context, a *model.InventoryAlert) error {
	var err error
	r.s.read(func(t *tables) {
		if a.IsActive {
			for _, cur := range t.alerts {
				if cur.IsActive && cur.MaterialID == a.MaterialID {
					err = fmt.Errorf("material %s already has an active alert", a.MaterialID)
					return
				}
			}
		}
		t.alerts = append(t.alerts, *a)
	})
	return err
}

func (r *AlertRepository) ActiveMaterialIDs(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	ids := []string{}
	r.s.read(func(t *tables) {
		for _, a := range t.alerts {
			if a.IsActive && !seen[a.MaterialID] {
				seen[a.MaterialID] = true
				ids = append(ids, a.MaterialID)
			}
		}
	})
	sort.Strings(ids)
	return ids, nil
}

func (r *AlertRepository) ListActive(_ context.Context, f *dto.ActiveFilters) ([]model.InventoryAlert, error) {
	out := []model.InventoryAlert{}
	r.s.read(func(t *tables) {
		for _, a := range t.alerts {
			if !a.IsActive {
				continue
			}
			if f != nil && f.Level != "" && a.Level != f.Level {
				continue
			}
			if f != nil && f.MaterialID != "" && a.MaterialID != f.MaterialID {
				continue
			}
			out = append(out, a)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := levelRank(out[i].Level), levelRank(out[j].Level)
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AlertRepository) Summary(_ context.Context) (*model.AlertSummary, error) {
	s := &model.AlertSummary{}
	r.s.read(func(t *tables) {
		for _, a := range t.alerts {
			if !a.IsActive {
				continue
			}
			s.Total++
			switch a.Level {
			case model.AlertCritical:
				s.Critical++
			case model.AlertWarning:
				s.Warning++
			}
			if !a.IsAcknowledged {
				s.Unacknowledged++
			}
		}
	})
	return s, nil
}

func (r *AlertRepository) Acknowledge(_ context.Context, id, by string, at time.Time) (*model.InventoryAlert, error) {
	var out *model.InventoryAlert
	r.s.read(func(t *tables) {
		for i := range t.alerts {
			a := &t.alerts[i]
			if a.ID != id {
				continue
			}
			a.IsAcknowledged = true
			a.AcknowledgedAt = &at
			a.AcknowledgedBy = &by
			cp := *a
			out = &cp
			return
		}
	})
	return out, nil
}

func levelRank(l model.AlertLevel) int {
	switch l {
	case model.AlertCritical:
		return 1
	case model.AlertWarning:
		return 2
	}
	return 3
}
