package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	materialDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/order"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	drawDownNote = "Consumed for order production"
	finalNote    = "Final consumption for delivered order"
)

type reservationUseCase struct {
	repo      reservation.Repository
	materials material.Repository
	ledger    material.UseCase
	boms      bom.Repository
	orders    order.Repository
	tx        postgres.Transactor
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewReservationUseCase(
	repo reservation.Repository,
	materials material.Repository,
	ledger material.UseCase,
	boms bom.Repository,
	orders order.Repository,
	tx postgres.Transactor,
	log logger.ZapLogger,
) reservation.UseCase {
	return &reservationUseCase{
		repo:      repo,
		materials: materials,
		ledger:    ledger,
		boms:      boms,
		orders:    orders,
		tx:        tx,
		logger:    log,
		now:       time.Now,
	}
}

// Reserve locks every material the order needs, recomputes availability under
// the lock and writes all reservations in one transaction. An order's own
// outstanding reservations count as available, so reserving twice replaces
// rather than doubles the hold. Reservations on materials the order no longer
// needs are removed and their quantity returned to available stock.
func (uc *reservationUseCase) Reserve(ctx context.Context, orderID string) ([]model.Reservation, error) {
	items, err := uc.orderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.boms.ListForProducts(ctx, bom.ProductIDs(items))
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM: %w", err)
	}
	held, err := uc.repo.MaterialIDsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	lockIDs := union(bom.MaterialIDs(entries), held)
	if len(lockIDs) == 0 {
		return []model.Reservation{}, nil
	}

	reserved := []model.Reservation{}
	var dropped int
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		mats, err := uc.materials.LockByIDs(ctx, lockIDs)
		if err != nil {
			return fmt.Errorf("failed to lock materials: %w", err)
		}
		existing, err := uc.repo.LockByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to lock reservations: %w", err)
		}

		current := make(map[string]model.Reservation, len(existing))
		credit := make(map[string]decimal.Decimal, len(existing))
		for _, r := range existing {
			if r.QuantityConsumed.IsPositive() {
				return apperr.Invalid("order_id", "has reservations already drawn down by production")
			}
			current[r.MaterialID] = r
			credit[r.MaterialID] = r.Outstanding()
		}

		reqs := bom.Calculate(items, entries, mats, credit)
		if shortages := bom.Shortages(reqs); len(shortages) > 0 {
			return &apperr.InsufficientMaterialError{OrderID: orderID, Shortages: shortages}
		}

		byID := make(map[string]model.Material, len(mats))
		for _, m := range mats {
			byID[m.ID] = m
		}

		now := uc.now()
		needed := make(map[string]struct{}, len(reqs))
		sort.Slice(reqs, func(i, j int) bool { return reqs[i].MaterialID < reqs[j].MaterialID })
		for _, req := range reqs {
			needed[req.MaterialID] = struct{}{}
			prev, had := current[req.MaterialID]
			r := model.Reservation{
				ID:               uuid.New().String(),
				OrderID:          orderID,
				MaterialID:       req.MaterialID,
				QuantityReserved: req.Required,
				QuantityConsumed: decimal.Zero,
				Status:           model.ReservationPending,
				ReservedAt:       now,
				UpdatedAt:        now,
			}
			if had {
				r.ID = prev.ID
			}
			if err := uc.repo.Upsert(ctx, &r); err != nil {
				return fmt.Errorf("failed to write reservation: %w", err)
			}

			m := byID[req.MaterialID]
			newReserved := m.ReservedStock.Sub(prev.QuantityReserved).Add(req.Required)
			if err := uc.materials.SetStock(ctx, m.ID, m.CurrentStock, decimal.Max(decimal.Zero, newReserved)); err != nil {
				return fmt.Errorf("failed to update reserved stock: %w", err)
			}
			reserved = append(reserved, r)
		}

		for _, r := range existing {
			if _, ok := needed[r.MaterialID]; ok {
				continue
			}
			if err := uc.repo.DeleteForOrderMaterial(ctx, orderID, r.MaterialID); err != nil {
				return fmt.Errorf("failed to delete reservation: %w", err)
			}
			if m, ok := byID[r.MaterialID]; ok {
				left := decimal.Max(decimal.Zero, m.ReservedStock.Sub(r.Outstanding()))
				if err := uc.materials.SetStock(ctx, m.ID, m.CurrentStock, left); err != nil {
					return fmt.Errorf("failed to update reserved stock: %w", err)
				}
			}
			dropped++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Materials reserved for order",
		zap.String("order_id", orderID),
		zap.Int("materials", len(reserved)),
		zap.Int("dropped", dropped),
	)
	return reserved, nil
}

// Release removes every reservation of the order and returns its outstanding
// quantity to available stock. Releasing an order without reservations is a
// no-op.
func (uc *reservationUseCase) Release(ctx context.Context, orderID string) (int, error) {
	if orderID == "" {
		return 0, apperr.Invalid("order_id", "is required")
	}

	materialIDs, err := uc.repo.MaterialIDsByOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to read reservations: %w", err)
	}
	if len(materialIDs) == 0 {
		return 0, nil
	}

	var released int
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		mats, err := uc.materials.LockByIDs(ctx, materialIDs)
		if err != nil {
			return fmt.Errorf("failed to lock materials: %w", err)
		}
		rows, err := uc.repo.LockByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to lock reservations: %w", err)
		}

		outstanding := make(map[string]decimal.Decimal, len(rows))
		for _, r := range rows {
			outstanding[r.MaterialID] = outstanding[r.MaterialID].Add(r.Outstanding())
		}
		for _, m := range mats {
			out, ok := outstanding[m.ID]
			if !ok || out.IsZero() {
				continue
			}
			reserved := decimal.Max(decimal.Zero, m.ReservedStock.Sub(out))
			if err := uc.materials.SetStock(ctx, m.ID, m.CurrentStock, reserved); err != nil {
				return fmt.Errorf("failed to update reserved stock: %w", err)
			}
		}

		released, err = uc.repo.DeleteByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("Reservations released", zap.String("order_id", orderID), zap.Int("released", released))
	return released, nil
}

func (uc *reservationUseCase) DrawDown(ctx context.Context, orderID string) ([]model.Reservation, error) {
	return uc.consumeOutstanding(ctx, orderID, drawDownNote, func(r model.Reservation) bool {
		return r.Status == model.ReservationPending || r.Status == model.ReservationPartial
	})
}

func (uc *reservationUseCase) ForceFinalConsumption(ctx context.Context, orderID string) ([]model.Reservation, error) {
	return uc.consumeOutstanding(ctx, orderID, finalNote, func(model.Reservation) bool { return true })
}

// consumeOutstanding runs each selected reservation's outstanding quantity
// through the stock ledger. The ledger draws the reservation down as it
// records the consumption. Any failure rolls back the whole order.
func (uc *reservationUseCase) consumeOutstanding(ctx context.Context, orderID, note string, selected func(model.Reservation) bool) ([]model.Reservation, error) {
	if orderID == "" {
		return nil, apperr.Invalid("order_id", "is required")
	}

	materialIDs, err := uc.repo.MaterialIDsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	if len(materialIDs) == 0 {
		uc.logger.Warn("No reservations to consume", zap.String("order_id", orderID))
		return []model.Reservation{}, nil
	}

	var result []model.Reservation
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.materials.LockByIDs(ctx, materialIDs); err != nil {
			return fmt.Errorf("failed to lock materials: %w", err)
		}
		rows, err := uc.repo.LockByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to lock reservations: %w", err)
		}

		notes := note
		oid := orderID
		for _, r := range rows {
			qty := r.Outstanding()
			if !selected(r) || !qty.IsPositive() {
				continue
			}
			_, err := uc.ledger.RecordConsumption(ctx, &materialDTO.ConsumptionInput{
				MaterialID:  r.MaterialID,
				Quantity:    qty,
				OrderID:     &oid,
				Notes:       &notes,
				PerformedBy: auth.SystemUser,
			})
			if err != nil {
				return err
			}
		}

		result, err = uc.repo.LockByOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *reservationUseCase) ListByOrder(ctx context.Context, orderID string) ([]model.ReservationLine, error) {
	return uc.repo.ListByOrder(ctx, orderID)
}

func (uc *reservationUseCase) PendingOrdersStatus(ctx context.Context) ([]model.OrderInventoryStatus, error) {
	out, err := uc.orders.InventoryStatus(ctx, model.PendingOrderStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending orders: %w", err)
	}
	if out == nil {
		out = []model.OrderInventoryStatus{}
	}
	return out, nil
}

func (uc *reservationUseCase) orderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	if orderID == "" {
		return nil, apperr.Invalid("order_id", "is required")
	}
	o, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}
	items, err := uc.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return items, nil
}

// union merges two id lists into one sorted list without duplicates.
func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
