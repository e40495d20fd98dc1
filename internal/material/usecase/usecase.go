package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type materialUseCase struct {
	repo         material.Repository
	reservations reservation.Repository
	consumption  material.ConsumptionSource
	tx           postgres.Transactor
	logger       logger.ZapLogger
	now          func() time.Time
}

func NewMaterialUseCase(
	repo material.Repository,
	reservations reservation.Repository,
	consumption material.ConsumptionSource,
	tx postgres.Transactor,
	log logger.ZapLogger,
) material.UseCase {
	return &materialUseCase{
		repo:         repo,
		reservations: reservations,
		consumption:  consumption,
		tx:           tx,
		logger:       log,
		now:          time.Now,
	}
}

func (uc *materialUseCase) CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "is required")
	}
	unit := strings.TrimSpace(input.UnitType)
	if unit == "" {
		return nil, apperr.Invalid("unit_type", "is required")
	}
	for field, v := range map[string]decimal.Decimal{
		"initial_stock":    input.InitialStock,
		"min_stock_level":  input.MinStockLevel,
		"reorder_point":    input.ReorderPoint,
		"reorder_quantity": input.ReorderQuantity,
		"cost_per_unit":    input.CostPerUnit,
	} {
		if v.IsNegative() {
			return nil, apperr.Invalid(field, "must not be negative")
		}
	}
	if input.SupplierLeadTimeDays < 0 {
		return nil, apperr.Invalid("supplier_lead_time_days", "must not be negative")
	}

	leadTime := input.SupplierLeadTimeDays
	if leadTime == 0 {
		leadTime = model.DefaultLeadTimeDays
	}

	now := uc.now()
	m := &model.Material{
		BaseModel:            model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:                 name,
		Description:          input.Description,
		UnitType:             unit,
		MinStockLevel:        input.MinStockLevel,
		ReorderPoint:         input.ReorderPoint,
		ReorderQuantity:      input.ReorderQuantity,
		CostPerUnit:          input.CostPerUnit,
		SupplierName:         input.SupplierName,
		SupplierLeadTimeDays: leadTime,
		IsActive:             true,
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create material: %w", err)
		}
		if !input.InitialStock.IsPositive() {
			return nil
		}

		// Opening stock goes through the ledger so every unit has a history row.
		notes := "Initial stock"
		t := &model.MaterialTransaction{
			ID:          uuid.New().String(),
			MaterialID:  m.ID,
			Type:        model.TransactionAdjustment,
			Quantity:    input.InitialStock,
			StockBefore: decimal.Zero,
			StockAfter:  input.InitialStock,
			Notes:       &notes,
			PerformedBy: performedBy(ctx, input.PerformedBy),
			CreatedAt:   now,
		}
		if err := uc.repo.SetStock(ctx, m.ID, input.InitialStock, decimal.Zero); err != nil {
			return fmt.Errorf("failed to set initial stock: %w", err)
		}
		if err := uc.repo.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("failed to log initial stock: %w", err)
		}
		m.CurrentStock = input.InitialStock
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.AvailableStock = m.Available()
	uc.logger.Info("Material created", zap.String("material_id", m.ID), zap.String("name", m.Name))
	return m, nil
}

func (uc *materialUseCase) GetMaterial(ctx context.Context, id string) (*model.Material, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("material", id)
	}
	return m, nil
}

func (uc *materialUseCase) ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *materialUseCase) UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error) {
	if input.ID == "" {
		return nil, apperr.Invalid("id", "is required")
	}
	if input.Empty() {
		return nil, apperr.Invalid("", "no fields to update")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperr.Invalid("name", "must not be empty")
	}
	if input.UnitType != nil && strings.TrimSpace(*input.UnitType) == "" {
		return nil, apperr.Invalid("unit_type", "must not be empty")
	}
	for field, v := range map[string]*decimal.Decimal{
		"min_stock_level":  input.MinStockLevel,
		"reorder_point":    input.ReorderPoint,
		"reorder_quantity": input.ReorderQuantity,
		"cost_per_unit":    input.CostPerUnit,
	} {
		if v != nil && v.IsNegative() {
			return nil, apperr.Invalid(field, "must not be negative")
		}
	}
	if input.SupplierLeadTimeDays != nil && *input.SupplierLeadTimeDays <= 0 {
		return nil, apperr.Invalid("supplier_lead_time_days", "must be positive")
	}

	found, err := uc.repo.Update(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("material", input.ID)
	}
	return uc.GetMaterial(ctx, input.ID)
}

func (uc *materialUseCase) RecordPurchase(ctx context.Context, input *dto.PurchaseInput) (*dto.StockMovement, error) {
	if input.MaterialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}
	if !input.Quantity.IsPositive() {
		return nil, apperr.Invalid("quantity", "must be positive")
	}
	if input.UnitCost.IsNegative() {
		return nil, apperr.Invalid("unit_cost", "must not be negative")
	}

	var result *dto.StockMovement
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := uc.lockOne(ctx, input.MaterialID)
		if err != nil {
			return err
		}

		now := uc.now()
		before := m.CurrentStock
		after := before.Add(input.Quantity)

		t := &model.MaterialTransaction{
			ID:                  uuid.New().String(),
			MaterialID:          m.ID,
			Type:                model.TransactionPurchase,
			Quantity:            input.Quantity,
			StockBefore:         before,
			StockAfter:          after,
			UnitCost:            decimal.NewNullDecimal(input.UnitCost),
			TotalCost:           decimal.NewNullDecimal(input.Quantity.Mul(input.UnitCost)),
			SupplierName:        input.SupplierName,
			PurchaseOrderNumber: input.PurchaseOrderNumber,
			Notes:               input.Notes,
			PerformedBy:         performedBy(ctx, input.PerformedBy),
			CreatedAt:           now,
		}

		if err := uc.repo.SetStock(ctx, m.ID, after, m.ReservedStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := uc.repo.SetLastPurchase(ctx, m.ID, input.UnitCost, now); err != nil {
			return fmt.Errorf("failed to update purchase metadata: %w", err)
		}
		if err := uc.repo.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("failed to log purchase: %w", err)
		}

		m.CurrentStock = after
		m.AvailableStock = m.Available()
		m.LastPurchasePrice = decimal.NewNullDecimal(input.UnitCost)
		m.LastPurchaseDate = &now
		result = &dto.StockMovement{Material: m, Transaction: t}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Purchase recorded",
		zap.String("material_id", input.MaterialID),
		zap.String("quantity", input.Quantity.String()),
		zap.String("stock_after", result.Transaction.StockAfter.String()),
	)
	return result, nil
}

// RecordConsumption removes stock. With an order it also draws the consumed
// quantity from that order's reservation, never past what is outstanding, so
// reserved stock only shrinks by what the reservation actually covered.
func (uc *materialUseCase) RecordConsumption(ctx context.Context, input *dto.ConsumptionInput) (*dto.StockMovement, error) {
	if input.MaterialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}
	if !input.Quantity.IsPositive() {
		return nil, apperr.Invalid("quantity", "must be positive")
	}
	if input.OrderID != nil && *input.OrderID == "" {
		input.OrderID = nil
	}

	var result *dto.StockMovement
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := uc.lockOne(ctx, input.MaterialID)
		if err != nil {
			return err
		}

		if input.Quantity.GreaterThan(m.CurrentStock) {
			return &apperr.InsufficientStockError{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				UnitType:     m.UnitType,
				Requested:    input.Quantity,
				Available:    m.CurrentStock,
			}
		}

		now := uc.now()
		before := m.CurrentStock
		after := before.Sub(input.Quantity)
		reserved := m.ReservedStock

		if input.OrderID != nil {
			r, err := uc.reservations.LockForOrderMaterial(ctx, *input.OrderID, m.ID)
			if err != nil {
				return fmt.Errorf("failed to read reservation: %w", err)
			}
			if r != nil {
				drawn := decimal.Min(input.Quantity, r.Outstanding())
				if drawn.IsPositive() {
					r.Draw(drawn, now)
					if err := uc.reservations.Update(ctx, r); err != nil {
						return fmt.Errorf("failed to update reservation: %w", err)
					}
					reserved = decimal.Max(decimal.Zero, reserved.Sub(drawn))
				}
			}
		}

		t := &model.MaterialTransaction{
			ID:          uuid.New().String(),
			MaterialID:  m.ID,
			Type:        model.TransactionConsumption,
			Quantity:    input.Quantity.Neg(),
			StockBefore: before,
			StockAfter:  after,
			OrderID:     input.OrderID,
			Notes:       input.Notes,
			PerformedBy: performedBy(ctx, input.PerformedBy),
			CreatedAt:   now,
		}

		if err := uc.repo.SetStock(ctx, m.ID, after, reserved); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := uc.repo.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("failed to log consumption: %w", err)
		}

		m.CurrentStock = after
		m.ReservedStock = reserved
		m.AvailableStock = m.Available()
		result = &dto.StockMovement{Material: m, Transaction: t}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("material_id", input.MaterialID),
		zap.String("quantity", input.Quantity.String()),
		zap.String("stock_after", result.Transaction.StockAfter.String()),
	}
	if input.OrderID != nil {
		fields = append(fields, zap.String("order_id", *input.OrderID))
	}
	uc.logger.Info("Consumption recorded", fields...)
	return result, nil
}

// AdjustStock sets current stock to an absolute value. Reservations are left
// untouched, so available stock may go negative afterwards.
func (uc *materialUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.StockMovement, error) {
	if input.MaterialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}
	if input.NewQuantity.IsNegative() {
		return nil, apperr.Invalid("new_quantity", "must not be negative")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, apperr.Invalid("reason", "is required")
	}

	var result *dto.StockMovement
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := uc.lockOne(ctx, input.MaterialID)
		if err != nil {
			return err
		}

		before := m.CurrentStock
		reason := input.Reason
		t := &model.MaterialTransaction{
			ID:          uuid.New().String(),
			MaterialID:  m.ID,
			Type:        model.TransactionAdjustment,
			Quantity:    input.NewQuantity.Sub(before),
			StockBefore: before,
			StockAfter:  input.NewQuantity,
			Notes:       &reason,
			PerformedBy: performedBy(ctx, input.PerformedBy),
			CreatedAt:   uc.now(),
		}

		if err := uc.repo.SetStock(ctx, m.ID, input.NewQuantity, m.ReservedStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := uc.repo.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("failed to log adjustment: %w", err)
		}

		m.CurrentStock = input.NewQuantity
		m.AvailableStock = m.Available()
		result = &dto.StockMovement{Material: m, Transaction: t}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Material.AvailableStock.IsNegative() {
		uc.logger.Warn("Adjustment left material over-reserved",
			zap.String("material_id", input.MaterialID),
			zap.String("available_stock", result.Material.AvailableStock.String()),
		)
	}
	return result, nil
}

func (uc *materialUseCase) ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.MaterialTransaction, int, error) {
	if filters.Type != "" && !filters.Type.Valid() {
		return nil, 0, apperr.Invalid("transaction_type", "is unknown")
	}
	return uc.repo.ListTransactions(ctx, filters)
}

func (uc *materialUseCase) GetStatistics(ctx context.Context, id string) (*model.MaterialStatistics, error) {
	if _, err := uc.GetMaterial(ctx, id); err != nil {
		return nil, err
	}

	stats, err := uc.repo.Statistics(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics: %w", err)
	}

	consumption, err := uc.consumption.ConsumptionStats(ctx, []string{id}, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to read consumption: %w", err)
	}
	if c, ok := consumption[id]; ok {
		stats.Consumption = c
	} else {
		stats.Consumption = model.ConsumptionStats{MaterialID: id}
	}
	return stats, nil
}

func (uc *materialUseCase) lockOne(ctx context.Context, id string) (*model.Material, error) {
	mats, err := uc.repo.LockByIDs(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("failed to lock material: %w", err)
	}
	if len(mats) == 0 {
		return nil, apperr.NotFound("material", id)
	}
	return &mats[0], nil
}

func performedBy(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return auth.GetUserID(ctx)
}
