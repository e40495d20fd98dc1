package usecase

import (
	"context"
	"fmt"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/order"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxWaste = decimal.NewFromInt(100)

type bomUseCase struct {
	repo      bom.Repository
	materials material.Repository
	orders    order.Repository
	logger    logger.ZapLogger
}

func NewBOMUseCase(repo bom.Repository, materials material.Repository, orders order.Repository, log logger.ZapLogger) bom.UseCase {
	return &bomUseCase{
		repo:      repo,
		materials: materials,
		orders:    orders,
		logger:    log,
	}
}

func (uc *bomUseCase) UpsertEntry(ctx context.Context, input *dto.UpsertEntryInput) (*model.BOMEntry, error) {
	if input.ProductID == "" {
		return nil, apperr.Invalid("product_id", "is required")
	}
	if input.MaterialID == "" {
		return nil, apperr.Invalid("material_id", "is required")
	}
	if !input.QuantityPerUnit.IsPositive() {
		return nil, apperr.Invalid("quantity_per_unit", "must be positive")
	}
	if err := validateWaste(input.WastePercentage); err != nil {
		return nil, err
	}

	if err := uc.ensureProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if err := uc.ensureMaterial(ctx, input.MaterialID); err != nil {
		return nil, err
	}

	e := &model.BOMEntry{
		ID:                uuid.New().String(),
		ProductID:         input.ProductID,
		MaterialID:        input.MaterialID,
		QuantityPerUnit:   input.QuantityPerUnit,
		WastePercentage:   input.WastePercentage,
		EffectiveQuantity: model.EffectiveQuantity(input.QuantityPerUnit, input.WastePercentage),
		Notes:             input.Notes,
	}
	if err := uc.repo.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to upsert BOM entry: %w", err)
	}

	uc.logger.Info("BOM entry saved",
		zap.String("product_id", e.ProductID),
		zap.String("material_id", e.MaterialID),
		zap.String("effective_quantity", e.EffectiveQuantity.String()),
	)
	return uc.repo.Get(ctx, input.ProductID, input.MaterialID)
}

func (uc *bomUseCase) UpdateEntry(ctx context.Context, input *dto.UpdateEntryInput) (*model.BOMEntry, error) {
	if input.ProductID == "" || input.MaterialID == "" {
		return nil, apperr.Invalid("product_id/material_id", "are required")
	}
	if input.Empty() {
		return nil, apperr.Invalid("", "no fields to update")
	}
	if input.QuantityPerUnit != nil && !input.QuantityPerUnit.IsPositive() {
		return nil, apperr.Invalid("quantity_per_unit", "must be positive")
	}
	if input.WastePercentage != nil {
		if err := validateWaste(*input.WastePercentage); err != nil {
			return nil, err
		}
	}

	found, err := uc.repo.Update(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update BOM entry: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("BOM entry", input.ProductID+"/"+input.MaterialID)
	}
	return uc.repo.Get(ctx, input.ProductID, input.MaterialID)
}

func (uc *bomUseCase) DeleteEntry(ctx context.Context, productID, materialID string) error {
	deleted, err := uc.repo.Delete(ctx, productID, materialID)
	if err != nil {
		return fmt.Errorf("failed to delete BOM entry: %w", err)
	}
	if !deleted {
		return apperr.NotFound("BOM entry", productID+"/"+materialID)
	}
	return nil
}

func (uc *bomUseCase) GetProductBOM(ctx context.Context, productID string) (*dto.ProductBOM, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	lines, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductBOM{ProductID: productID, Lines: lines, TotalCost: decimal.Zero}
	for _, l := range lines {
		out.TotalCost = out.TotalCost.Add(l.CostPerProduct)
	}
	return out, nil
}

func (uc *bomUseCase) GetProductsUsingMaterial(ctx context.Context, materialID string) ([]model.ProductUsage, error) {
	if err := uc.ensureMaterial(ctx, materialID); err != nil {
		return nil, err
	}
	return uc.repo.ListByMaterial(ctx, materialID)
}

func (uc *bomUseCase) RequirementsFor(ctx context.Context, orderID string) ([]model.MaterialRequirement, error) {
	if orderID == "" {
		return nil, apperr.Invalid("order_id", "is required")
	}
	o, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order", orderID)
	}

	items, err := uc.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.calculate(ctx, items)
}

func (uc *bomUseCase) RequirementsForBatch(ctx context.Context, orderIDs []string) (*dto.BatchRequirements, error) {
	if len(orderIDs) == 0 {
		return &dto.BatchRequirements{OrderIDs: []string{}, Requirements: []model.MaterialRequirement{}, TotalCost: decimal.Zero}, nil
	}

	items, err := uc.orders.ListItemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	reqs, err := uc.calculate(ctx, items)
	if err != nil {
		return nil, err
	}

	out := &dto.BatchRequirements{OrderIDs: orderIDs, Requirements: reqs, TotalCost: decimal.Zero}
	for _, r := range reqs {
		if !r.IsAvailable {
			out.ShortageCount++
		}
		out.TotalCost = out.TotalCost.Add(r.MaterialCost)
	}
	return out, nil
}

func (uc *bomUseCase) RequirementsForPendingOrders(ctx context.Context) (*dto.BatchRequirements, error) {
	ids, err := uc.orders.ListIDsByStatus(ctx, model.PendingOrderStatuses)
	if err != nil {
		return nil, err
	}
	return uc.RequirementsForBatch(ctx, ids)
}

func (uc *bomUseCase) CheckFulfillment(ctx context.Context, orderID string) (*model.FulfillmentCheck, error) {
	reqs, err := uc.RequirementsFor(ctx, orderID)
	if err != nil {
		return nil, err
	}

	check := &model.FulfillmentCheck{
		OrderID:               orderID,
		CanFulfill:            true,
		Requirements:          reqs,
		InsufficientMaterials: []model.MaterialRequirement{},
		TotalMaterialCost:     decimal.Zero,
	}
	for _, r := range reqs {
		if !r.IsAvailable {
			check.CanFulfill = false
			check.InsufficientMaterials = append(check.InsufficientMaterials, r)
		}
		check.TotalMaterialCost = check.TotalMaterialCost.Add(r.MaterialCost)
	}
	return check, nil
}

// AnalyzeImpact previews an order that does not exist yet: what each material
// would look like after it and which thresholds it would cross.
func (uc *bomUseCase) AnalyzeImpact(ctx context.Context, input []dto.ImpactItem) (*model.ImpactAnalysis, error) {
	if len(input) == 0 {
		return nil, apperr.Invalid("items", "must not be empty")
	}
	items := make([]model.OrderItem, len(input))
	for i, it := range input {
		if it.ProductID == "" {
			return nil, apperr.Invalid("items.product_id", "is required")
		}
		if !it.Quantity.IsPositive() {
			return nil, apperr.Invalid("items.quantity", "must be positive")
		}
		items[i] = model.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	entries, err := uc.repo.ListForProducts(ctx, bom.ProductIDs(items))
	if err != nil {
		return nil, err
	}
	mats, err := uc.materials.GetByIDs(ctx, bom.MaterialIDs(entries))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Material, len(mats))
	for _, m := range mats {
		byID[m.ID] = m
	}

	analysis := &model.ImpactAnalysis{
		CanFulfill:     true,
		Materials:      []model.ImpactLine{},
		Warnings:       []string{},
		CriticalAlerts: []string{},
	}
	for _, req := range bom.Calculate(items, entries, mats, nil) {
		m := byID[req.MaterialID]
		after := req.AvailableStock.Sub(req.Required)
		line := model.ImpactLine{
			MaterialID:       req.MaterialID,
			MaterialName:     req.MaterialName,
			UnitType:         req.UnitType,
			CurrentAvailable: req.AvailableStock,
			Required:         req.Required,
			AfterOrder:       after,
			CanFulfill:       req.IsAvailable,
		}

		switch {
		case !line.CanFulfill:
			analysis.CanFulfill = false
			analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
				"Insufficient %s: need %s, have %s (shortage: %s)",
				req.MaterialName, req.Required, req.AvailableStock, req.Shortage))
		case after.LessThan(m.ReorderPoint):
			line.BelowReorderPoint = true
			analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
				"%s will drop below reorder point after this order (%s < %s)",
				req.MaterialName, after, m.ReorderPoint))
		}
		if !after.IsNegative() && after.LessThan(m.MinStockLevel) {
			line.BelowMinimum = true
			analysis.CriticalAlerts = append(analysis.CriticalAlerts, fmt.Sprintf(
				"WARNING: %s will be critically low after this order (%s %s)",
				req.MaterialName, after, req.UnitType))
		}
		analysis.Materials = append(analysis.Materials, line)
	}
	return analysis, nil
}

func (uc *bomUseCase) calculate(ctx context.Context, items []model.OrderItem) ([]model.MaterialRequirement, error) {
	if len(items) == 0 {
		return []model.MaterialRequirement{}, nil
	}
	entries, err := uc.repo.ListForProducts(ctx, bom.ProductIDs(items))
	if err != nil {
		return nil, err
	}
	mats, err := uc.materials.GetByIDs(ctx, bom.MaterialIDs(entries))
	if err != nil {
		return nil, err
	}
	return bom.Calculate(items, entries, mats, nil), nil
}

func (uc *bomUseCase) ensureProduct(ctx context.Context, productID string) error {
	ok, err := uc.repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("product", productID)
	}
	return nil
}

func (uc *bomUseCase) ensureMaterial(ctx context.Context, materialID string) error {
	m, err := uc.materials.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if m == nil {
		return apperr.NotFound("material", materialID)
	}
	return nil
}

func validateWaste(w decimal.Decimal) error {
	if w.IsNegative() || w.GreaterThan(maxWaste) {
		return apperr.Invalid("waste_percentage", "must be between 0 and 100")
	}
	return nil
}
