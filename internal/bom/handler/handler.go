package handler

import (
	"context"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type BOMHandler struct {
	uc     bom.UseCase
	logger logger.ZapLogger
}

func NewBOMHandler(uc bom.UseCase, log logger.ZapLogger) *BOMHandler {
	return &BOMHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *BOMHandler) UpsertEntry(ctx context.Context, req *inventoryv1.UpsertEntryRequest) (*model.BOMEntry, error) {
	e, err := h.uc.UpsertEntry(ctx, &dto.UpsertEntryInput{
		ProductID:       req.ProductID,
		MaterialID:      req.MaterialID,
		QuantityPerUnit: req.QuantityPerUnit,
		WastePercentage: req.WastePercentage,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return e, nil
}

func (h *BOMHandler) UpdateEntry(ctx context.Context, req *inventoryv1.UpdateEntryRequest) (*model.BOMEntry, error) {
	e, err := h.uc.UpdateEntry(ctx, &dto.UpdateEntryInput{
		ProductID:       req.ProductID,
		MaterialID:      req.MaterialID,
		QuantityPerUnit: req.QuantityPerUnit,
		WastePercentage: req.WastePercentage,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return e, nil
}

func (h *BOMHandler) DeleteEntry(ctx context.Context, req *inventoryv1.EntryKey) (*emptypb.Empty, error) {
	if err := h.uc.DeleteEntry(ctx, req.ProductID, req.MaterialID); err != nil {
		return nil, rpc.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *BOMHandler) GetProductBOM(ctx context.Context, req *inventoryv1.ProductRequest) (*inventoryv1.ProductBOM, error) {
	b, err := h.uc.GetProductBOM(ctx, req.ProductID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	lines := b.Lines
	if lines == nil {
		lines = []model.BOMLine{}
	}
	return &inventoryv1.ProductBOM{ProductID: b.ProductID, Lines: lines, TotalCost: b.TotalCost}, nil
}

func (h *BOMHandler) GetProductsUsingMaterial(ctx context.Context, req *inventoryv1.MaterialRequest) (*inventoryv1.ProductUsageList, error) {
	usages, err := h.uc.GetProductsUsingMaterial(ctx, req.MaterialID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	if usages == nil {
		usages = []model.ProductUsage{}
	}
	return &inventoryv1.ProductUsageList{Products: usages}, nil
}

func (h *BOMHandler) GetRequirements(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.RequirementList, error) {
	reqs, err := h.uc.RequirementsFor(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.RequirementList{Requirements: reqs}, nil
}

func (h *BOMHandler) GetBatchRequirements(ctx context.Context, req *inventoryv1.BatchRequirementsRequest) (*inventoryv1.BatchRequirements, error) {
	b, err := h.uc.RequirementsForBatch(ctx, req.OrderIDs)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return mapBatch(b), nil
}

func (h *BOMHandler) GetPendingRequirements(ctx context.Context, _ *emptypb.Empty) (*inventoryv1.BatchRequirements, error) {
	b, err := h.uc.RequirementsForPendingOrders(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return mapBatch(b), nil
}

func (h *BOMHandler) CheckFulfillment(ctx context.Context, req *inventoryv1.OrderRequest) (*model.FulfillmentCheck, error) {
	check, err := h.uc.CheckFulfillment(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return check, nil
}

func (h *BOMHandler) AnalyzeImpact(ctx context.Context, req *inventoryv1.AnalyzeImpactRequest) (*model.ImpactAnalysis, error) {
	items := make([]dto.ImpactItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = dto.ImpactItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	analysis, err := h.uc.AnalyzeImpact(ctx, items)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return analysis, nil
}

func mapBatch(b *dto.BatchRequirements) *inventoryv1.BatchRequirements {
	return &inventoryv1.BatchRequirements{
		OrderIDs:      b.OrderIDs,
		Requirements:  b.Requirements,
		ShortageCount: b.ShortageCount,
		TotalCost:     b.TotalCost,
	}
}
