package handler

import (
	"context"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type MaterialHandler struct {
	uc     material.UseCase
	logger logger.ZapLogger
}

func NewMaterialHandler(uc material.UseCase, log logger.ZapLogger) *MaterialHandler {
	return &MaterialHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *MaterialHandler) CreateMaterial(ctx context.Context, req *inventoryv1.CreateMaterialRequest) (*model.Material, error) {
	m, err := h.uc.CreateMaterial(ctx, &dto.CreateMaterialInput{
		Name:                 req.Name,
		Description:          req.Description,
		UnitType:             req.UnitType,
		InitialStock:         req.InitialStock,
		MinStockLevel:        req.MinStockLevel,
		ReorderPoint:         req.ReorderPoint,
		ReorderQuantity:      req.ReorderQuantity,
		CostPerUnit:          req.CostPerUnit,
		SupplierName:         req.SupplierName,
		SupplierLeadTimeDays: req.SupplierLeadTimeDays,
		PerformedBy:          auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return m, nil
}

func (h *MaterialHandler) GetMaterial(ctx context.Context, req *inventoryv1.GetMaterialRequest) (*model.Material, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	m, err := h.uc.GetMaterial(ctx, req.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return m, nil
}

func (h *MaterialHandler) ListMaterials(ctx context.Context, req *inventoryv1.ListMaterialsRequest) (*inventoryv1.ListMaterialsResponse, error) {
	items, count, err := h.uc.ListMaterials(ctx, &dto.MaterialFilters{
		ActiveOnly: req.ActiveOnly,
		LowStock:   req.LowStock,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	if items == nil {
		items = []model.Material{}
	}
	return &inventoryv1.ListMaterialsResponse{Materials: items, Total: count}, nil
}

func (h *MaterialHandler) UpdateMaterial(ctx context.Context, req *inventoryv1.UpdateMaterialRequest) (*model.Material, error) {
	m, err := h.uc.UpdateMaterial(ctx, &dto.UpdateMaterialInput{
		ID:                   req.ID,
		Name:                 req.Name,
		Description:          req.Description,
		UnitType:             req.UnitType,
		MinStockLevel:        req.MinStockLevel,
		ReorderPoint:         req.ReorderPoint,
		ReorderQuantity:      req.ReorderQuantity,
		CostPerUnit:          req.CostPerUnit,
		SupplierName:         req.SupplierName,
		SupplierLeadTimeDays: req.SupplierLeadTimeDays,
		IsActive:             req.IsActive,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return m, nil
}

func (h *MaterialHandler) RecordPurchase(ctx context.Context, req *inventoryv1.RecordPurchaseRequest) (*inventoryv1.StockMovement, error) {
	mv, err := h.uc.RecordPurchase(ctx, &dto.PurchaseInput{
		MaterialID:          req.MaterialID,
		Quantity:            req.Quantity,
		UnitCost:            req.UnitCost,
		SupplierName:        req.SupplierName,
		PurchaseOrderNumber: req.PurchaseOrderNumber,
		Notes:               req.Notes,
		PerformedBy:         auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return mapMovement(mv), nil
}

func (h *MaterialHandler) RecordConsumption(ctx context.Context, req *inventoryv1.RecordConsumptionRequest) (*inventoryv1.StockMovement, error) {
	mv, err := h.uc.RecordConsumption(ctx, &dto.ConsumptionInput{
		MaterialID:  req.MaterialID,
		Quantity:    req.Quantity,
		OrderID:     req.OrderID,
		Notes:       req.Notes,
		PerformedBy: auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return mapMovement(mv), nil
}

func (h *MaterialHandler) AdjustStock(ctx context.Context, req *inventoryv1.AdjustStockRequest) (*inventoryv1.StockMovement, error) {
	mv, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		MaterialID:  req.MaterialID,
		NewQuantity: req.NewQuantity,
		Reason:      req.Reason,
		PerformedBy: auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return mapMovement(mv), nil
}

func (h *MaterialHandler) ListTransactions(ctx context.Context, req *inventoryv1.ListTransactionsRequest) (*inventoryv1.ListTransactionsResponse, error) {
	filters := &dto.TransactionFilters{
		MaterialID: req.MaterialID,
		OrderID:    req.OrderID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.Type != "" {
		t, err := model.ParseTransactionType(req.Type)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filters.Type = t
	}

	items, count, err := h.uc.ListTransactions(ctx, filters)
	if err != nil {
		return nil, rpc.Status(err)
	}
	if items == nil {
		items = []model.MaterialTransaction{}
	}
	return &inventoryv1.ListTransactionsResponse{Transactions: items, Total: count}, nil
}

func (h *MaterialHandler) GetStatistics(ctx context.Context, req *inventoryv1.GetStatisticsRequest) (*model.MaterialStatistics, error) {
	s, err := h.uc.GetStatistics(ctx, req.MaterialID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return s, nil
}

func mapMovement(mv *dto.StockMovement) *inventoryv1.StockMovement {
	return &inventoryv1.StockMovement{Material: mv.Material, Transaction: mv.Transaction}
}
