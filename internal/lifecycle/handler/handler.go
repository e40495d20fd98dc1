package handler

import (
	"context"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// OrderHookHandler lets the order subsystem call the lifecycle hooks directly
// when it does not publish events.
type OrderHookHandler struct {
	uc     lifecycle.UseCase
	logger logger.ZapLogger
}

func NewOrderHookHandler(uc lifecycle.UseCase, log logger.ZapLogger) *OrderHookHandler {
	return &OrderHookHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHookHandler) OrderCreated(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.OrderCreatedResponse, error) {
	res, err := h.uc.OnOrderCreated(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}

	out := &inventoryv1.OrderCreatedResponse{
		OrderID:      res.OrderID,
		CanFulfill:   res.CanFulfill,
		Reservations: res.Reservations,
		Warning:      res.Warning,
	}
	for _, s := range res.Shortages {
		out.Shortages = append(out.Shortages, inventoryv1.Shortage{
			MaterialID:   s.MaterialID,
			MaterialName: s.MaterialName,
			UnitType:     s.UnitType,
			Required:     s.Required,
			Available:    s.Available,
			Shortfall:    s.Shortfall,
		})
	}
	return out, nil
}

func (h *OrderHookHandler) OrderStatusChanged(ctx context.Context, req *inventoryv1.OrderStatusChangedRequest) (*inventoryv1.OrderStatusChangedResponse, error) {
	res, err := h.uc.OnOrderStatusChanged(ctx, req.OrderID, model.OrderStatus(req.OldStatus), model.OrderStatus(req.NewStatus))
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.OrderStatusChangedResponse{
		OrderID:      res.OrderID,
		Action:       string(res.Action),
		Reservations: res.Reservations,
		Released:     res.Released,
	}, nil
}

func (h *OrderHookHandler) OrderDeleted(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReleaseResponse, error) {
	n, err := h.uc.OnOrderDeleted(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.ReleaseResponse{Released: n}, nil
}

func (h *OrderHookHandler) RecalculateReservations(ctx context.Context, _ *emptypb.Empty) (*inventoryv1.RecalculateResponse, error) {
	res, err := h.uc.RecalculateAllReservations(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.RecalculateResponse{
		OrdersUpdated: res.OrdersUpdated,
		OrdersFailed:  res.OrdersFailed,
		Failed:        res.Failed,
	}, nil
}
