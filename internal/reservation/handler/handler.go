package handler

import (
	"context"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ReservationHandler struct {
	uc     reservation.UseCase
	logger logger.ZapLogger
}

func NewReservationHandler(uc reservation.UseCase, log logger.ZapLogger) *ReservationHandler {
	return &ReservationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReservationHandler) Reserve(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReservationList, error) {
	return reservationList(h.uc.Reserve(ctx, req.OrderID))
}

func (h *ReservationHandler) Release(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReleaseResponse, error) {
	n, err := h.uc.Release(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.ReleaseResponse{Released: n}, nil
}

func (h *ReservationHandler) DrawDown(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReservationList, error) {
	return reservationList(h.uc.DrawDown(ctx, req.OrderID))
}

func (h *ReservationHandler) ForceFinalConsumption(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReservationList, error) {
	return reservationList(h.uc.ForceFinalConsumption(ctx, req.OrderID))
}

func (h *ReservationHandler) ListReservations(ctx context.Context, req *inventoryv1.OrderRequest) (*inventoryv1.ReservationLineList, error) {
	lines, err := h.uc.ListByOrder(ctx, req.OrderID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	if lines == nil {
		lines = []model.ReservationLine{}
	}
	return &inventoryv1.ReservationLineList{Reservations: lines}, nil
}

func (h *ReservationHandler) GetPendingOrdersStatus(ctx context.Context, _ *emptypb.Empty) (*inventoryv1.PendingOrdersStatus, error) {
	orders, err := h.uc.PendingOrdersStatus(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.PendingOrdersStatus{Orders: orders}, nil
}

func reservationList(rs []model.Reservation, err error) (*inventoryv1.ReservationList, error) {
	if err != nil {
		return nil, rpc.Status(err)
	}
	if rs == nil {
		rs = []model.Reservation{}
	}
	return &inventoryv1.ReservationList{Reservations: rs}, nil
}
