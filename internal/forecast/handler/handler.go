package handler

import (
	"context"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert"
	alertDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ForecastHandler serves forecasts and the alerts derived from them.
type ForecastHandler struct {
	forecasts forecast.UseCase
	alerts    alert.UseCase
	logger    logger.ZapLogger
}

func NewForecastHandler(forecasts forecast.UseCase, alerts alert.UseCase, log logger.ZapLogger) *ForecastHandler {
	return &ForecastHandler{
		forecasts: forecasts,
		alerts:    alerts,
		logger:    log,
	}
}

func (h *ForecastHandler) GetForecast(ctx context.Context, req *inventoryv1.MaterialRequest) (*model.Forecast, error) {
	f, err := h.forecasts.Forecast(ctx, req.MaterialID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return f, nil
}

func (h *ForecastHandler) ListForecasts(ctx context.Context, _ *emptypb.Empty) (*inventoryv1.ForecastList, error) {
	fs, err := h.forecasts.ForecastAll(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.ForecastList{Forecasts: fs}, nil
}

func (h *ForecastHandler) RefreshAlert(ctx context.Context, req *inventoryv1.MaterialRequest) (*inventoryv1.RefreshAlertResponse, error) {
	a, err := h.alerts.RefreshAlert(ctx, req.MaterialID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.RefreshAlertResponse{Alert: a}, nil
}

func (h *ForecastHandler) RefreshAllAlerts(ctx context.Context, _ *emptypb.Empty) (*inventoryv1.RefreshAllAlertsResponse, error) {
	res, err := h.alerts.RefreshAllAlerts(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &inventoryv1.RefreshAllAlertsResponse{Checked: res.Checked, Alerts: res.Alerts, Failed: res.Failed}, nil
}

func (h *ForecastHandler) ListActiveAlerts(ctx context.Context, req *inventoryv1.ListActiveAlertsRequest) (*inventoryv1.AlertList, error) {
	filters := &alertDTO.ActiveFilters{MaterialID: req.MaterialID}
	if req.Level != "" {
		level, err := model.ParseAlertLevel(req.Level)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filters.Level = level
	}

	items, err := h.alerts.ListActive(ctx, filters)
	if err != nil {
		return nil, rpc.Status(err)
	}
	if items == nil {
		items = []model.InventoryAlert{}
	}
	return &inventoryv1.AlertList{Alerts: items}, nil
}

func (h *ForecastHandler) GetAlertSummary(ctx context.Context, _ *emptypb.Empty) (*model.AlertSummary, error) {
	s, err := h.alerts.Summary(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return s, nil
}

func (h *ForecastHandler) AcknowledgeAlert(ctx context.Context, req *inventoryv1.AcknowledgeAlertRequest) (*model.InventoryAlert, error) {
	a, err := h.alerts.Acknowledge(ctx, req.AlertID, req.AcknowledgedBy)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return a, nil
}
