package inventoryv1

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ForecastServiceName = "inventory.v1.ForecastService"

type ForecastList struct {
	Forecasts []model.Forecast `json:"forecasts"`
}

type RefreshAlertResponse struct {
	// Alert is nil when the material is healthy.
	Alert *model.InventoryAlert `json:"alert"`
}

type RefreshAllAlertsResponse struct {
	Checked int                    `json:"checked"`
	Alerts  []model.InventoryAlert `json:"alerts"`
	Failed  []string               `json:"failed"`
}

type ListActiveAlertsRequest struct {
	Level      string `json:"alert_level"`
	MaterialID string `json:"material_id"`
}

type AlertList struct {
	Alerts []model.InventoryAlert `json:"alerts"`
}

type AcknowledgeAlertRequest struct {
	AlertID        string `json:"alert_id"`
	AcknowledgedBy string `json:"acknowledged_by"`
}

type ForecastServiceServer interface {
	GetForecast(context.Context, *MaterialRequest) (*model.Forecast, error)
	ListForecasts(context.Context, *emptypb.Empty) (*ForecastList, error)
	RefreshAlert(context.Context, *MaterialRequest) (*RefreshAlertResponse, error)
	RefreshAllAlerts(context.Context, *emptypb.Empty) (*RefreshAllAlertsResponse, error)
	ListActiveAlerts(context.Context, *ListActiveAlertsRequest) (*AlertList, error)
	GetAlertSummary(context.Context, *emptypb.Empty) (*model.AlertSummary, error)
	AcknowledgeAlert(context.Context, *AcknowledgeAlertRequest) (*model.InventoryAlert, error)
}

var ForecastService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ForecastServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ForecastServiceName, "GetForecast", ForecastServiceServer.GetForecast),
		rpc.Unary(ForecastServiceName, "ListForecasts", ForecastServiceServer.ListForecasts),
		rpc.Unary(ForecastServiceName, "RefreshAlert", ForecastServiceServer.RefreshAlert),
		rpc.Unary(ForecastServiceName, "RefreshAllAlerts", ForecastServiceServer.RefreshAllAlerts),
		rpc.Unary(ForecastServiceName, "ListActiveAlerts", ForecastServiceServer.ListActiveAlerts),
		rpc.Unary(ForecastServiceName, "GetAlertSummary", ForecastServiceServer.GetAlertSummary),
		rpc.Unary(ForecastServiceName, "AcknowledgeAlert", ForecastServiceServer.AcknowledgeAlert),
	},
	Metadata: "inventory/v1/forecast.json",
}

func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ForecastService_ServiceDesc, srv)
}

type ForecastServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewForecastServiceClient(cc grpc.ClientConnInterface) *ForecastServiceClient {
	return &ForecastServiceClient{cc: cc}
}

func (c *ForecastServiceClient) GetForecast(ctx context.Context, in *MaterialRequest, opts ...grpc.CallOption) (*model.Forecast, error) {
	return rpc.Invoke[model.Forecast](ctx, c.cc, ForecastServiceName, "GetForecast", in, opts...)
}

func (c *ForecastServiceClient) ListForecasts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ForecastList, error) {
	return rpc.Invoke[ForecastList](ctx, c.cc, ForecastServiceName, "ListForecasts", in, opts...)
}

func (c *ForecastServiceClient) RefreshAlert(ctx context.Context, in *MaterialRequest, opts ...grpc.CallOption) (*RefreshAlertResponse, error) {
	return rpc.Invoke[RefreshAlertResponse](ctx, c.cc, ForecastServiceName, "RefreshAlert", in, opts...)
}

func (c *ForecastServiceClient) RefreshAllAlerts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*RefreshAllAlertsResponse, error) {
	return rpc.Invoke[RefreshAllAlertsResponse](ctx, c.cc, ForecastServiceName, "RefreshAllAlerts", in, opts...)
}

func (c *ForecastServiceClient) ListActiveAlerts(ctx context.Context, in *ListActiveAlertsRequest, opts ...grpc.CallOption) (*AlertList, error) {
	return rpc.Invoke[AlertList](ctx, c.cc, ForecastServiceName, "ListActiveAlerts", in, opts...)
}

func (c *ForecastServiceClient) GetAlertSummary(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*model.AlertSummary, error) {
	return rpc.Invoke[model.AlertSummary](ctx, c.cc, ForecastServiceName, "GetAlertSummary", in, opts...)
}

func (c *ForecastServiceClient) AcknowledgeAlert(ctx context.Context, in *AcknowledgeAlertRequest, opts ...grpc.CallOption) (*model.InventoryAlert, error) {
	return rpc.Invoke[model.InventoryAlert](ctx, c.cc, ForecastServiceName, "AcknowledgeAlert", in, opts...)
}
