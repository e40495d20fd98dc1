package inventoryv1

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const OrderHookServiceName = "inventory.v1.OrderHookService"

type Shortage struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	UnitType     string          `json:"unit_type"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

type OrderCreatedResponse struct {
	OrderID      string              `json:"order_id"`
	CanFulfill   bool                `json:"can_fulfill"`
	Reservations []model.Reservation `json:"reservations"`
	Shortages    []Shortage          `json:"shortages,omitempty"`
	Warning      string              `json:"warning,omitempty"`
}

type OrderStatusChangedRequest struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type OrderStatusChangedResponse struct {
	OrderID      string              `json:"order_id"`
	Action       string              `json:"action"`
	Reservations []model.Reservation `json:"reservations,omitempty"`
	Released     int                 `json:"released,omitempty"`
}

type RecalculateResponse struct {
	OrdersUpdated int      `json:"orders_updated"`
	OrdersFailed  int      `json:"orders_failed"`
	Failed        []string `json:"failed"`
}

type OrderHookServiceServer interface {
	OrderCreated(context.Context, *OrderRequest) (*OrderCreatedResponse, error)
	OrderStatusChanged(context.Context, *OrderStatusChangedRequest) (*OrderStatusChangedResponse, error)
	OrderDeleted(context.Context, *OrderRequest) (*ReleaseResponse, error)
	RecalculateReservations(context.Context, *emptypb.Empty) (*RecalculateResponse, error)
}

var OrderHookService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderHookServiceName,
	HandlerType: (*OrderHookServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(OrderHookServiceName, "OrderCreated", OrderHookServiceServer.OrderCreated),
		rpc.Unary(OrderHookServiceName, "OrderStatusChanged", OrderHookServiceServer.OrderStatusChanged),
		rpc.Unary(OrderHookServiceName, "OrderDeleted", OrderHookServiceServer.OrderDeleted),
		rpc.Unary(OrderHookServiceName, "RecalculateReservations", OrderHookServiceServer.RecalculateReservations),
	},
	Metadata: "inventory/v1/hooks.json",
}

func RegisterOrderHookServiceServer(s grpc.ServiceRegistrar, srv OrderHookServiceServer) {
	s.RegisterService(&OrderHookService_ServiceDesc, srv)
}

type OrderHookServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderHookServiceClient(cc grpc.ClientConnInterface) *OrderHookServiceClient {
	return &OrderHookServiceClient{cc: cc}
}

func (c *OrderHookServiceClient) OrderCreated(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*OrderCreatedResponse, error) {
	return rpc.Invoke[OrderCreatedResponse](ctx, c.cc, OrderHookServiceName, "OrderCreated", in, opts...)
}

func (c *OrderHookServiceClient) OrderStatusChanged(ctx context.Context, in *OrderStatusChangedRequest, opts ...grpc.CallOption) (*OrderStatusChangedResponse, error) {
	return rpc.Invoke[OrderStatusChangedResponse](ctx, c.cc, OrderHookServiceName, "OrderStatusChanged", in, opts...)
}

func (c *OrderHookServiceClient) OrderDeleted(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return rpc.Invoke[ReleaseResponse](ctx, c.cc, OrderHookServiceName, "OrderDeleted", in, opts...)
}

func (c *OrderHookServiceClient) RecalculateReservations(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*RecalculateResponse, error) {
	return rpc.Invoke[RecalculateResponse](ctx, c.cc, OrderHookServiceName, "RecalculateReservations", in, opts...)
}
