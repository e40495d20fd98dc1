package inventoryv1

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ReservationServiceName = "inventory.v1.ReservationService"

type ReservationList struct {
	Reservations []model.Reservation `json:"reservations"`
}

type ReservationLineList struct {
	Reservations []model.ReservationLine `json:"reservations"`
}

type PendingOrdersStatus struct {
	Orders []model.OrderInventoryStatus `json:"orders"`
}

type ReleaseResponse struct {
	Released int `json:"released"`
}

type ReservationServiceServer interface {
	Reserve(context.Context, *OrderRequest) (*ReservationList, error)
	Release(context.Context, *OrderRequest) (*ReleaseResponse, error)
	DrawDown(context.Context, *OrderRequest) (*ReservationList, error)
	ForceFinalConsumption(context.Context, *OrderRequest) (*ReservationList, error)
	ListReservations(context.Context, *OrderRequest) (*ReservationLineList, error)
	GetPendingOrdersStatus(context.Context, *emptypb.Empty) (*PendingOrdersStatus, error)
}

var ReservationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ReservationServiceName,
	HandlerType: (*ReservationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ReservationServiceName, "Reserve", ReservationServiceServer.Reserve),
		rpc.Unary(ReservationServiceName, "Release", ReservationServiceServer.Release),
		rpc.Unary(ReservationServiceName, "DrawDown", ReservationServiceServer.DrawDown),
		rpc.Unary(ReservationServiceName, "ForceFinalConsumption", ReservationServiceServer.ForceFinalConsumption),
		rpc.Unary(ReservationServiceName, "ListReservations", ReservationServiceServer.ListReservations),
		rpc.Unary(ReservationServiceName, "GetPendingOrdersStatus", ReservationServiceServer.GetPendingOrdersStatus),
	},
	Metadata: "inventory/v1/reservation.json",
}

func RegisterReservationServiceServer(s grpc.ServiceRegistrar, srv ReservationServiceServer) {
	s.RegisterService(&ReservationService_ServiceDesc, srv)
}

type ReservationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReservationServiceClient(cc grpc.ClientConnInterface) *ReservationServiceClient {
	return &ReservationServiceClient{cc: cc}
}

func (c *ReservationServiceClient) Reserve(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReservationList, error) {
	return rpc.Invoke[ReservationList](ctx, c.cc, ReservationServiceName, "Reserve", in, opts...)
}

func (c *ReservationServiceClient) Release(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return rpc.Invoke[ReleaseResponse](ctx, c.cc, ReservationServiceName, "Release", in, opts...)
}

func (c *ReservationServiceClient) DrawDown(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReservationList, error) {
	return rpc.Invoke[ReservationList](ctx, c.cc, ReservationServiceName, "DrawDown", in, opts...)
}

func (c *ReservationServiceClient) ForceFinalConsumption(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReservationList, error) {
	return rpc.Invoke[ReservationList](ctx, c.cc, ReservationServiceName, "ForceFinalConsumption", in, opts...)
}

func (c *ReservationServiceClient) ListReservations(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*ReservationLineList, error) {
	return rpc.Invoke[ReservationLineList](ctx, c.cc, ReservationServiceName, "ListReservations", in, opts...)
}

func (c *ReservationServiceClient) GetPendingOrdersStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PendingOrdersStatus, error) {
	return rpc.Invoke[PendingOrdersStatus](ctx, c.cc, ReservationServiceName, "GetPendingOrdersStatus", in, opts...)
}
