package inventoryv1

import (
	"context"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const BOMServiceName = "inventory.v1.BOMService"

type UpsertEntryRequest struct {
	ProductID       string          `json:"product_id"`
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	WastePercentage decimal.Decimal `json:"waste_percentage"`
	Notes           *string         `json:"notes,omitempty"`
}

type UpdateEntryRequest struct {
	ProductID       string           `json:"product_id"`
	MaterialID      string           `json:"material_id"`
	QuantityPerUnit *decimal.Decimal `json:"quantity_per_unit,omitempty"`
	WastePercentage *decimal.Decimal `json:"waste_percentage,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type EntryKey struct {
	ProductID  string `json:"product_id"`
	MaterialID string `json:"material_id"`
}

type ProductRequest struct {
	ProductID string `json:"product_id"`
}

type ProductBOM struct {
	ProductID string          `json:"product_id"`
	Lines     []model.BOMLine `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type MaterialRequest struct {
	MaterialID string `json:"material_id"`
}

type ProductUsageList struct {
	Products []model.ProductUsage `json:"products"`
}

type OrderRequest struct {
	OrderID string `json:"order_id"`
}

type RequirementList struct {
	Requirements []model.MaterialRequirement `json:"requirements"`
}

type BatchRequirementsRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type BatchRequirements struct {
	OrderIDs      []string                    `json:"order_ids"`
	Requirements  []model.MaterialRequirement `json:"requirements"`
	ShortageCount int                         `json:"shortage_count"`
	TotalCost     decimal.Decimal             `json:"total_cost"`
}

type ImpactItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type AnalyzeImpactRequest struct {
	Items []ImpactItem `json:"items"`
}

type BOMServiceServer interface {
	UpsertEntry(context.Context, *UpsertEntryRequest) (*model.BOMEntry, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*model.BOMEntry, error)
	DeleteEntry(context.Context, *EntryKey) (*emptypb.Empty, error)
	GetProductBOM(context.Context, *ProductRequest) (*ProductBOM, error)
	GetProductsUsingMaterial(context.Context, *MaterialRequest) (*ProductUsageList, error)
	GetRequirements(context.Context, *OrderRequest) (*RequirementList, error)
	GetBatchRequirements(context.Context, *BatchRequirementsRequest) (*BatchRequirements, error)
	GetPendingRequirements(context.Context, *emptypb.Empty) (*BatchRequirements, error)
	CheckFulfillment(context.Context, *OrderRequest) (*model.FulfillmentCheck, error)
	AnalyzeImpact(context.Context, *AnalyzeImpactRequest) (*model.ImpactAnalysis, error)
}

var BOMService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BOMServiceName,
	HandlerType: (*BOMServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(BOMServiceName, "UpsertEntry", BOMServiceServer.UpsertEntry),
		rpc.Unary(BOMServiceName, "UpdateEntry", BOMServiceServer.UpdateEntry),
		rpc.Unary(BOMServiceName, "DeleteEntry", BOMServiceServer.DeleteEntry),
		rpc.Unary(BOMServiceName, "GetProductBOM", BOMServiceServer.GetProductBOM),
		rpc.Unary(BOMServiceName, "GetProductsUsingMaterial", BOMServiceServer.GetProductsUsingMaterial),
		rpc.Unary(BOMServiceName, "GetRequirements", BOMServiceServer.GetRequirements),
		rpc.Unary(BOMServiceName, "GetBatchRequirements", BOMServiceServer.GetBatchRequirements),
		rpc.Unary(BOMServiceName, "GetPendingRequirements", BOMServiceServer.GetPendingRequirements),
		rpc.Unary(BOMServiceName, "CheckFulfillment", BOMServiceServer.CheckFulfillment),
		rpc.Unary(BOMServiceName, "AnalyzeImpact", BOMServiceServer.AnalyzeImpact),
	},
	Metadata: "inventory/v1/bom.json",
}

func RegisterBOMServiceServer(s grpc.ServiceRegistrar, srv BOMServiceServer) {
	s.RegisterService(&BOMService_ServiceDesc, srv)
}

type BOMServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBOMServiceClient(cc grpc.ClientConnInterface) *BOMServiceClient {
	return &BOMServiceClient{cc: cc}
}

func (c *BOMServiceClient) UpsertEntry(ctx context.Context, in *UpsertEntryRequest, opts ...grpc.CallOption) (*model.BOMEntry, error) {
	return rpc.Invoke[model.BOMEntry](ctx, c.cc, BOMServiceName, "UpsertEntry", in, opts...)
}

func (c *BOMServiceClient) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*model.BOMEntry, error) {
	return rpc.Invoke[model.BOMEntry](ctx, c.cc, BOMServiceName, "UpdateEntry", in, opts...)
}

func (c *BOMServiceClient) DeleteEntry(ctx context.Context, in *EntryKey, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return rpc.Invoke[emptypb.Empty](ctx, c.cc, BOMServiceName, "DeleteEntry", in, opts...)
}

func (c *BOMServiceClient) GetProductBOM(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*ProductBOM, error) {
	return rpc.Invoke[ProductBOM](ctx, c.cc, BOMServiceName, "GetProductBOM", in, opts...)
}

func (c *BOMServiceClient) GetProductsUsingMaterial(ctx context.Context, in *MaterialRequest, opts ...grpc.CallOption) (*ProductUsageList, error) {
	return rpc.Invoke[ProductUsageList](ctx, c.cc, BOMServiceName, "GetProductsUsingMaterial", in, opts...)
}

func (c *BOMServiceClient) GetRequirements(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*RequirementList, error) {
	return rpc.Invoke[RequirementList](ctx, c.cc, BOMServiceName, "GetRequirements", in, opts...)
}

func (c *BOMServiceClient) GetBatchRequirements(ctx context.Context, in *BatchRequirementsRequest, opts ...grpc.CallOption) (*BatchRequirements, error) {
	return rpc.Invoke[BatchRequirements](ctx, c.cc, BOMServiceName, "GetBatchRequirements", in, opts...)
}

func (c *BOMServiceClient) GetPendingRequirements(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*BatchRequirements, error) {
	return rpc.Invoke[BatchRequirements](ctx, c.cc, BOMServiceName, "GetPendingRequirements", in, opts...)
}

func (c *BOMServiceClient) CheckFulfillment(ctx context.Context, in *OrderRequest, opts ...grpc.CallOption) (*model.FulfillmentCheck, error) {
	return rpc.Invoke[model.FulfillmentCheck](ctx, c.cc, BOMServiceName, "CheckFulfillment", in, opts...)
}

func (c *BOMServiceClient) AnalyzeImpact(ctx context.Context, in *AnalyzeImpactRequest, opts ...grpc.CallOption) (*model.ImpactAnalysis, error) {
	return rpc.Invoke[model.ImpactAnalysis](ctx, c.cc, BOMServiceName, "AnalyzeImpact", in, opts...)
}
