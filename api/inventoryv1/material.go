package inventoryv1

import (
	"context"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const MaterialServiceName = "inventory.v1.MaterialService"

type CreateMaterialRequest struct {
	Name                 string          `json:"name"`
	Description          *string         `json:"description,omitempty"`
	UnitType             string          `json:"unit_type"`
	InitialStock         decimal.Decimal `json:"initial_stock"`
	MinStockLevel        decimal.Decimal `json:"min_stock_level"`
	ReorderPoint         decimal.Decimal `json:"reorder_point"`
	ReorderQuantity      decimal.Decimal `json:"reorder_quantity"`
	CostPerUnit          decimal.Decimal `json:"cost_per_unit"`
	SupplierName         *string         `json:"supplier_name,omitempty"`
	SupplierLeadTimeDays int             `json:"supplier_lead_time_days"`
}

type GetMaterialRequest struct {
	ID string `json:"id"`
}

type ListMaterialsRequest struct {
	ActiveOnly bool   `json:"active_only"`
	LowStock   bool   `json:"low_stock"`
	Search     string `json:"search"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

type ListMaterialsResponse struct {
	Materials []model.Material `json:"materials"`
	Total     int              `json:"total"`
}

type UpdateMaterialRequest struct {
	ID                   string           `json:"id"`
	Name                 *string          `json:"name,omitempty"`
	Description          *string          `json:"description,omitempty"`
	UnitType             *string          `json:"unit_type,omitempty"`
	MinStockLevel        *decimal.Decimal `json:"min_stock_level,omitempty"`
	ReorderPoint         *decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity      *decimal.Decimal `json:"reorder_quantity,omitempty"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit,omitempty"`
	SupplierName         *string          `json:"supplier_name,omitempty"`
	SupplierLeadTimeDays *int             `json:"supplier_lead_time_days,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
}

type RecordPurchaseRequest struct {
	MaterialID          string          `json:"material_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	SupplierName        *string         `json:"supplier_name,omitempty"`
	PurchaseOrderNumber *string         `json:"purchase_order_number,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
}

type RecordConsumptionRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	OrderID    *string         `json:"order_id,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

type AdjustStockRequest struct {
	MaterialID  string          `json:"material_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
}

type StockMovement struct {
	Material    *model.Material            `json:"material"`
	Transaction *model.MaterialTransaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	MaterialID string     `json:"material_id"`
	Type       string     `json:"transaction_type"`
	OrderID    string     `json:"order_id"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

type ListTransactionsResponse struct {
	Transactions []model.MaterialTransaction `json:"transactions"`
	Total        int                         `json:"total"`
}

type GetStatisticsRequest struct {
	MaterialID string `json:"material_id"`
}

type MaterialServiceServer interface {
	CreateMaterial(context.Context, *CreateMaterialRequest) (*model.Material, error)
	GetMaterial(context.Context, *GetMaterialRequest) (*model.Material, error)
	ListMaterials(context.Context, *ListMaterialsRequest) (*ListMaterialsResponse, error)
	UpdateMaterial(context.Context, *UpdateMaterialRequest) (*model.Material, error)
	RecordPurchase(context.Context, *RecordPurchaseRequest) (*StockMovement, error)
	RecordConsumption(context.Context, *RecordConsumptionRequest) (*StockMovement, error)
	AdjustStock(context.Context, *AdjustStockRequest) (*StockMovement, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	GetStatistics(context.Context, *GetStatisticsRequest) (*model.MaterialStatistics, error)
}

var MaterialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MaterialServiceName,
	HandlerType: (*MaterialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(MaterialServiceName, "CreateMaterial", MaterialServiceServer.CreateMaterial),
		rpc.Unary(MaterialServiceName, "GetMaterial", MaterialServiceServer.GetMaterial),
		rpc.Unary(MaterialServiceName, "ListMaterials", MaterialServiceServer.ListMaterials),
		rpc.Unary(MaterialServiceName, "UpdateMaterial", MaterialServiceServer.UpdateMaterial),
		rpc.Unary(MaterialServiceName, "RecordPurchase", MaterialServiceServer.RecordPurchase),
		rpc.Unary(MaterialServiceName, "RecordConsumption", MaterialServiceServer.RecordConsumption),
		rpc.Unary(MaterialServiceName, "AdjustStock", MaterialServiceServer.AdjustStock),
		rpc.Unary(MaterialServiceName, "ListTransactions", MaterialServiceServer.ListTransactions),
		rpc.Unary(MaterialServiceName, "GetStatistics", MaterialServiceServer.GetStatistics),
	},
	Metadata: "inventory/v1/material.json",
}

func RegisterMaterialServiceServer(s grpc.ServiceRegistrar, srv MaterialServiceServer) {
	s.RegisterService(&MaterialService_ServiceDesc, srv)
}

type MaterialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMaterialServiceClient(cc grpc.ClientConnInterface) *MaterialServiceClient {
	return &MaterialServiceClient{cc: cc}
}

func (c *MaterialServiceClient) CreateMaterial(ctx context.Context, in *CreateMaterialRequest, opts ...grpc.CallOption) (*model.Material, error) {
	return rpc.Invoke[model.Material](ctx, c.cc, MaterialServiceName, "CreateMaterial", in, opts...)
}

func (c *MaterialServiceClient) GetMaterial(ctx context.Context, in *GetMaterialRequest, opts ...grpc.CallOption) (*model.Material, error) {
	return rpc.Invoke[model.Material](ctx, c.cc, MaterialServiceName, "GetMaterial", in, opts...)
}

func (c *MaterialServiceClient) ListMaterials(ctx context.Context, in *ListMaterialsRequest, opts ...grpc.CallOption) (*ListMaterialsResponse, error) {
	return rpc.Invoke[ListMaterialsResponse](ctx, c.cc, MaterialServiceName, "ListMaterials", in, opts...)
}

func (c *MaterialServiceClient) UpdateMaterial(ctx context.Context, in *UpdateMaterialRequest, opts ...grpc.CallOption) (*model.Material, error) {
	return rpc.Invoke[model.Material](ctx, c.cc, MaterialServiceName, "UpdateMaterial", in, opts...)
}

func (c *MaterialServiceClient) RecordPurchase(ctx context.Context, in *RecordPurchaseRequest, opts ...grpc.CallOption) (*StockMovement, error) {
	return rpc.Invoke[StockMovement](ctx, c.cc, MaterialServiceName, "RecordPurchase", in, opts...)
}

func (c *MaterialServiceClient) RecordConsumption(ctx context.Context, in *RecordConsumptionRequest, opts ...grpc.CallOption) (*StockMovement, error) {
	return rpc.Invoke[StockMovement](ctx, c.cc, MaterialServiceName, "RecordConsumption", in, opts...)
}

func (c *MaterialServiceClient) AdjustStock(ctx context.Context, in *AdjustStockRequest, opts ...grpc.CallOption) (*StockMovement, error) {
	return rpc.Invoke[StockMovement](ctx, c.cc, MaterialServiceName, "AdjustStock", in, opts...)
}

func (c *MaterialServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return rpc.Invoke[ListTransactionsResponse](ctx, c.cc, MaterialServiceName, "ListTransactions", in, opts...)
}

func (c *MaterialServiceClient) GetStatistics(ctx context.Context, in *GetStatisticsRequest, opts ...grpc.CallOption) (*model.MaterialStatistics, error) {
	return rpc.Invoke[model.MaterialStatistics](ctx, c.cc, MaterialServiceName, "GetStatistics", in, opts...)
}
