package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLeadTimeDays applies when a material has no supplier lead time on record.
const DefaultLeadTimeDays = 7

type Material struct {
	BaseModel
	Name                 string              `db:"name" json:"name"`
	Description          *string             `db:"description" json:"description"`
	UnitType             string              `db:"unit_type" json:"unit_type"`
	CurrentStock         decimal.Decimal     `db:"current_stock" json:"current_stock"`
	ReservedStock        decimal.Decimal     `db:"reserved_stock" json:"reserved_stock"`
	AvailableStock       decimal.Decimal     `db:"available_stock" json:"available_stock"` // Generated column
	MinStockLevel        decimal.Decimal     `db:"min_stock_level" json:"min_stock_level"`
	ReorderPoint         decimal.Decimal     `db:"reorder_point" json:"reorder_point"`
	ReorderQuantity      decimal.Decimal     `db:"reorder_quantity" json:"reorder_quantity"`
	CostPerUnit          decimal.Decimal     `db:"cost_per_unit" json:"cost_per_unit"`
	SupplierName         *string             `db:"supplier_name" json:"supplier_name"`
	SupplierLeadTimeDays int                 `db:"supplier_lead_time_days" json:"supplier_lead_time_days"`
	LastPurchasePrice    decimal.NullDecimal `db:"last_purchase_price" json:"last_purchase_price"`
	LastPurchaseDate     *time.Time          `db:"last_purchase_date" json:"last_purchase_date"`
	IsActive             bool                `db:"is_active" json:"is_active"`
}

// Available is current minus reserved stock. It can be negative when stock was
// corrected or consumed below the reserved level.
func (m *Material) Available() decimal.Decimal {
	return m.CurrentStock.Sub(m.ReservedStock)
}

// LeadTimeDays returns the supplier lead time, falling back to DefaultLeadTimeDays.
func (m *Material) LeadTimeDays() int {
	if m.SupplierLeadTimeDays <= 0 {
		return DefaultLeadTimeDays
	}
	return m.SupplierLeadTimeDays
}

type MaterialTransaction struct {
	ID                  string              `db:"id" json:"id"`
	MaterialID          string              `db:"material_id" json:"material_id"`
	Type                TransactionType     `db:"transaction_type" json:"transaction_type"`
	Quantity            decimal.Decimal     `db:"quantity" json:"quantity"`
	StockBefore         decimal.Decimal     `db:"stock_before" json:"stock_before"`
	StockAfter          decimal.Decimal     `db:"stock_after" json:"stock_after"`
	OrderID             *string             `db:"order_id" json:"order_id"`
	UnitCost            decimal.NullDecimal `db:"unit_cost" json:"unit_cost"`
	TotalCost           decimal.NullDecimal `db:"total_cost" json:"total_cost"`
	SupplierName        *string             `db:"supplier_name" json:"supplier_name"`
	PurchaseOrderNumber *string             `db:"purchase_order_number" json:"purchase_order_number"`
	Notes               *string             `db:"notes" json:"notes"`
	PerformedBy         string              `db:"performed_by" json:"performed_by"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
}

// MaterialStatistics summarizes the ledger for one material.
type MaterialStatistics struct {
	MaterialID        string           `db:"material_id" json:"material_id"`
	PurchaseCount     int              `db:"purchase_count" json:"purchase_count"`
	TotalPurchased    decimal.Decimal  `db:"total_purchased" json:"total_purchased"`
	TotalPurchaseCost decimal.Decimal  `db:"total_purchase_cost" json:"total_purchase_cost"`
	ConsumptionCount  int              `db:"consumption_count" json:"consumption_count"`
	TotalConsumed     decimal.Decimal  `db:"total_consumed" json:"total_consumed"`
	AdjustmentCount   int              `db:"adjustment_count" json:"adjustment_count"`
	LastPurchaseAt    *time.Time       `db:"last_purchase_at" json:"last_purchase_at"`
	LastConsumedAt    *time.Time       `db:"last_consumed_at" json:"last_consumed_at"`
	Consumption       ConsumptionStats `db:"-" json:"consumption"`
}
