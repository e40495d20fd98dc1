package dto

import "github.com/shopspring/decimal"

type CreateMaterialInput struct {
	Name                 string
	Description          *string
	UnitType             string
	InitialStock         decimal.Decimal
	MinStockLevel        decimal.Decimal
	ReorderPoint         decimal.Decimal
	ReorderQuantity      decimal.Decimal
	CostPerUnit          decimal.Decimal
	SupplierName         *string
	SupplierLeadTimeDays int
	PerformedBy          string
}

// UpdateMaterialInput is a partial update: only non-nil fields are written.
// Stock levels are not updatable here; they move through the ledger.
type UpdateMaterialInput struct {
	ID                   string
	Name                 *string
	Description          *string
	UnitType             *string
	MinStockLevel        *decimal.Decimal
	ReorderPoint         *decimal.Decimal
	ReorderQuantity      *decimal.Decimal
	CostPerUnit          *decimal.Decimal
	SupplierName         *string
	SupplierLeadTimeDays *int
	IsActive             *bool
}

func (in *UpdateMaterialInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.UnitType == nil &&
		in.MinStockLevel == nil && in.ReorderPoint == nil && in.ReorderQuantity == nil &&
		in.CostPerUnit == nil && in.SupplierName == nil && in.SupplierLeadTimeDays == nil &&
		in.IsActive == nil
}

type PurchaseInput struct {
	MaterialID          string
	Quantity            decimal.Decimal
	UnitCost            decimal.Decimal
	SupplierName        *string
	PurchaseOrderNumber *string
	Notes               *string
	PerformedBy         string
}

type ConsumptionInput struct {
	MaterialID  string
	Quantity    decimal.Decimal
	OrderID     *string
	Notes       *string
	PerformedBy string
}

type AdjustStockInput struct {
	MaterialID  string
	NewQuantity decimal.Decimal
	Reason      string
	PerformedBy string
}
