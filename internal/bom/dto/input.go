package dto

import "github.com/shopspring/decimal"

type UpsertEntryInput struct {
	ProductID       string
	MaterialID      string
	QuantityPerUnit decimal.Decimal
	WastePercentage decimal.Decimal
	Notes           *string
}

// UpdateEntryInput is a partial update of one (product, material) entry.
type UpdateEntryInput struct {
	ProductID       string
	MaterialID      string
	QuantityPerUnit *decimal.Decimal
	WastePercentage *decimal.Decimal
	Notes           *string
}

func (in *UpdateEntryInput) Empty() bool {
	return in.QuantityPerUnit == nil && in.WastePercentage == nil && in.Notes == nil
}

// ImpactItem is one line of a prospective order.
type ImpactItem struct {
	ProductID string
	Quantity  decimal.Decimal
}
