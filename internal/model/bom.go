package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectiveQuantity is the per-unit quantity including the waste allowance.
func EffectiveQuantity(perUnit, wastePercentage decimal.Decimal) decimal.Decimal {
	return perUnit.Mul(decimal.NewFromInt(1).Add(wastePercentage.Div(hundred)))
}

type BOMEntry struct {
	ID                string          `db:"id" json:"id"`
	ProductID         string          `db:"product_id" json:"product_id"`
	MaterialID        string          `db:"material_id" json:"material_id"`
	QuantityPerUnit   decimal.Decimal `db:"quantity_per_unit" json:"quantity_per_unit"`
	WastePercentage   decimal.Decimal `db:"waste_percentage" json:"waste_percentage"`
	EffectiveQuantity decimal.Decimal `db:"effective_quantity" json:"effective_quantity"` // Generated column
	Notes             *string         `db:"notes" json:"notes"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// BOMLine is a BOM entry joined with its material.
type BOMLine struct {
	BOMEntry
	MaterialName   string          `db:"material_name" json:"material_name"`
	UnitType       string          `db:"unit_type" json:"unit_type"`
	CostPerUnit    decimal.Decimal `db:"cost_per_unit" json:"cost_per_unit"`
	AvailableStock decimal.Decimal `db:"available_stock" json:"available_stock"`
	CostPerProduct decimal.Decimal `db:"cost_per_product" json:"cost_per_product"`
}

// ProductUsage is one product whose BOM references a given material.
type ProductUsage struct {
	ProductID         string          `db:"product_id" json:"product_id"`
	ProductName       string          `db:"product_name" json:"product_name"`
	QuantityPerUnit   decimal.Decimal `db:"quantity_per_unit" json:"quantity_per_unit"`
	WastePercentage   decimal.Decimal `db:"waste_percentage" json:"waste_percentage"`
	EffectiveQuantity decimal.Decimal `db:"effective_quantity" json:"effective_quantity"`
}
