package model

import "github.com/shopspring/decimal"

// MaterialRequirement is the aggregated demand for one material across a set of
// order lines.
type MaterialRequirement struct {
	MaterialID     string          `json:"material_id"`
	MaterialName   string          `json:"material_name"`
	UnitType       string          `json:"unit_type"`
	Required       decimal.Decimal `json:"quantity_required"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	IsAvailable    bool            `json:"is_available"`
	Shortage       decimal.Decimal `json:"shortage"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	MaterialCost   decimal.Decimal `json:"material_cost"`
	OrderCount     int             `json:"order_count"`
}

type FulfillmentCheck struct {
	OrderID               string                `json:"order_id"`
	CanFulfill            bool                  `json:"can_fulfill"`
	Requirements          []MaterialRequirement `json:"requirements"`
	InsufficientMaterials []MaterialRequirement `json:"insufficient_materials"`
	TotalMaterialCost     decimal.Decimal       `json:"total_material_cost"`
}

// ImpactLine describes what one material looks like after a prospective order.
type ImpactLine struct {
	MaterialID        string          `json:"material_id"`
	MaterialName      string          `json:"material_name"`
	UnitType          string          `json:"unit_type"`
	CurrentAvailable  decimal.Decimal `json:"current_available"`
	Required          decimal.Decimal `json:"required"`
	AfterOrder        decimal.Decimal `json:"after_order"`
	CanFulfill        bool            `json:"can_fulfill"`
	BelowReorderPoint bool            `json:"below_reorder_point"`
	BelowMinimum      bool            `json:"below_minimum"`
}

type ImpactAnalysis struct {
	CanFulfill     bool         `json:"can_fulfill"`
	Materials      []ImpactLine `json:"materials"`
	Warnings       []string     `json:"warnings"`
	CriticalAlerts []string     `json:"critical_alerts"`
}
