package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionStats are the rolling consumption figures for one material.
type ConsumptionStats struct {
	MaterialID string          `db:"material_id" json:"material_id"`
	Last7Days  decimal.Decimal `db:"consumption_last_7_days" json:"last_7_days"`
	Last30Days decimal.Decimal `db:"consumption_last_30_days" json:"last_30_days"`
	AvgDaily   decimal.Decimal `db:"avg_daily_consumption" json:"avg_daily"`
}

// Assessment is the stock health classification of a material.
type Assessment struct {
	Status                   StockStatus     `json:"stock_status"`
	Reason                   StatusReason    `json:"reason,omitempty"`
	Level                    AlertLevel      `json:"alert_level"`
	Message                  string          `json:"alert_message"`
	RecommendedAction        string          `json:"recommended_action"`
	SuggestedReorderQuantity decimal.Decimal `json:"suggested_reorder_quantity"`
}

type Forecast struct {
	MaterialID                  string           `json:"material_id"`
	MaterialName                string           `json:"material_name"`
	UnitType                    string           `json:"unit_type"`
	CurrentStock                decimal.Decimal  `json:"current_stock"`
	ReservedStock               decimal.Decimal  `json:"reserved_stock"`
	AvailableStock              decimal.Decimal  `json:"available_stock"`
	MinStockLevel               decimal.Decimal  `json:"min_stock_level"`
	ReorderPoint                decimal.Decimal  `json:"reorder_point"`
	LeadTimeDays                int              `json:"lead_time_days"`
	Consumption                 ConsumptionStats `json:"consumption"`
	DaysOfAvailableStock        *int64           `json:"days_of_available_stock"`
	DaysOfTotalStock            *int64           `json:"days_of_total_stock"`
	EstimatedDepletionDate      *time.Time       `json:"estimated_depletion_date"`
	EstimatedTotalDepletionDate *time.Time       `json:"estimated_total_depletion_date"`
	Assessment                  Assessment       `json:"status"`
}
