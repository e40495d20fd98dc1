package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryAlert struct {
	ID                       string          `db:"id" json:"id"`
	MaterialID               string          `db:"material_id" json:"material_id"`
	MaterialName             string          `db:"material_name" json:"material_name"`
	Level                    AlertLevel      `db:"alert_level" json:"alert_level"`
	Type                     AlertType       `db:"alert_type" json:"alert_type"`
	Message                  string          `db:"alert_message" json:"alert_message"`
	RecommendedAction        string          `db:"recommended_action" json:"recommended_action"`
	CurrentStock             decimal.Decimal `db:"current_stock" json:"current_stock"`
	ReservedStock            decimal.Decimal `db:"reserved_stock" json:"reserved_stock"`
	AvailableStock           decimal.Decimal `db:"available_stock" json:"available_stock"`
	MinStockLevel            decimal.Decimal `db:"min_stock_level" json:"min_stock_level"`
	EstimatedDepletionDate   *time.Time      `db:"estimated_depletion_date" json:"estimated_depletion_date"`
	DaysUntilDepletion       *int64          `db:"days_until_depletion" json:"days_until_depletion"`
	SuggestedReorderQuantity decimal.Decimal `db:"suggested_reorder_quantity" json:"suggested_reorder_quantity"`
	IsActive                 bool            `db:"is_active" json:"is_active"`
	IsAcknowledged           bool            `db:"is_acknowledged" json:"is_acknowledged"`
	AcknowledgedAt           *time.Time      `db:"acknowledged_at" json:"acknowledged_at"`
	AcknowledgedBy           *string         `db:"acknowledged_by" json:"acknowledged_by"`
	ResolvedAt               *time.Time      `db:"resolved_at" json:"resolved_at"`
	CreatedAt                time.Time       `db:"created_at" json:"created_at"`
}

type AlertSummary struct {
	Critical       int `db:"critical" json:"critical"`
	Warning        int `db:"warning" json:"warning"`
	Unacknowledged int `db:"unacknowledged" json:"unacknowledged"`
	Total          int `db:"total" json:"total"`
}
