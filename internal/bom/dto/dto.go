package dto

import (
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

type ProductBOM struct {
	ProductID string          `json:"product_id"`
	Lines     []model.BOMLine `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type BatchRequirements struct {
	OrderIDs      []string                    `json:"order_ids"`
	Requirements  []model.MaterialRequirement `json:"requirements"`
	ShortageCount int                         `json:"shortage_count"`
	TotalCost     decimal.Decimal             `json:"total_cost"`
}
