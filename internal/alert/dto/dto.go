package dto

import (
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type ActiveFilters struct {
	Level      model.AlertLevel
	MaterialID string
}

type RefreshResult struct {
	Checked int                    `json:"checked"`
	Alerts  []model.InventoryAlert `json:"alerts"`
	Failed  []string               `json:"failed"`
}

const (
	EventAlertRaised   = "alert.raised"
	EventAlertResolved = "alert.resolved"
)

// AlertEvent is published to the alerts topic whenever a material's alert
// level changes.
type AlertEvent struct {
	Event      string                `json:"event"`
	MaterialID string                `json:"material_id"`
	Alert      *model.InventoryAlert `json:"alert,omitempty"`
}
