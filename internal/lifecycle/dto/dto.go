package dto

import (
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

const WarningInsufficientMaterials = "Order created but insufficient materials available"

type CreatedResult struct {
	OrderID      string              `json:"order_id"`
	CanFulfill   bool                `json:"can_fulfill"`
	Reservations []model.Reservation `json:"reservations"`
	Shortages    []apperr.Shortage   `json:"shortages,omitempty"`
	Warning      string              `json:"warning,omitempty"`
}

// Action names what a status change did to the order's reservations.
type Action string

const (
	ActionNone             Action = "none"
	ActionDrawDown         Action = "draw_down"
	ActionRelease          Action = "release"
	ActionFinalConsumption Action = "final_consumption"
)

type StatusChangeResult struct {
	OrderID      string              `json:"order_id"`
	Action       Action              `json:"action"`
	Reservations []model.Reservation `json:"reservations,omitempty"`
	Released     int                 `json:"released,omitempty"`
}

type RecalculateResult struct {
	OrdersUpdated int      `json:"orders_updated"`
	OrdersFailed  int      `json:"orders_failed"`
	Failed        []string `json:"failed"`
}
