package model

import "github.com/shopspring/decimal"

type Order struct {
	ID          string      `db:"id" json:"id"`
	OrderNumber string      `db:"order_number" json:"order_number"`
	Status      OrderStatus `db:"status" json:"status"`
}

type OrderItem struct {
	OrderID     string          `db:"order_id" json:"order_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
}

// OrderInventoryStatus summarizes the reservations held by one pending order.
// CanFulfill is false while the order holds no reservations, or when any of
// its reserved materials is over-reserved (available stock below zero).
type OrderInventoryStatus struct {
	OrderID        string          `db:"order_id" json:"order_id"`
	OrderNumber    string          `db:"order_number" json:"order_number"`
	Status         OrderStatus     `db:"status" json:"status"`
	MaterialsCount int             `db:"materials_count" json:"materials_count"`
	TotalReserved  decimal.Decimal `db:"total_reserved" json:"total_reserved"`
	TotalConsumed  decimal.Decimal `db:"total_consumed" json:"total_consumed"`
	CanFulfill     bool            `db:"can_fulfill" json:"can_fulfill"`
}
