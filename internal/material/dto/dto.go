package dto

import (
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
)

type MaterialFilters struct {
	ActiveOnly bool
	LowStock   bool // available_stock below reorder_point
	Search     string
	Page       int
	PageSize   int
}

type TransactionFilters struct {
	MaterialID string
	Type       model.TransactionType
	OrderID    string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}

// StockMovement is the result of a ledger write: the material after the change
// and the transaction row that recorded it.
type StockMovement struct {
	Material    *model.Material            `json:"material"`
	Transaction *model.MaterialTransaction `json:"transaction"`
}
