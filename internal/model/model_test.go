package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEffectiveQuantity(t *testing.T) {
	tests := []struct {
		perUnit, waste, want string
	}{
		{"2", "0", "2"},
		{"2", "10", "2.2"},
		{"0.5", "100", "1"},
		{"3", "5", "3.15"},
	}
	for _, tt := range tests {
		got := EffectiveQuantity(dec(tt.perUnit), dec(tt.waste))
		if !got.Equal(dec(tt.want)) {
			t.Errorf("EffectiveQuantity(%s, %s): expected %s, got %s", tt.perUnit, tt.waste, tt.want, got)
		}
	}
}

func TestMaterialAvailableAndLeadTime(t *testing.T) {
	m := Material{CurrentStock: dec("10"), ReservedStock: dec("12")}
	if got := m.Available(); !got.Equal(dec("-2")) {
		t.Errorf("Expected available -2, got %s", got)
	}
	if got := m.LeadTimeDays(); got != DefaultLeadTimeDays {
		t.Errorf("Expected default lead time %d, got %d", DefaultLeadTimeDays, got)
	}
	m.SupplierLeadTimeDays = 3
	if got := m.LeadTimeDays(); got != 3 {
		t.Errorf("Expected lead time 3, got %d", got)
	}
}

func TestReservationDraw(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := Reservation{QuantityReserved: dec("50"), Status: ReservationPending}

	r.Draw(dec("20"), at)
	if r.Status != ReservationPartial {
		t.Errorf("Expected partial, got %s", r.Status)
	}
	if got := r.Outstanding(); !got.Equal(dec("30")) {
		t.Errorf("Expected outstanding 30, got %s", got)
	}
	if r.ConsumedAt != nil {
		t.Errorf("Expected no consumed_at on partial draw")
	}

	r.Draw(dec("30"), at)
	if r.Status != ReservationConsumed {
		t.Errorf("Expected consumed, got %s", r.Status)
	}
	if r.ConsumedAt == nil || !r.ConsumedAt.Equal(at) {
		t.Errorf("Expected consumed_at %v, got %v", at, r.ConsumedAt)
	}
	if !r.Outstanding().IsZero() {
		t.Errorf("Expected nothing outstanding, got %s", r.Outstanding())
	}
}

func TestStockStatusMapping(t *testing.T) {
	tests := []struct {
		status    StockStatus
		level     AlertLevel
		alertType AlertType
		raise     bool
	}{
		{StockOutOfStock, AlertCritical, AlertTypeOutOfStock, true},
		{StockCritical, AlertCritical, AlertTypeReorderNeeded, true},
		{StockLow, AlertWarning, AlertTypeLowStock, true},
		{StockHealthy, AlertHealthy, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Level(); got != tt.level {
				t.Errorf("Expected level %s, got %s", tt.level, got)
			}
			got, raise := tt.status.AlertType()
			if raise != tt.raise || got != tt.alertType {
				t.Errorf("Expected (%s, %v), got (%s, %v)", tt.alertType, tt.raise, got, raise)
			}
		})
	}
}

func TestEnumParsingAndScanning(t *testing.T) {
	if _, err := ParseTransactionType("refund"); err == nil {
		t.Errorf("Expected error for unknown transaction type")
	}
	if tt, err := ParseTransactionType("purchase"); err != nil || tt != TransactionPurchase {
		t.Errorf("Expected purchase, got %s (%v)", tt, err)
	}

	var s ReservationStatus
	if err := s.Scan([]byte("partial")); err != nil || s != ReservationPartial {
		t.Errorf("Expected partial, got %s (%v)", s, err)
	}
	if err := s.Scan(42); err == nil {
		t.Errorf("Expected error scanning an int")
	}

	var l AlertLevel
	if err := l.UnmarshalText([]byte("severe")); err == nil {
		t.Errorf("Expected error for unknown alert level")
	}
	if _, err := AlertType("bogus").Value(); err == nil {
		t.Errorf("Expected error writing an invalid alert type")
	}
}
