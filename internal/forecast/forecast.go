package forecast

import (
	"fmt"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Compute builds the forecast of one material from its rolling consumption.
// Day counts are floored and stay nil while there is no consumption history.
func Compute(m *model.Material, stats model.ConsumptionStats, now time.Time) model.Forecast {
	available := m.Available()
	stats.MaterialID = m.ID

	f := model.Forecast{
		MaterialID:           m.ID,
		MaterialName:         m.Name,
		UnitType:             m.UnitType,
		CurrentStock:         m.CurrentStock,
		ReservedStock:        m.ReservedStock,
		AvailableStock:       available,
		MinStockLevel:        m.MinStockLevel,
		ReorderPoint:         m.ReorderPoint,
		LeadTimeDays:         m.LeadTimeDays(),
		Consumption:          stats,
		DaysOfAvailableStock: daysOf(available, stats.AvgDaily),
		DaysOfTotalStock:     daysOf(m.CurrentStock, stats.AvgDaily),
	}
	today := startOfDay(now)
	f.EstimatedDepletionDate = depletionDate(today, f.DaysOfAvailableStock)
	f.EstimatedTotalDepletionDate = depletionDate(today, f.DaysOfTotalStock)
	f.Assessment = Assess(m, f.DaysOfAvailableStock, stats.AvgDaily, today)
	return f
}

// Assess classifies a material. The first matching rule wins:
// no available stock, below minimum, depletes within the supplier lead time,
// below reorder point, healthy.
func Assess(m *model.Material, daysOfAvailable *int64, avgDaily decimal.Decimal, today time.Time) model.Assessment {
	available := m.Available()
	lead := m.LeadTimeDays()

	var a model.Assessment
	switch {
	case !available.IsPositive():
		a = model.Assessment{
			Status:            model.StockOutOfStock,
			Reason:            model.ReasonOutOfStock,
			Message:           fmt.Sprintf("OUT OF STOCK: %s has no available stock", m.Name),
			RecommendedAction: fmt.Sprintf("URGENT: Order immediately! Reserved: %s %s", m.ReservedStock, m.UnitType),
		}
	case available.LessThan(m.MinStockLevel):
		a = model.Assessment{
			Status:  model.StockCritical,
			Reason:  model.ReasonBelowMinimum,
			Message: fmt.Sprintf("CRITICAL: %s below minimum stock level", m.Name),
			RecommendedAction: fmt.Sprintf("Order NOW! Lead time: %d days. Current: %s, Min: %s",
				lead, available, m.MinStockLevel),
		}
	case daysOfAvailable != nil && *daysOfAvailable < int64(lead):
		a = model.Assessment{
			Status:  model.StockCritical,
			Reason:  model.ReasonDepletesWithinLeadTime,
			Message: fmt.Sprintf("CRITICAL: %s will run out in %d days", m.Name, *daysOfAvailable),
			RecommendedAction: fmt.Sprintf("Order NOW! Stock will deplete before next delivery (%d day lead time)",
				lead),
		}
	case available.LessThan(m.ReorderPoint):
		a = model.Assessment{
			Status:  model.StockLow,
			Reason:  model.ReasonBelowReorderPoint,
			Message: fmt.Sprintf("WARNING: %s below reorder point", m.Name),
		}
		if daysOfAvailable != nil {
			slack := *daysOfAvailable - int64(lead)
			if slack < 0 {
				slack = 0
			}
			by := today.AddDate(0, 0, int(slack))
			a.RecommendedAction = fmt.Sprintf("Order within %d days (by %s)", slack, by.Format(dateLayout))
		} else {
			a.RecommendedAction = fmt.Sprintf("Consider ordering soon. Available: %s, Reorder point: %s",
				available, m.ReorderPoint)
		}
	default:
		a = model.Assessment{
			Status:  model.StockHealthy,
			Message: fmt.Sprintf("%s stock is healthy", m.Name),
		}
		if daysOfAvailable != nil {
			a.RecommendedAction = fmt.Sprintf("Stock sufficient for %d days. No action needed.", *daysOfAvailable)
		} else {
			a.RecommendedAction = "No consumption data yet. Monitor usage."
		}
	}

	a.Level = a.Status.Level()
	a.SuggestedReorderQuantity = decimal.Zero
	if a.Status != model.StockHealthy {
		a.SuggestedReorderQuantity = SuggestedReorderQuantity(m, avgDaily)
	}
	return a
}

// SuggestedReorderQuantity is enough to get back above the reorder point and
// cover consumption during the lead time, and never less than the material's
// configured reorder quantity. Rounded up to whole units.
func SuggestedReorderQuantity(m *model.Material, avgDaily decimal.Decimal) decimal.Decimal {
	leadDemand := avgDaily.Mul(decimal.NewFromInt(int64(m.LeadTimeDays())))
	need := m.ReorderPoint.Add(leadDemand).Sub(m.Available())
	qty := decimal.Max(m.ReorderQuantity, need).Ceil()
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

func daysOf(stock, avgDaily decimal.Decimal) *int64 {
	if !avgDaily.IsPositive() {
		return nil
	}
	d := stock.Div(avgDaily).Floor().IntPart()
	return &d
}

func depletionDate(today time.Time, days *int64) *time.Time {
	if days == nil || *days <= 0 {
		return nil
	}
	d := today.AddDate(0, 0, int(*days))
	return &d
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
