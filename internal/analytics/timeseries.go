package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

// DailyMetric is one day bucket of the order/revenue time series.
type DailyMetric struct {
	Date       time.Time
	OrderCount int
	Revenue    decimal.Decimal
}

// MonthlyTrend is one month bucket of the order trend. OrderCount counts
// rows, not distinct orders; the daily metric is the finer-grained one.
type MonthlyTrend struct {
	Month      string
	OrderCount int
}

// AggregateByDay buckets lines into calendar days by approval time and
// reduces each day to a distinct-order count and an exact payment sum.
// Lines that were never approved are skipped. Days with no lines do not
// appear in the output; the series is ascending with no gap filling.
func AggregateByDay(lines []domain.OrderLine) []DailyMetric {
	type bucket struct {
		orders  map[string]struct{}
		revenue decimal.Decimal
	}
	buckets := make(map[time.Time]*bucket)
	for _, l := range lines {
		if l.ApprovedAt == nil {
			continue
		}
		day := truncateToDay(*l.ApprovedAt)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[day] = b
		}
		b.orders[l.OrderID] = struct{}{}
		b.revenue = b.revenue.Add(l.PaymentValue)
	}

	metrics := make([]DailyMetric, 0, len(buckets))
	for day, b := range buckets {
		metrics = append(metrics, DailyMetric{
			Date:       day,
			OrderCount: len(b.orders),
			Revenue:    b.revenue,
		})
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date.Before(metrics[j].Date) })
	return metrics
}

// AggregateByMonth buckets lines into calendar months by purchase time and
// counts rows per month, ascending. Lines without a purchase time are
// skipped.
func AggregateByMonth(lines []domain.OrderLine) []MonthlyTrend {
	counts := make(map[string]int)
	for _, l := range lines {
		if l.PurchasedAt == nil {
			continue
		}
		counts[l.PurchasedAt.Format("2006-01")]++
	}

	trend := make([]MonthlyTrend, 0, len(counts))
	for month, n := range counts {
		trend = append(trend, MonthlyTrend{Month: month, OrderCount: n})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })
	return trend
}

// truncateToDay drops the time-of-day component without converting the
// location; buckets follow the timestamp's own calendar.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
