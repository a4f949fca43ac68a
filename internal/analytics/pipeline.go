package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

// ErrInvalidRange is returned when a date-range filter has start after end.
var ErrInvalidRange = errors.New("invalid date range: start is after end")

// DateRange is an inclusive [Start, End] filter on approval time.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Options sizes the ranked views of a report.
type Options struct {
	TopCategories int
	TopCustomers  int
}

// DefaultOptions matches the dashboard: ten categories, five customers.
func DefaultOptions() Options {
	return Options{TopCategories: 10, TopCustomers: 5}
}

// Report is the named bundle of result tables one pipeline run produces.
// Every table is recomputed from scratch on each run; nothing persists.
type Report struct {
	TotalOrders          int
	TotalRevenue         decimal.Decimal
	DailyMetrics         []DailyMetric
	MonthlyTrend         []MonthlyTrend
	PaymentMethodCounts  []CategoryAggregate
	CategoryRatings      []CategoryAggregate
	TopCategoriesBySales []CategoryAggregate
	RFMByCustomer        []RFMRecord
	TopCustomers         []RFMRecord
	GeoOrderCounts       []GeoAggregate
	ReferenceDate        time.Time
}

// Pipeline fans the aggregators out over an immutable slice of order lines.
type Pipeline struct {
	opts Options
}

// NewPipeline creates a pipeline with the given view sizes.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run applies the optional approval-date filter and computes every result
// table. The aggregators are independent pure functions of the same input,
// so they run concurrently and only join before assembly. The RFM reference
// date always comes from the unfiltered lines: filtering changes which
// customers are scored, never the anchor they are scored against.
func (p *Pipeline) Run(ctx context.Context, lines []domain.OrderLine, dateRange *DateRange) (*Report, error) {
	if dateRange != nil && dateRange.Start.After(dateRange.End) {
		return nil, ErrInvalidRange
	}

	anchor, hasAnchor := MaxPurchaseDate(lines)
	filtered := filterByApproval(lines, dateRange)

	report := &Report{ReferenceDate: anchor}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.DailyMetrics = AggregateByDay(filtered)
		for _, d := range report.DailyMetrics {
			report.TotalOrders += d.OrderCount
			report.TotalRevenue = report.TotalRevenue.Add(d.Revenue)
		}
		return nil
	})
	g.Go(func() error {
		report.MonthlyTrend = AggregateByMonth(filtered)
		return nil
	})
	g.Go(func() error {
		report.PaymentMethodCounts = PaymentMethodCounts(filtered)
		return nil
	})
	g.Go(func() error {
		report.CategoryRatings = CategoryRatings(filtered, p.opts.TopCategories)
		return nil
	})
	g.Go(func() error {
		report.TopCategoriesBySales = CategorySales(filtered, p.opts.TopCategories)
		return nil
	})
	g.Go(func() error {
		report.GeoOrderCounts = GeoOrderCounts(filtered)
		return nil
	})
	g.Go(func() error {
		if !hasAnchor {
			report.RFMByCustomer = []RFMRecord{}
			report.TopCustomers = []RFMRecord{}
			return nil
		}
		report.RFMByCustomer = ComputeRFM(filtered, anchor)
		report.TopCustomers = TopCustomers(report.RFMByCustomer, p.opts.TopCustomers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// filterByApproval keeps lines whose approval time falls inside the
// inclusive range. A nil range keeps everything, including lines that were
// never approved; with a range set, unapproved lines cannot match.
func filterByApproval(lines []domain.OrderLine, r *DateRange) []domain.OrderLine {
	if r == nil {
		return lines
	}
	filtered := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.ApprovedAt == nil {
			continue
		}
		if l.ApprovedAt.Before(r.Start) || l.ApprovedAt.After(r.End) {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}
