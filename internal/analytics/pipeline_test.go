package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

func testLines() []domain.OrderLine {
	l1 := line("A", "C1", "2024-01-01 10:00:00", "100")
	l1.ProductCategory = "beleza_saude"
	l1.ReviewScore = score(5)
	l1.CustomerCity = "sao paulo"
	l1.CustomerState = "SP"

	l2 := line("B", "C1", "2024-01-01 15:00:00", "50")
	l2.ProductCategory = "esporte_lazer"
	l2.ReviewScore = score(3)
	l2.CustomerCity = "sao paulo"
	l2.CustomerState = "SP"

	l3 := line("C", "C2", "2024-01-02 09:00:00", "200")
	l3.ProductCategory = "beleza_saude"
	l3.PaymentType = "boleto"
	l3.CustomerCity = "campinas"
	l3.CustomerState = "SP"

	return []domain.OrderLine{l1, l2, l3}
}

func TestRun_ProducesAllTables(t *testing.T) {
	p := NewPipeline(DefaultOptions())

	report, err := p.Run(context.Background(), testLines(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.TotalOrders)
	assert.True(t, report.TotalRevenue.Equal(money("350")), "got %s", report.TotalRevenue)
	assert.Len(t, report.DailyMetrics, 2)
	assert.Len(t, report.MonthlyTrend, 1)
	assert.Len(t, report.PaymentMethodCounts, 2)
	assert.Len(t, report.CategoryRatings, 2)
	assert.Len(t, report.TopCategoriesBySales, 2)
	assert.Len(t, report.RFMByCustomer, 2)
	assert.Len(t, report.TopCustomers, 2)
	assert.Len(t, report.GeoOrderCounts, 2)
	assert.Equal(t, ts("2024-01-02 00:00:00"), report.ReferenceDate)
}

func TestRun_Idempotent(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	lines := testLines()
	dateRange := &DateRange{Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-02 23:59:59")}

	first, err := p.Run(context.Background(), lines, dateRange)
	assert.NoError(t, err)
	second, err := p.Run(context.Background(), lines, dateRange)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_InvalidRange(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	dateRange := &DateRange{Start: ts("2024-02-01 00:00:00"), End: ts("2024-01-01 00:00:00")}

	report, err := p.Run(context.Background(), testLines(), dateRange)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRun_EmptyAfterFilter(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	dateRange := &DateRange{Start: ts("2030-01-01 00:00:00"), End: ts("2030-12-31 23:59:59")}

	report, err := p.Run(context.Background(), testLines(), dateRange)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.Empty(t, report.DailyMetrics)
	assert.Empty(t, report.MonthlyTrend)
	assert.Empty(t, report.PaymentMethodCounts)
	assert.Empty(t, report.RFMByCustomer)
	assert.Empty(t, report.GeoOrderCounts)
}

func TestRun_EmptyInput(t *testing.T) {
	p := NewPipeline(DefaultOptions())

	report, err := p.Run(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Empty(t, report.RFMByCustomer)
	assert.True(t, report.ReferenceDate.IsZero())
}

func TestRun_FilterInclusiveOnBothEnds(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	// Range boundaries land exactly on the approval timestamps of A and C.
	dateRange := &DateRange{Start: ts("2024-01-01 10:00:00"), End: ts("2024-01-02 09:00:00")}

	report, err := p.Run(context.Background(), testLines(), dateRange)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.TotalOrders)
	assert.True(t, report.TotalRevenue.Equal(money("350")))
}

func TestRun_FilterDropsOutsideRange(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	dateRange := &DateRange{Start: ts("2024-01-02 00:00:00"), End: ts("2024-01-02 23:59:59")}

	report, err := p.Run(context.Background(), testLines(), dateRange)

	assert.NoError(t, err)
	assert.Len(t, report.DailyMetrics, 1)
	assert.Equal(t, ts("2024-01-02 00:00:00"), report.DailyMetrics[0].Date)
	assert.Equal(t, 1, report.TotalOrders)
	assert.True(t, report.TotalRevenue.Equal(money("200")))
}

func TestRun_ReferenceDateUnaffectedByFilter(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	lines := testLines()

	unfiltered, err := p.Run(context.Background(), lines, nil)
	assert.NoError(t, err)

	dateRange := &DateRange{Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-01 23:59:59")}
	filtered, err := p.Run(context.Background(), lines, dateRange)
	assert.NoError(t, err)

	// The filter dropped customer C2 from the RFM table, but the recency
	// anchor still comes from the full dataset.
	assert.Len(t, filtered.RFMByCustomer, 1)
	assert.Equal(t, "C1", filtered.RFMByCustomer[0].CustomerID)
	assert.Equal(t, unfiltered.ReferenceDate, filtered.ReferenceDate)
	assert.Equal(t, 1, filtered.RFMByCustomer[0].RecencyDays)
}

func TestRun_FilterExcludesUnapprovedLinesFromRFM(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	unapproved := line("X", "C9", "", "10")
	unapproved.PurchasedAt = tsp("2024-01-01 12:00:00")
	lines := append(testLines(), unapproved)

	unfiltered, err := p.Run(context.Background(), lines, nil)
	assert.NoError(t, err)
	assert.Len(t, unfiltered.RFMByCustomer, 3)

	dateRange := &DateRange{Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-02 23:59:59")}
	filtered, err := p.Run(context.Background(), lines, dateRange)
	assert.NoError(t, err)

	// With a range set, a line that was never approved cannot match it.
	assert.Len(t, filtered.RFMByCustomer, 2)
}

func TestRun_TotalRevenueMatchesFilteredRows(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	lines := testLines()

	report, err := p.Run(context.Background(), lines, nil)
	assert.NoError(t, err)

	expected := money("0")
	for _, l := range lines {
		expected = expected.Add(l.PaymentValue)
	}
	assert.True(t, report.TotalRevenue.Equal(expected), "got %s want %s", report.TotalRevenue, expected)
}

func TestRun_HonorsViewLimits(t *testing.T) {
	p := NewPipeline(Options{TopCategories: 1, TopCustomers: 1})

	report, err := p.Run(context.Background(), testLines(), nil)

	assert.NoError(t, err)
	assert.Len(t, report.CategoryRatings, 1)
	assert.Len(t, report.TopCategoriesBySales, 1)
	assert.Len(t, report.TopCustomers, 1)
	// The full RFM table is never truncated.
	assert.Len(t, report.RFMByCustomer, 2)
}
