package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahmadzkh/ecommerce-zaky/internal/analytics"
	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
	"github.com/ahmadzkh/ecommerce-zaky/internal/dto"
	"github.com/ahmadzkh/ecommerce-zaky/internal/metrics"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate is returned when a request date cannot be parsed or only
// one end of the range is provided.
var ErrInvalidDate = errors.New("invalid date filter")

// RecordSource provides the loaded order-line table.
type RecordSource interface {
	Records() []domain.OrderLine
}

// ReportService runs the aggregation pipeline against the record store.
type ReportService struct {
	source   RecordSource
	pipeline *analytics.Pipeline
	metrics  *metrics.Registry
	log      *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(source RecordSource, pipeline *analytics.Pipeline, m *metrics.Registry, log *zap.Logger) *ReportService {
	return &ReportService{
		source:   source,
		pipeline: pipeline,
		metrics:  m,
		log:      log,
	}
}

// GetDashboard validates the requested date range, runs the pipeline and
// converts the result bundle into the response DTO.
func (s *ReportService) GetDashboard(req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	runID := uuid.NewString()
	start := time.Now()

	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.log.Warn("Invalid dashboard request",
			zap.String("run_id", runID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err))
		return nil, err
	}

	lines := s.source.Records()
	report, err := s.pipeline.Run(context.Background(), lines, dateRange)
	if err != nil {
		s.metrics.RunsFailed.Inc()
		s.log.Warn("Pipeline run rejected",
			zap.String("run_id", runID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to run aggregation pipeline: %w", err)
	}

	s.metrics.Runs.Inc()
	s.metrics.RowsIn.Add(float64(len(lines)))
	s.metrics.RunDurationSec.Observe(time.Since(start).Seconds())

	s.log.Info("Dashboard report computed",
		zap.String("run_id", runID),
		zap.Int("rows_in", len(lines)),
		zap.Int("daily_buckets", len(report.DailyMetrics)),
		zap.Int("customers", len(report.RFMByCustomer)),
		zap.Duration("elapsed", time.Since(start)))

	return buildDashboardResponse(req, report), nil
}

// parseDateRange converts the request dates into an inclusive filter range.
// The end date is extended to the last instant of its day, so a range of
// [2024-01-02, 2024-01-02] covers the whole of January 2nd.
func parseDateRange(startDate, endDate string) (*analytics.DateRange, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: start_date and end_date must be provided together", ErrInvalidDate)
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q is not a %s date", ErrInvalidDate, startDate, dateLayout)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q is not a %s date", ErrInvalidDate, endDate, dateLayout)
	}
	return &analytics.DateRange{
		Start: start,
		End:   end.Add(24*time.Hour - time.Nanosecond),
	}, nil
}

func buildDashboardResponse(req *dto.DashboardRequest, report *analytics.Report) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		TotalOrders:          report.TotalOrders,
		TotalRevenue:         report.TotalRevenue.String(),
		DailyMetrics:         make([]dto.DailyMetricData, 0, len(report.DailyMetrics)),
		MonthlyTrend:         make([]dto.MonthlyTrendData, 0, len(report.MonthlyTrend)),
		PaymentMethodCounts:  make([]dto.CategoryAggregateData, 0, len(report.PaymentMethodCounts)),
		CategoryRatingsTop10: make([]dto.CategoryAggregateData, 0, len(report.CategoryRatings)),
		TopCategoriesBySales: make([]dto.CategoryAggregateData, 0, len(report.TopCategoriesBySales)),
		RFMByCustomer:        make([]dto.RFMData, 0, len(report.RFMByCustomer)),
		TopCustomers:         make([]dto.RFMData, 0, len(report.TopCustomers)),
		GeoOrderCounts:       make([]dto.GeoAggregateData, 0, len(report.GeoOrderCounts)),
	}
	if !report.ReferenceDate.IsZero() {
		resp.ReferenceDate = report.ReferenceDate.Format(dateLayout)
	}

	for _, d := range report.DailyMetrics {
		resp.DailyMetrics = append(resp.DailyMetrics, dto.DailyMetricData{
			Date:       d.Date.Format(dateLayout),
			OrderCount: d.OrderCount,
			Revenue:    d.Revenue.String(),
		})
	}
	for _, m := range report.MonthlyTrend {
		resp.MonthlyTrend = append(resp.MonthlyTrend, dto.MonthlyTrendData{
			Month:      m.Month,
			OrderCount: m.OrderCount,
		})
	}
	resp.PaymentMethodCounts = appendCategories(resp.PaymentMethodCounts, report.PaymentMethodCounts)
	resp.CategoryRatingsTop10 = appendCategories(resp.CategoryRatingsTop10, report.CategoryRatings)
	resp.TopCategoriesBySales = appendCategories(resp.TopCategoriesBySales, report.TopCategoriesBySales)
	resp.RFMByCustomer = appendRFM(resp.RFMByCustomer, report.RFMByCustomer)
	resp.TopCustomers = appendRFM(resp.TopCustomers, report.TopCustomers)
	for _, g := range report.GeoOrderCounts {
		resp.GeoOrderCounts = append(resp.GeoOrderCounts, dto.GeoAggregateData{
			City:       g.City,
			State:      g.State,
			OrderCount: g.OrderCount,
		})
	}
	return resp
}

func appendCategories(out []dto.CategoryAggregateData, in []analytics.CategoryAggregate) []dto.CategoryAggregateData {
	for _, c := range in {
		out = append(out, dto.CategoryAggregateData{
			Key:   c.Key,
			Value: c.Value.String(),
			Rank:  c.Rank,
		})
	}
	return out
}

func appendRFM(out []dto.RFMData, in []analytics.RFMRecord) []dto.RFMData {
	for _, r := range in {
		out = append(out, dto.RFMData{
			CustomerID:  r.CustomerID,
			RecencyDays: r.RecencyDays,
			Frequency:   r.Frequency,
			Monetary:    r.Monetary.String(),
		})
	}
	return out
}
