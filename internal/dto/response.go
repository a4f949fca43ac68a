package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"start_date must not be after end_date"`
}

// DailyMetricData is one day of the order/revenue time series.
type DailyMetricData struct {
	Date       string `json:"date" example:"2024-01-01"`
	OrderCount int    `json:"order_count" example:"42"`
	Revenue    string `json:"revenue" example:"1530.75"`
}

// MonthlyTrendData is one month of the order trend.
type MonthlyTrendData struct {
	Month      string `json:"month" example:"2024-01"`
	OrderCount int    `json:"order_count" example:"1180"`
}

// CategoryAggregateData is one ranked row of a categorical view.
type CategoryAggregateData struct {
	Key   string `json:"key" example:"beleza_saude"`
	Value string `json:"value" example:"4.18"`
	Rank  int    `json:"rank" example:"1"`
}

// RFMData is one customer's recency/frequency/monetary score.
type RFMData struct {
	CustomerID  string `json:"customer_id" example:"cust_123"`
	RecencyDays int    `json:"recency_days" example:"12"`
	Frequency   int    `json:"frequency" example:"3"`
	Monetary    string `json:"monetary" example:"457.90"`
}

// GeoAggregateData is the order-line count for one customer location.
type GeoAggregateData struct {
	City       string `json:"city" example:"sao paulo"`
	State      string `json:"state" example:"SP"`
	OrderCount int    `json:"order_count" example:"95"`
}

// DashboardResponse is the full bundle of result tables for one pipeline
// run.
type DashboardResponse struct {
	StartDate            string                  `json:"start_date,omitempty" example:"2024-01-01"`
	EndDate              string                  `json:"end_date,omitempty" example:"2024-12-31"`
	ReferenceDate        string                  `json:"reference_date,omitempty" example:"2024-12-30"`
	TotalOrders          int                     `json:"total_orders" example:"1204"`
	TotalRevenue         string                  `json:"total_revenue" example:"184302.55"`
	DailyMetrics         []DailyMetricData       `json:"daily_metrics"`
	MonthlyTrend         []MonthlyTrendData      `json:"monthly_trend"`
	PaymentMethodCounts  []CategoryAggregateData `json:"payment_method_counts"`
	CategoryRatingsTop10 []CategoryAggregateData `json:"category_ratings_top10"`
	TopCategoriesBySales []CategoryAggregateData `json:"top_categories_by_sales"`
	RFMByCustomer        []RFMData               `json:"rfm_by_customer"`
	TopCustomers         []RFMData               `json:"top_customers"`
	GeoOrderCounts       []GeoAggregateData      `json:"geo_order_counts"`
}
