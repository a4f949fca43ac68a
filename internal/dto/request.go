package dto

// DashboardRequest carries the optional approval-date filter, inclusive on
// both ends. Dates use the 2006-01-02 layout; both must be provided
// together or not at all.
type DashboardRequest struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}
