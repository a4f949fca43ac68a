package service

import (
	"github.com/ahmadzkh/ecommerce-zaky/internal/dto"
)

// ReportServicer defines the interface for dashboard report operations
type ReportServicer interface {
	GetDashboard(req *dto.DashboardRequest) (*dto.DashboardResponse, error)
}
