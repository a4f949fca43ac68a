package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmadzkh/ecommerce-zaky/internal/analytics"
	"github.com/ahmadzkh/ecommerce-zaky/internal/dto"
	"github.com/ahmadzkh/ecommerce-zaky/internal/service"
)

type Handler struct {
	reportService  service.ReportServicer
	metricsHandler http.Handler
	router         *gin.Engine
	log            *zap.Logger
}

func NewHandler(reportService service.ReportServicer, metricsHandler http.Handler, log *zap.Logger) *Handler {
	h := &Handler{
		reportService:  reportService,
		metricsHandler: metricsHandler,
		router:         gin.Default(),
		log:            log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/dashboard", h.getDashboard)
	if h.metricsHandler != nil {
		h.router.GET("/metrics", gin.WrapH(h.metricsHandler))
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// getDashboard handles GET /dashboard. The optional start_date/end_date
// query parameters filter the report by approval date, inclusive.
func (h *Handler) getDashboard(c *gin.Context) {
	var req dto.DashboardRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid dashboard request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.reportService.GetDashboard(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) || errors.Is(err, analytics.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
			return
		}
		h.log.Error("Failed to compute dashboard report",
			zap.Error(err),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Dashboard report served",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("total_orders", response.TotalOrders))

	c.JSON(http.StatusOK, response)
}
