package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/ports"
)

// ReportHandler serves the dashboards and the admin reports page.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type reportResponse struct {
	Success bool               `json:"success"`
	Report  *ports.AdminReport `json:"report"`
}

type adminDashboardResponse struct {
	Success   bool                  `json:"success"`
	Dashboard *ports.AdminDashboard `json:"dashboard"`
}

type csrDashboardResponse struct {
	Success   bool                `json:"success"`
	Dashboard *ports.CSRDashboard `json:"dashboard"`
}

// AdminReport handles GET /admin/reports.
//
// @Summary      Admin report aggregates
// @Tags         reports
// @Produce      json
// @Success      200  {object}  reportResponse
// @Router       /admin/reports [get]
func (h *ReportHandler) AdminReport(c echo.Context) error {
	report, err := h.service.AdminReport(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Success: true, Report: report})
}

// AdminDashboard handles GET /admin/dashboard.
//
// @Summary      Admin dashboard summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  adminDashboardResponse
// @Router       /admin/dashboard [get]
func (h *ReportHandler) AdminDashboard(c echo.Context) error {
	dash, err := h.service.AdminDashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDashboardResponse{Success: true, Dashboard: dash})
}

// CSRDashboard handles GET /csr/csr-dashboard.
//
// @Summary      CSR dashboard summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  csrDashboardResponse
// @Router       /csr/csr-dashboard [get]
func (h *ReportHandler) CSRDashboard(c echo.Context) error {
	dash, err := h.service.CSRDashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, csrDashboardResponse{Success: true, Dashboard: dash})
}
