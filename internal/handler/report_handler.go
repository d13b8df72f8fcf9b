package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/netopsio/maintreport/internal/domain"
	"github.com/netopsio/maintreport/internal/service"
)

// ReportHandler exposes the report pipeline over HTTP. It is a thin delivery
// surface: all shaping, classification and rendering lives in the service.
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// RenderHandler renders one report and streams it as an xlsx attachment.
// The mode path parameter selects the column spec and title variant.
func (h *ReportHandler) RenderHandler(c echo.Context) error {
	mode, err := domain.ParseReportMode(c.Param("mode"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown report mode", Detail: err.Error()})
	}

	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Detail: err.Error()})
	}

	filename := fmt.Sprintf("cisco_maintenance_report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := h.svc.WriteReport(c.Request().Context(), c.Response().Writer, req.Records, req.Secondary, mode); err != nil {
		if errors.Is(err, domain.ErrConfig) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "report configuration error", Detail: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to generate report", Detail: err.Error()})
	}
	return nil
}

// HealthHandler reports liveness.
func (h *ReportHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
