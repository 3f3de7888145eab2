package owner

import (
	"fmt"
	"net/http"

	"github.com/asrayg/betterforms/internal/controller"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/middleware"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
	exportService    service.ExportService
}

func NewAnalyticsController(analyticsService service.AnalyticsService, exportService service.ExportService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService, exportService: exportService}
}

// GetAnalytics godoc
// @Summary Get aggregate analytics for a form
// @Description Response totals, daily buckets for the last 30 days and per-question option distributions.
// @Tags owner - analytics
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.FormAnalyticsDTO
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id}/analytics [get]
// @Security BearerAuth
func (c *AnalyticsController) GetAnalytics(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	resp, err := c.analyticsService.Overview(userID, formID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportCSV godoc
// @Summary Export a form's responses as CSV
// @Description One row per response, newest first, one column per question in form order.
// @Tags owner - analytics
// @Produce text/csv
// @Param form_id path int true "Form ID"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} dto.ErrorResponse "Form has no questions"
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id}/export [get]
// @Security BearerAuth
func (c *AnalyticsController) ExportCSV(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	export, err := c.exportService.ExportCSV(userID, formID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	ctx.Data(http.StatusOK, "text/csv", []byte(export.Content))
}
