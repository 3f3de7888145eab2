package public

import (
	"net/http"

	"github.com/asrayg/betterforms/internal/controller"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FormController struct {
	formService       service.FormService
	submissionService service.SubmissionService
}

func NewFormController(formService service.FormService, submissionService service.SubmissionService) *FormController {
	return &FormController{formService: formService, submissionService: submissionService}
}

// GetForm godoc
// @Summary Get a published form for filling out
// @Description Respondent-facing view. Unpublished forms are indistinguishable from missing ones.
// @Tags public
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.PublicFormDTO
// @Failure 404 {object} dto.ErrorResponse "Form not found or not published"
// @Router /public/forms/{form_id} [get]
func (c *FormController) GetForm(ctx *gin.Context) {
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	resp, err := c.formService.GetPublished(formID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitResponse godoc
// @Summary Submit a response to a published form
// @Description Validates the answer set against the form's questions and stores it atomically.
// @Tags public
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param response body dto.ResponseSubmitDTO true "Answers"
// @Success 201 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid answer set"
// @Failure 403 {object} dto.ErrorResponse "Form is not accepting responses"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /public/forms/{form_id}/responses [post]
func (c *FormController) SubmitResponse(ctx *gin.Context) {
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	var req dto.ResponseSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("form_id", formID).Msg("SubmitResponse: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.Submit(formID, req, ctx.Request.UserAgent())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
