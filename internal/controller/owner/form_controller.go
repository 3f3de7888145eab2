package owner

import (
	"net/http"

	"github.com/asrayg/betterforms/internal/controller"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/middleware"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FormController struct {
	formService service.FormService
}

func NewFormController(formService service.FormService) *FormController {
	return &FormController{formService: formService}
}

// CreateForm godoc
// @Summary Create a form
// @Description Create a new form owned by the caller.
// @Tags owner - forms
// @Accept json
// @Produce json
// @Param form body dto.FormCreateDTO true "Form data"
// @Success 201 {object} dto.FormResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /forms [post]
// @Security BearerAuth
func (c *FormController) CreateForm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateForm: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.formService.Create(userID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListForms godoc
// @Summary List the caller's forms
// @Description List forms with question and response counts for the dashboard.
// @Tags owner - forms
// @Produce json
// @Success 200 {array} dto.FormSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /forms [get]
// @Security BearerAuth
func (c *FormController) ListForms(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	resp, err := c.formService.ListByOwner(userID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetForm godoc
// @Summary Get a form with its questions
// @Tags owner - forms
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.FormResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id} [get]
// @Security BearerAuth
func (c *FormController) GetForm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	resp, err := c.formService.Get(userID, formID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateForm godoc
// @Summary Update a form's metadata and settings
// @Tags owner - forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param form body dto.FormCreateDTO true "Form data"
// @Success 200 {object} dto.FormResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id} [put]
// @Security BearerAuth
func (c *FormController) UpdateForm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.formService.Update(userID, formID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteForm godoc
// @Summary Delete a form
// @Description Delete a form and, through cascade, its questions, responses and answers.
// @Tags owner - forms
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id} [delete]
// @Security BearerAuth
func (c *FormController) DeleteForm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	if err := c.formService.Delete(userID, formID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ReplaceQuestions godoc
// @Summary Replace a form's question set
// @Description The builder always sends the full ordered question list; the previous set is discarded.
// @Tags owner - forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param questions body dto.QuestionsUpdateDTO true "Full question set"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question set"
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Router /forms/{form_id}/questions [put]
// @Security BearerAuth
func (c *FormController) ReplaceQuestions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	var req dto.QuestionsUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ReplaceQuestions: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.formService.ReplaceQuestions(userID, formID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListResponses godoc
// @Summary List a form's responses with answers
// @Tags owner - responses
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {array} dto.ResponseDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id}/responses [get]
// @Security BearerAuth
func (c *FormController) ListResponses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}

	resp, err := c.formService.ListResponses(userID, formID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResponse godoc
// @Summary Get a single response with its answers
// @Tags owner - responses
// @Produce json
// @Param form_id path int true "Form ID"
// @Param response_id path int true "Response ID"
// @Success 200 {object} dto.ResponseDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form or response not found"
// @Router /forms/{form_id}/responses/{response_id} [get]
// @Security BearerAuth
func (c *FormController) GetResponse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}
	responseID, ok := controller.ParamID(ctx, "response_id")
	if !ok {
		return
	}

	resp, err := c.formService.GetResponse(userID, formID, responseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
