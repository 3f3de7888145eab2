package public

import (
	"io"
	"net/http"

	"github.com/asrayg/betterforms/internal/controller"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MediaController struct {
	formService          service.FormService
	storageService       service.StorageService
	transcriptionService service.TranscriptionService
}

func NewMediaController(formService service.FormService, storageService service.StorageService, transcriptionService service.TranscriptionService) *MediaController {
	return &MediaController{
		formService:          formService,
		storageService:       storageService,
		transcriptionService: transcriptionService,
	}
}

// UploadAudio godoc
// @Summary Upload a voice recording for a long-answer question
// @Description Accepts a multipart "audio" file up to 10 MB and returns its public URL.
// @Tags public
// @Accept multipart/form-data
// @Produce json
// @Param form_id path int true "Form ID"
// @Param question_id path int true "Question ID"
// @Param audio formData file true "Audio recording"
// @Success 201 {object} dto.UploadResultDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized audio file, or the question takes no voice answers"
// @Failure 404 {object} dto.ErrorResponse "Question not found on this form"
// @Failure 502 {object} dto.ErrorResponse "Storage backend failure"
// @Router /public/forms/{form_id}/questions/{question_id}/audio [post]
func (c *MediaController) UploadAudio(ctx *gin.Context) {
	formID, ok := controller.ParamID(ctx, "form_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParamID(ctx, "question_id")
	if !ok {
		return
	}

	if err := c.formService.CheckVoiceQuestion(formID, questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing audio file", Details: []string{err.Error()}})
		return
	}
	if fileHeader.Size > service.MaxAudioBytes {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Audio file exceeds the 10 MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read audio file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAudioBytes+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read audio file"})
		return
	}

	obj, err := c.storageService.UploadAudio(ctx.Request.Context(), formID, questionID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.UploadResultDTO{URL: obj.URL, Path: obj.Path})
}

// TranscribeAudio godoc
// @Summary Transcribe an uploaded voice recording
// @Description Fetches the recording from storage and returns a verbatim transcript.
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.TranscribeDTO true "Audio URL"
// @Success 200 {object} dto.TranscriptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid audio URL"
// @Failure 502 {object} dto.ErrorResponse "Transcription backend failure"
// @Router /public/transcribe [post]
func (c *MediaController) TranscribeAudio(ctx *gin.Context) {
	var req dto.TranscribeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	transcript, err := c.transcriptionService.Transcribe(ctx.Request.Context(), req.AudioURL)
	if err != nil {
		log.Error().Err(err).Str("audio_url", req.AudioURL).Msg("TranscribeAudio: transcription failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TranscriptResultDTO{Transcript: transcript})
}
