package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SubmissionService accepts a respondent's answers for a published form and
// stores the response with all of its answers atomically. All validation
// happens before anything is written; a failed submission leaves no partial
// rows behind.
type SubmissionService interface {
	Submit(formID uint, req dto.ResponseSubmitDTO, userAgent string) (*dto.SubmitResultDTO, error)
}

type submissionService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
}

func NewSubmissionService(
	formRepo repository.FormRepository,
	responseRepo repository.ResponseRepository,
) SubmissionService {
	return &submissionService{formRepo: formRepo, responseRepo: responseRepo}
}

func (s *submissionService) Submit(formID uint, req dto.ResponseSubmitDTO, userAgent string) (*dto.SubmitResultDTO, error) {
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "form not found")
		}
		log.Error().Err(err).Uint("formID", formID).Msg("Submit: failed to fetch form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}
	if !form.Published {
		return nil, apperror.New(apperror.KindForbidden, "form is not accepting responses")
	}

	questionMap := make(map[uint]model.Question, len(form.Questions))
	for _, q := range form.Questions {
		questionMap[q.ID] = q
	}

	email := ""
	if req.RespondentEmail != nil {
		email = strings.TrimSpace(*req.RespondentEmail)
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, apperror.New(apperror.KindInvalid, "respondent email is not a valid address")
	}

	// One response per email, when the owner enabled the limit.
	if form.Settings != nil && form.Settings.LimitOneResponse && email != "" {
		count, countErr := s.responseRepo.CountByFormAndEmail(formID, email)
		if countErr != nil {
			log.Error().Err(countErr).Uint("formID", formID).Msg("Submit: duplicate check failed")
			return nil, apperror.Wrap(apperror.KindInternal, "failed to check previous responses", countErr)
		}
		if count > 0 {
			return nil, apperror.New(apperror.KindInvalid, "a response with this email already exists for this form")
		}
	}

	answered := make(map[uint]bool, len(req.Answers))
	answers := make([]model.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		question, exists := questionMap[in.QuestionID]
		if !exists {
			return nil, apperror.Newf(apperror.KindInvalid, "answer references question %d which is not part of this form", in.QuestionID)
		}
		if answered[in.QuestionID] {
			return nil, apperror.Newf(apperror.KindInvalid, "duplicate answer for question %d", in.QuestionID)
		}
		answered[in.QuestionID] = true

		if (in.AudioURL != nil || in.TranscriptText != nil) && !question.Type.SupportsVoice() {
			return nil, apperror.Newf(apperror.KindInvalid, "question %d does not accept voice answers", in.QuestionID)
		}

		answers = append(answers, model.Answer{
			QuestionID:     in.QuestionID,
			AnswerText:     in.AnswerText,
			AudioURL:       in.AudioURL,
			TranscriptText: in.TranscriptText,
		})
	}

	for _, q := range form.Questions {
		if !q.Required {
			continue
		}
		if !answered[q.ID] {
			return nil, apperror.Newf(apperror.KindInvalid, "question %d is required", q.ID)
		}
	}

	meta := make(map[string]string, len(req.RespondentMeta)+1)
	for k, v := range req.RespondentMeta {
		meta[k] = v
	}
	if userAgent != "" {
		meta["user_agent"] = userAgent
	}

	response := model.Response{
		FormID:    formID,
		Answers:   answers,
		CreatedAt: time.Now(),
	}
	if email != "" {
		response.RespondentEmail = &email
	}
	if len(meta) > 0 {
		response.RespondentMeta = meta
	}

	if err := s.responseRepo.CreateWithAnswers(&response); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Submit: failed to store response")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to store response", err)
	}

	result := &dto.SubmitResultDTO{ResponseID: response.ID}
	if form.Settings != nil {
		result.ConfirmationMessage = form.Settings.ConfirmationMessage
	}
	log.Info().Uint("formID", formID).Uint("responseID", response.ID).Int("answers", len(answers)).Msg("Response submitted")
	return result, nil
}
