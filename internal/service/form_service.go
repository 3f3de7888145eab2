package service

import (
	"errors"
	"fmt"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FormService covers the owner-facing form lifecycle: create, list, fetch,
// update, delete, question-set replacement and response listing. Every
// operation except the public fetch verifies ownership first.
type FormService interface {
	Create(ownerID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error)
	ListByOwner(ownerID uint) ([]dto.FormSummaryDTO, error)
	Get(ownerID, formID uint) (*dto.FormResponseDTO, error)
	Update(ownerID, formID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error)
	Delete(ownerID, formID uint) error
	ReplaceQuestions(ownerID, formID uint, req dto.QuestionsUpdateDTO) ([]dto.QuestionResponseDTO, error)
	ListResponses(ownerID, formID uint) ([]dto.ResponseDetailDTO, error)
	GetResponse(ownerID, formID, responseID uint) (*dto.ResponseDetailDTO, error)
	// GetPublished returns the respondent-facing view of a published form.
	GetPublished(formID uint) (*dto.PublicFormDTO, error)
	// CheckVoiceQuestion verifies the question belongs to the form and takes
	// voice answers. Guards the public audio upload.
	CheckVoiceQuestion(formID, questionID uint) error
}

type formService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	responseRepo repository.ResponseRepository
}

func NewFormService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
) FormService {
	return &formService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
	}
}

// ownedForm fetches a form and checks the caller owns it.
func (s *formService) ownedForm(ownerID, formID uint) (*model.Form, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "form not found")
		}
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to fetch form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}
	if form.OwnerID != ownerID {
		return nil, apperror.New(apperror.KindForbidden, "not the form owner")
	}
	return form, nil
}

func settingsFromDTO(in *dto.FormSettingsDTO) *model.FormSettings {
	if in == nil {
		return nil
	}
	return &model.FormSettings{
		CollectEmail:        in.CollectEmail,
		LimitOneResponse:    in.LimitOneResponse,
		ShowProgressBar:     in.ShowProgressBar,
		ConfirmationMessage: in.ConfirmationMessage,
	}
}

func (s *formService) Create(ownerID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error) {
	form := model.Form{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		Settings:    settingsFromDTO(req.Settings),
	}
	if err := s.formRepo.Create(&form); err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("FormService: failed to create form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to create form", err)
	}

	var resp dto.FormResponseDTO
	if err := copier.Copy(&resp, &form); err != nil {
		return nil, fmt.Errorf("error preparing form response: %w", err)
	}
	return &resp, nil
}

func (s *formService) ListByOwner(ownerID uint) ([]dto.FormSummaryDTO, error) {
	formsWithCounts, err := s.formRepo.FindAllByOwnerWithCounts(ownerID)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("FormService: failed to list forms")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to list forms", err)
	}

	dtos := make([]dto.FormSummaryDTO, 0, len(formsWithCounts))
	for _, fwc := range formsWithCounts {
		dtos = append(dtos, dto.FormSummaryDTO{
			ID:            fwc.Form.ID,
			Title:         fwc.Form.Title,
			Description:   fwc.Form.Description,
			Published:     fwc.Form.Published,
			QuestionCount: fwc.QuestionCount,
			ResponseCount: fwc.ResponseCount,
			CreatedAt:     fwc.Form.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *formService) Get(ownerID, formID uint) (*dto.FormResponseDTO, error) {
	if _, err := s.ownedForm(ownerID, formID); err != nil {
		return nil, err
	}
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to fetch form with questions")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}

	var resp dto.FormResponseDTO
	if err := copier.Copy(&resp, form); err != nil {
		return nil, fmt.Errorf("error preparing form response: %w", err)
	}
	return &resp, nil
}

func (s *formService) Update(ownerID, formID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error) {
	form, err := s.ownedForm(ownerID, formID)
	if err != nil {
		return nil, err
	}

	form.Title = req.Title
	form.Description = req.Description
	form.Published = req.Published
	form.Settings = settingsFromDTO(req.Settings)

	if err := s.formRepo.Update(form); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to update form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to update form", err)
	}

	var resp dto.FormResponseDTO
	if err := copier.Copy(&resp, form); err != nil {
		return nil, fmt.Errorf("error preparing form response: %w", err)
	}
	return &resp, nil
}

func (s *formService) Delete(ownerID, formID uint) error {
	if _, err := s.ownedForm(ownerID, formID); err != nil {
		return err
	}
	if err := s.formRepo.Delete(formID); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to delete form")
		return apperror.Wrap(apperror.KindInternal, "failed to delete form", err)
	}
	log.Info().Uint("formID", formID).Uint("ownerID", ownerID).Msg("Form deleted")
	return nil
}

// validateQuestions checks the replacement set: known types, options present
// for choice kinds, no duplicate order_index.
func validateQuestions(questions []dto.QuestionDTO) error {
	seenOrder := make(map[int]bool, len(questions))
	for i, q := range questions {
		qt := model.QuestionType(q.Type)
		if !qt.Valid() {
			return apperror.Newf(apperror.KindInvalid, "question %d: unknown type %q", i, q.Type)
		}
		if qt.RequiresOptions() && len(q.Options) == 0 {
			return apperror.Newf(apperror.KindInvalid, "question %d: type %q requires options", i, q.Type)
		}
		if seenOrder[q.OrderIndex] {
			return apperror.Newf(apperror.KindInvalid, "question %d: duplicate order_index %d", i, q.OrderIndex)
		}
		seenOrder[q.OrderIndex] = true
	}
	return nil
}

func (s *formService) ReplaceQuestions(ownerID, formID uint, req dto.QuestionsUpdateDTO) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.ownedForm(ownerID, formID); err != nil {
		return nil, err
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.Question{
			FormID:     formID,
			OrderIndex: q.OrderIndex,
			Type:       model.QuestionType(q.Type),
			Prompt:     q.Prompt,
			Required:   q.Required,
			Options:    q.Options,
		}
		if q.Validation != nil {
			questions[i].Validation = &model.QuestionValidation{
				Min:     q.Validation.Min,
				Max:     q.Validation.Max,
				Pattern: q.Validation.Pattern,
			}
		}
	}

	saved, err := s.questionRepo.ReplaceForForm(formID, questions)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to replace questions")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to save questions", err)
	}

	dtos := make([]dto.QuestionResponseDTO, len(saved))
	for i := range saved {
		if err := copier.Copy(&dtos[i], &saved[i]); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
	}
	return dtos, nil
}

func (s *formService) ListResponses(ownerID, formID uint) ([]dto.ResponseDetailDTO, error) {
	if _, err := s.ownedForm(ownerID, formID); err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindAllByFormWithAnswers(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to list responses")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to list responses", err)
	}

	dtos := make([]dto.ResponseDetailDTO, len(responses))
	for i := range responses {
		if err := copier.Copy(&dtos[i], &responses[i]); err != nil {
			return nil, fmt.Errorf("error preparing response detail: %w", err)
		}
	}
	return dtos, nil
}

func (s *formService) GetResponse(ownerID, formID, responseID uint) (*dto.ResponseDetailDTO, error) {
	if _, err := s.ownedForm(ownerID, formID); err != nil {
		return nil, err
	}
	response, err := s.responseRepo.FindByIDWithAnswers(responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "response not found")
		}
		log.Error().Err(err).Uint("responseID", responseID).Msg("FormService: failed to fetch response")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch response", err)
	}
	// A response id from another form must not leak through this route.
	if response.FormID != formID {
		return nil, apperror.New(apperror.KindNotFound, "response not found")
	}

	var resp dto.ResponseDetailDTO
	if err := copier.Copy(&resp, response); err != nil {
		return nil, fmt.Errorf("error preparing response detail: %w", err)
	}
	return &resp, nil
}

func (s *formService) CheckVoiceQuestion(formID, questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "question not found")
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("FormService: failed to fetch question")
		return apperror.Wrap(apperror.KindInternal, "failed to fetch question", err)
	}
	if question.FormID != formID {
		return apperror.New(apperror.KindNotFound, "question not found")
	}
	if !question.Type.SupportsVoice() {
		return apperror.Newf(apperror.KindInvalid, "question %d does not accept voice answers", questionID)
	}
	return nil
}

func (s *formService) GetPublished(formID uint) (*dto.PublicFormDTO, error) {
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "form not found")
		}
		log.Error().Err(err).Uint("formID", formID).Msg("FormService: failed to fetch public form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}
	if !form.Published {
		return nil, apperror.New(apperror.KindNotFound, "form not found")
	}

	var resp dto.PublicFormDTO
	if err := copier.Copy(&resp, form); err != nil {
		return nil, fmt.Errorf("error preparing public form: %w", err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionResponseDTO{}
	}
	return &resp, nil
}
