package service

import (
	"errors"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Export is a rendered CSV document plus the filename suggested for download.
type Export struct {
	Filename string
	Content  string
}

type ExportService interface {
	ExportCSV(ownerID, formID uint) (*Export, error)
}

type exportService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	responseRepo repository.ResponseRepository
}

func NewExportService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
) ExportService {
	return &exportService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
	}
}

func (s *exportService) ExportCSV(ownerID, formID uint) (*Export, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "form not found")
		}
		log.Error().Err(err).Uint("formID", formID).Msg("Export: failed to fetch form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}
	if form.OwnerID != ownerID {
		return nil, apperror.New(apperror.KindForbidden, "not the form owner")
	}

	questions, err := s.questionRepo.FindByFormID(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Export: failed to fetch questions")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch questions", err)
	}
	// A form without questions is a configuration error, distinct from a
	// form that simply has no responses yet.
	if len(questions) == 0 {
		return nil, apperror.New(apperror.KindInvalid, "form has no questions to export")
	}

	responses, err := s.responseRepo.FindAllByFormWithAnswers(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Export: failed to fetch responses")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch responses", err)
	}

	return &Export{
		Filename: ExportFilename(form.Title),
		Content:  BuildResponsesCSV(questions, responses),
	}, nil
}
