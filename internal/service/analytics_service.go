package service

import (
	"errors"
	"time"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AnalyticsService computes response analytics for a form the caller owns.
// It reads a snapshot of the form's questions, responses and answers and
// aggregates in memory; nothing is mutated and no partial result is returned
// on a fetch failure.
type AnalyticsService interface {
	Overview(ownerID, formID uint) (*dto.FormAnalyticsDTO, error)
}

type analyticsService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	responseRepo repository.ResponseRepository
	answerRepo   repository.AnswerRepository
}

func NewAnalyticsService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
) AnalyticsService {
	return &analyticsService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		answerRepo:   answerRepo,
	}
}

func (s *analyticsService) Overview(ownerID, formID uint) (*dto.FormAnalyticsDTO, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "form not found")
		}
		log.Error().Err(err).Uint("formID", formID).Msg("Analytics: failed to fetch form")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch form", err)
	}
	if form.OwnerID != ownerID {
		return nil, apperror.New(apperror.KindForbidden, "not the form owner")
	}

	responses, err := s.responseRepo.FindAllByForm(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Analytics: failed to fetch responses")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch responses", err)
	}
	questions, err := s.questionRepo.FindByFormID(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Analytics: failed to fetch questions")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch questions", err)
	}
	answers, err := s.answerRepo.FindAllByForm(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("Analytics: failed to fetch answers")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch answers", err)
	}

	now := time.Now()
	summary := Summarize(responses, now)
	buckets := BucketByDay(responses, now, ResponseWindowDays)

	answersByQuestion := make(map[uint][]model.Answer)
	for _, a := range answers {
		answersByQuestion[a.QuestionID] = append(answersByQuestion[a.QuestionID], a)
	}

	questionAnalytics := make([]dto.QuestionAnalyticsDTO, 0, len(questions))
	for _, q := range questions {
		stats, statErr := QuestionDistribution(q, answersByQuestion[q.ID], summary.Total)
		if statErr != nil {
			log.Error().Err(statErr).Uint("questionID", q.ID).Msg("Analytics: distribution failed")
			return nil, apperror.Wrap(apperror.KindInternal, "failed to aggregate question", statErr)
		}
		questionAnalytics = append(questionAnalytics, dto.QuestionAnalyticsDTO{
			QuestionID:     q.ID,
			Prompt:         q.Prompt,
			Type:           string(q.Type),
			AnsweredCount:  stats.AnsweredCount,
			SkippedCount:   stats.SkippedCount,
			CompletionRate: stats.CompletionRate,
			Distribution:   stats.Distribution,
		})
	}

	byDate := make([]dto.DayBucketDTO, len(buckets))
	for i, b := range buckets {
		byDate[i] = dto.DayBucketDTO{Date: b.Date, Count: b.Count}
	}

	return &dto.FormAnalyticsDTO{
		FormID:             form.ID,
		FormTitle:          form.Title,
		TotalResponses:     summary.Total,
		FirstResponse:      summary.First,
		LastResponse:       summary.Last,
		UniqueRespondents:  summary.UniqueRespondents,
		AvgResponsesPerDay: summary.AvgPerDay,
		ResponsesByDate:    byDate,
		QuestionAnalytics:  questionAnalytics,
	}, nil
}
