package service

import (
	"testing"
	"time"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOverview_AggregatesAcrossQuestions(t *testing.T) {
	now := time.Now()
	questions := []model.Question{
		{ID: 10, Prompt: "Color?", Type: model.TypeMCQ, Options: []string{"Red", "Blue"}},
		{ID: 11, Prompt: "Comments", Type: model.TypeLong},
	}
	responses := []model.Response{
		responseAt(now.Add(-time.Hour), "a@example.com"),
		responseAt(now.Add(-2*time.Hour), "b@example.com"),
	}
	answers := []model.Answer{
		answerText(10, "Red"),
		answerText(10, "Red"),
		answerText(11, "fine"),
	}
	svc := NewAnalyticsService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{questions: questions},
		&stubResponseListRepo{responses: responses},
		&stubAnswerRepo{answers: answers},
	)

	overview, err := svc.Overview(7, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(1), overview.FormID)
	assert.Equal(t, "Team Survey", overview.FormTitle)
	assert.Equal(t, 2, overview.TotalResponses)
	assert.Equal(t, 2, overview.UniqueRespondents)
	require.NotNil(t, overview.FirstResponse)
	require.NotNil(t, overview.LastResponse)

	require.Len(t, overview.QuestionAnalytics, 2)
	mcq := overview.QuestionAnalytics[0]
	assert.Equal(t, uint(10), mcq.QuestionID)
	assert.Equal(t, 2, mcq.AnsweredCount)
	assert.Equal(t, map[string]int{"Red": 2}, mcq.Distribution)

	long := overview.QuestionAnalytics[1]
	assert.Equal(t, 1, long.AnsweredCount)
	assert.Equal(t, 1, long.SkippedCount)
	assert.InDelta(t, 50.0, long.CompletionRate, 1e-9)
	assert.Empty(t, long.Distribution)
}

func TestOverview_EmptyFormIsZeroedNotNil(t *testing.T) {
	svc := NewAnalyticsService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
		&stubAnswerRepo{},
	)

	overview, err := svc.Overview(7, 1)

	require.NoError(t, err)
	assert.Zero(t, overview.TotalResponses)
	assert.Nil(t, overview.FirstResponse)
	assert.Nil(t, overview.LastResponse)
	assert.Zero(t, overview.AvgResponsesPerDay)
	assert.Empty(t, overview.ResponsesByDate)
	assert.Empty(t, overview.QuestionAnalytics)
}

func TestOverview_NotOwner(t *testing.T) {
	svc := NewAnalyticsService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
		&stubAnswerRepo{},
	)

	_, err := svc.Overview(8, 1)

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestOverview_FormNotFound(t *testing.T) {
	svc := NewAnalyticsService(
		&stubFormRepo{err: gorm.ErrRecordNotFound},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
		&stubAnswerRepo{},
	)

	_, err := svc.Overview(7, 99)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestOverview_FetchFailureReturnsNothing(t *testing.T) {
	svc := NewAnalyticsService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{},
		&stubResponseListRepo{err: gorm.ErrInvalidDB},
		&stubAnswerRepo{},
	)

	overview, err := svc.Overview(7, 1)

	assert.Nil(t, overview)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
