package service

import (
	"strings"
	"testing"
	"time"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubQuestionRepo struct {
	questions []model.Question
	err       error
	byID      *model.Question
	byIDErr   error
}

func (s *stubQuestionRepo) FindByID(uint) (*model.Question, error) { return s.byID, s.byIDErr }
func (s *stubQuestionRepo) FindByFormID(uint) ([]model.Question, error) {
	return s.questions, s.err
}
func (s *stubQuestionRepo) ReplaceForForm(uint, []model.Question) ([]model.Question, error) {
	return nil, nil
}

type stubAnswerRepo struct {
	answers []model.Answer
	err     error
}

func (s *stubAnswerRepo) FindAllByForm(uint) ([]model.Answer, error) { return s.answers, s.err }

type stubResponseListRepo struct {
	stubResponseRepo
	responses []model.Response
	detail    *model.Response
	detailErr error
	err       error
}

func (s *stubResponseListRepo) FindByIDWithAnswers(uint) (*model.Response, error) {
	return s.detail, s.detailErr
}

func (s *stubResponseListRepo) FindAllByForm(uint) ([]model.Response, error) {
	return s.responses, s.err
}

func (s *stubResponseListRepo) FindAllByFormWithAnswers(uint) ([]model.Response, error) {
	return s.responses, s.err
}

func ownedForm(ownerID uint) *model.Form {
	return &model.Form{ID: 1, OwnerID: ownerID, Title: "Team Survey", Published: true}
}

func TestExportCSV_RendersDocument(t *testing.T) {
	questions := []model.Question{
		{ID: 10, Prompt: "Name", Type: model.TypeShort},
		{ID: 11, Prompt: "Why?", Type: model.TypeLong},
	}
	responses := []model.Response{
		{
			CreatedAt:       time.Date(2025, 6, 5, 14, 0, 0, 0, time.UTC),
			RespondentEmail: strPtr("a@example.com"),
			Answers: []model.Answer{
				{QuestionID: 10, AnswerText: strPtr("Avery")},
				{QuestionID: 11, AnswerText: strPtr("Because, reasons")},
			},
		},
	}
	svc := NewExportService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{questions: questions},
		&stubResponseListRepo{responses: responses},
	)

	export, err := svc.ExportCSV(7, 1)

	require.NoError(t, err)
	assert.Equal(t, "Team_Survey_responses.csv", export.Filename)
	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Timestamp,Email,Name,Why?", lines[0])
	assert.Equal(t, `2025-06-05T14:00:00Z,a@example.com,Avery,"Because, reasons"`, lines[1])
}

func TestExportCSV_NotOwner(t *testing.T) {
	svc := NewExportService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
	)

	_, err := svc.ExportCSV(8, 1)

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestExportCSV_FormNotFound(t *testing.T) {
	svc := NewExportService(
		&stubFormRepo{err: gorm.ErrRecordNotFound},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
	)

	_, err := svc.ExportCSV(7, 99)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestExportCSV_NoQuestionsIsInvalid(t *testing.T) {
	svc := NewExportService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{},
		&stubResponseListRepo{},
	)

	_, err := svc.ExportCSV(7, 1)

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestExportCSV_NoResponsesIsHeaderOnly(t *testing.T) {
	svc := NewExportService(
		&stubFormRepo{form: ownedForm(7)},
		&stubQuestionRepo{questions: []model.Question{{ID: 10, Prompt: "Name", Type: model.TypeShort}}},
		&stubResponseListRepo{},
	)

	export, err := svc.ExportCSV(7, 1)

	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Email,Name", export.Content)
}
