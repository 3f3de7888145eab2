package service

import (
	"testing"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFormRepo struct {
	form *model.Form
	err  error
}

func (s *stubFormRepo) Create(*model.Form) error           { return nil }
func (s *stubFormRepo) FindByID(uint) (*model.Form, error) { return s.form, s.err }
func (s *stubFormRepo) FindByIDWithQuestions(uint) (*model.Form, error) {
	return s.form, s.err
}
func (s *stubFormRepo) FindAllByOwnerWithCounts(uint) ([]struct {
	model.Form
	QuestionCount int
	ResponseCount int
}, error) {
	return nil, nil
}
func (s *stubFormRepo) Update(*model.Form) error { return nil }
func (s *stubFormRepo) Delete(uint) error        { return nil }

type stubResponseRepo struct {
	created      *model.Response
	countByEmail int64
	countErr     error
	createErr    error
}

func (s *stubResponseRepo) CreateWithAnswers(r *model.Response) error {
	if s.createErr != nil {
		return s.createErr
	}
	r.ID = 42
	s.created = r
	return nil
}
func (s *stubResponseRepo) FindByIDWithAnswers(uint) (*model.Response, error) { return nil, nil }
func (s *stubResponseRepo) FindAllByForm(uint) ([]model.Response, error)      { return nil, nil }
func (s *stubResponseRepo) FindAllByFormWithAnswers(uint) ([]model.Response, error) {
	return nil, nil
}
func (s *stubResponseRepo) CountByFormAndEmail(uint, string) (int64, error) {
	return s.countByEmail, s.countErr
}

func publishedForm() *model.Form {
	return &model.Form{
		ID:        1,
		Published: true,
		Questions: []model.Question{
			{ID: 10, Type: model.TypeShort, Prompt: "Name", Required: true},
			{ID: 11, Type: model.TypeLong, Prompt: "Feedback"},
			{ID: 12, Type: model.TypeMCQ, Prompt: "Rating", Options: []string{"Good", "Bad"}},
		},
		Settings: &model.FormSettings{ConfirmationMessage: "Thanks!"},
	}
}

func TestSubmit_StoresResponseWithAnswers(t *testing.T) {
	formRepo := &stubFormRepo{form: publishedForm()}
	respRepo := &stubResponseRepo{}
	svc := NewSubmissionService(formRepo, respRepo)

	result, err := svc.Submit(1, dto.ResponseSubmitDTO{
		RespondentEmail: strPtr("casey@example.com"),
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("Casey")},
			{QuestionID: 11, AnswerText: strPtr("All good"), AudioURL: strPtr("http://audio/1.webm"), TranscriptText: strPtr("All good")},
		},
	}, "test-agent/1.0")

	require.NoError(t, err)
	assert.Equal(t, uint(42), result.ResponseID)
	assert.Equal(t, "Thanks!", result.ConfirmationMessage)

	require.NotNil(t, respRepo.created)
	assert.Len(t, respRepo.created.Answers, 2)
	assert.Equal(t, "casey@example.com", respRepo.created.Email())
	assert.Equal(t, "test-agent/1.0", respRepo.created.RespondentMeta["user_agent"])
}

func TestSubmit_FormNotFound(t *testing.T) {
	svc := NewSubmissionService(&stubFormRepo{err: gorm.ErrRecordNotFound}, &stubResponseRepo{})

	_, err := svc.Submit(99, dto.ResponseSubmitDTO{}, "")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSubmit_UnpublishedFormRejected(t *testing.T) {
	form := publishedForm()
	form.Published = false
	svc := NewSubmissionService(&stubFormRepo{form: form}, &stubResponseRepo{})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{}, "")

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestSubmit_InvalidEmailRejected(t *testing.T) {
	svc := NewSubmissionService(&stubFormRepo{form: publishedForm()}, &stubResponseRepo{})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		RespondentEmail: strPtr("not-an-email"),
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("x")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestSubmit_MissingRequiredQuestion(t *testing.T) {
	respRepo := &stubResponseRepo{}
	svc := NewSubmissionService(&stubFormRepo{form: publishedForm()}, respRepo)

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 11, AnswerText: strPtr("feedback only")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
	assert.Nil(t, respRepo.created, "nothing is written when validation fails")
}

func TestSubmit_UnknownQuestionRejected(t *testing.T) {
	svc := NewSubmissionService(&stubFormRepo{form: publishedForm()}, &stubResponseRepo{})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("x")},
			{QuestionID: 999, AnswerText: strPtr("ghost")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestSubmit_DuplicateAnswerRejected(t *testing.T) {
	svc := NewSubmissionService(&stubFormRepo{form: publishedForm()}, &stubResponseRepo{})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("once")},
			{QuestionID: 10, AnswerText: strPtr("twice")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestSubmit_VoiceFieldsOnNonVoiceQuestionRejected(t *testing.T) {
	svc := NewSubmissionService(&stubFormRepo{form: publishedForm()}, &stubResponseRepo{})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("Casey"), AudioURL: strPtr("http://audio/1.webm")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestSubmit_LimitOneResponsePerEmail(t *testing.T) {
	form := publishedForm()
	form.Settings.LimitOneResponse = true
	svc := NewSubmissionService(&stubFormRepo{form: form}, &stubResponseRepo{countByEmail: 1})

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		RespondentEmail: strPtr("casey@example.com"),
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("Casey")},
		},
	}, "")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestSubmit_LimitDoesNotBlockAnonymous(t *testing.T) {
	form := publishedForm()
	form.Settings.LimitOneResponse = true
	respRepo := &stubResponseRepo{countByEmail: 5}
	svc := NewSubmissionService(&stubFormRepo{form: form}, respRepo)

	_, err := svc.Submit(1, dto.ResponseSubmitDTO{
		Answers: []dto.SubmitAnswerDTO{
			{QuestionID: 10, AnswerText: strPtr("Casey")},
		},
	}, "")

	assert.NoError(t, err)
	require.NotNil(t, respRepo.created)
	assert.Nil(t, respRepo.created.RespondentEmail)
}
