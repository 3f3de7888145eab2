package repository

import (
	"github.com/asrayg/betterforms/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	// FindAllByForm returns every answer belonging to the form's responses,
	// with the owning question preloaded.
	FindAllByForm(formID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindAllByForm(formID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("responses.form_id = ?", formID).
		Preload("Question").
		Find(&answers).Error
	return answers, err
}
