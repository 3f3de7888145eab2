package repository

import (
	"github.com/asrayg/betterforms/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	// CreateWithAnswers stores a response and all of its answers in one
	// transaction. Either everything is written or nothing is.
	CreateWithAnswers(response *model.Response) error
	FindByIDWithAnswers(id uint) (*model.Response, error)
	// FindAllByForm returns responses newest-first, without answers.
	FindAllByForm(formID uint) ([]model.Response, error)
	// FindAllByFormWithAnswers returns responses newest-first with answers
	// and their questions preloaded.
	FindAllByFormWithAnswers(formID uint) ([]model.Response, error)
	CountByFormAndEmail(formID uint, email string) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) CreateWithAnswers(response *model.Response) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
}

func (r *responseRepository) FindByIDWithAnswers(id uint) (*model.Response, error) {
	var response model.Response
	err := r.db.
		Preload("Answers.Question").
		First(&response, id).Error
	return &response, err
}

func (r *responseRepository) FindAllByForm(formID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("form_id = ?", formID).Order("created_at DESC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) FindAllByFormWithAnswers(formID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.
		Preload("Answers.Question").
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) CountByFormAndEmail(formID uint, email string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).
		Where("form_id = ? AND respondent_email = ?", formID, email).
		Count(&count).Error
	return count, err
}
