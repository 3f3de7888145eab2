package repository

import (
	"github.com/asrayg/betterforms/internal/model"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id uint) (*model.Form, error)
	FindByIDWithQuestions(id uint) (*model.Form, error)
	FindAllByOwnerWithCounts(ownerID uint) ([]struct {
		model.Form
		QuestionCount int
		ResponseCount int
	}, error)
	Update(form *model.Form) error
	Delete(id uint) error
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	// GORM creates associated questions when form.Questions is populated.
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.First(&form, id).Error
	return &form, err
}

func (r *formRepository) FindByIDWithQuestions(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&form, id).Error
	return &form, err
}

func (r *formRepository) FindAllByOwnerWithCounts(ownerID uint) ([]struct {
	model.Form
	QuestionCount int
	ResponseCount int
}, error) {
	var results []struct {
		model.Form
		QuestionCount int
		ResponseCount int
	}
	err := r.db.Model(&model.Form{}).
		Select("forms.*, "+
			"(SELECT COUNT(*) FROM questions WHERE questions.form_id = forms.id AND questions.deleted_at IS NULL) as question_count, "+
			"(SELECT COUNT(*) FROM responses WHERE responses.form_id = forms.id) as response_count").
		Where("forms.owner_id = ?", ownerID).
		Where("forms.deleted_at IS NULL").
		Order("forms.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *formRepository) Update(form *model.Form) error {
	return r.db.Save(form).Error
}

func (r *formRepository) Delete(id uint) error {
	// Cascades to questions, responses and answers through FK constraints.
	return r.db.Delete(&model.Form{}, id).Error
}
