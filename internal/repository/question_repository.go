package repository

import (
	"github.com/asrayg/betterforms/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	FindByFormID(formID uint) ([]model.Question, error)
	// ReplaceForForm swaps the form's question set atomically: the builder
	// always saves the full ordered list, so existing questions are removed
	// and the new set inserted in one transaction.
	ReplaceForForm(formID uint, questions []model.Question) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByFormID(formID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("form_id = ?", formID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) ReplaceForForm(formID uint, questions []model.Question) ([]model.Question, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", formID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].FormID = formID
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}
