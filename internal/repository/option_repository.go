package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type OptionRepository interface {
	Create(option *model.Option) error
	UpdateName(id uint, name string) error
	FindByID(id uint) (*model.Option, error)
	FindByIDAndQuestion(id, questionID uint) (*model.Option, error)
	FindByQuestionID(questionID uint) ([]model.Option, error)
	FindCorrectByQuestionID(questionID uint) ([]model.Option, error)
	Delete(id uint) error
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) Create(option *model.Option) error {
	return r.db.Create(option).Error
}

func (r *optionRepository) UpdateName(id uint, name string) error {
	return r.db.Model(&model.Option{}).Where("id = ?", id).Update("name", name).Error
}

func (r *optionRepository) FindByID(id uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionRepository) FindByIDAndQuestion(id, questionID uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.Where("id = ? AND question_id = ?", id, questionID).First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionRepository) FindByQuestionID(questionID uint) ([]model.Option, error) {
	var options []model.Option
	if err := r.db.Where("question_id = ?", questionID).Order("id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// FindCorrectByQuestionID returns every option flagged correct; callers treat
// anything other than exactly one hit as a data integrity violation.
func (r *optionRepository) FindCorrectByQuestionID(questionID uint) ([]model.Option, error) {
	var options []model.Option
	if err := r.db.Where("question_id = ? AND is_correct = ?", questionID, true).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Option{}, id).Error
}
