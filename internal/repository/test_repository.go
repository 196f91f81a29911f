package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindByClassroomID(classroomID uint) ([]model.Test, error)
	UpdateTotalQuestions(testID uint, total int) error
	Delete(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.created_at ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByClassroomID(classroomID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Joins("JOIN classroom_tests ct ON ct.test_id = tests.id").
		Where("ct.classroom_id = ?", classroomID).
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) UpdateTotalQuestions(testID uint, total int) error {
	return r.db.Model(&model.Test{}).Where("id = ?", testID).Update("total_questions", total).Error
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Delete(&model.Test{}, id).Error
}
