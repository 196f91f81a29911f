package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type SchoolRepository interface {
	Create(school *model.School) error
	FindByID(id uint) (*model.School, error)
	FindByNameAndPassword(name, password string) (*model.School, error)
	Delete(id uint) error
}

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) Create(school *model.School) error {
	return r.db.Create(school).Error
}

func (r *schoolRepository) FindByID(id uint) (*model.School, error) {
	var school model.School
	if err := r.db.First(&school, id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) FindByNameAndPassword(name, password string) (*model.School, error) {
	var school model.School
	if err := r.db.Where("name = ? AND password = ?", name, password).First(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) Delete(id uint) error {
	return r.db.Select("Classrooms").Delete(&model.School{ID: id}).Error
}
