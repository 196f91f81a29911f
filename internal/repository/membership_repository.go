package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	FindStudentByUserID(userID uint) (*model.Student, error)
	GetOrCreateStudent(userID uint) (*model.Student, error)
	FindTeacherByUserID(userID uint) (*model.Teacher, error)
	CreateTeacher(teacher *model.Teacher) error
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) FindStudentByUserID(userID uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *membershipRepository) GetOrCreateStudent(userID uint) (*model.Student, error) {
	var student model.Student
	err := r.db.Where(model.Student{UserID: userID}).FirstOrCreate(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *membershipRepository) FindTeacherByUserID(userID uint) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *membershipRepository) CreateTeacher(teacher *model.Teacher) error {
	return r.db.Create(teacher).Error
}
