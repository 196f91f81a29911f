package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type ClassroomRepository interface {
	Create(classroom *model.Classroom) error
	FindByID(id uint) (*model.Classroom, error)
	FindByName(name string) (*model.Classroom, error)
	FindByStudentID(studentID uint) ([]model.Classroom, error)
	FindByTeacherID(teacherID uint) ([]model.Classroom, error)
	AddStudent(classroom *model.Classroom, student *model.Student) error
	AttachTest(classroom *model.Classroom, test *model.Test) error
	Delete(id uint) error
}

type classroomRepository struct {
	db *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) Create(classroom *model.Classroom) error {
	return r.db.Create(classroom).Error
}

func (r *classroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	if err := r.db.First(&classroom, id).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) FindByName(name string) (*model.Classroom, error) {
	var classroom model.Classroom
	if err := r.db.Where("name = ?", name).First(&classroom).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) FindByStudentID(studentID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.
		Joins("JOIN classroom_students cs ON cs.classroom_id = classrooms.id").
		Where("cs.student_id = ?", studentID).
		Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepository) FindByTeacherID(teacherID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.Where("teacher_id = ?", teacherID).Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepository) AddStudent(classroom *model.Classroom, student *model.Student) error {
	return r.db.Model(classroom).Association("Students").Append(student)
}

func (r *classroomRepository) AttachTest(classroom *model.Classroom, test *model.Test) error {
	return r.db.Model(classroom).Association("Tests").Append(test)
}

func (r *classroomRepository) Delete(id uint) error {
	return r.db.Delete(&model.Classroom{}, id).Error
}
