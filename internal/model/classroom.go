package model

import (
	"time"

	"gorm.io/gorm"
)

// Classroom belongs to one School and one Teacher. Students enroll through a
// join-by-password flow; Tests attach many-to-many since one test can be
// assigned to several classrooms.
type Classroom struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Name               string         `json:"name" gorm:"not null;uniqueIndex"`
	Password           string         `json:"-" gorm:"not null"`
	SchoolID           uint           `json:"school_id" gorm:"not null;index"`
	TeacherID          uint           `json:"teacher_id" gorm:"not null;index"`
	Picture            []byte         `json:"-" gorm:"type:bytea"`
	PictureContentType string         `json:"-"`
	Students           []Student      `json:"students,omitempty" gorm:"many2many:classroom_students;"`
	Tests              []Test         `json:"tests,omitempty" gorm:"many2many:classroom_tests;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
