package model

import (
	"time"

	"gorm.io/gorm"
)

// Test owns an ordered-by-creation set of Questions. TotalQuestions is
// derived and recomputed whenever the question set changes.
type Test struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Name               string         `json:"name" gorm:"not null"`
	TotalQuestions     int            `json:"total_questions" gorm:"not null;default:0"`
	Picture            []byte         `json:"-" gorm:"type:bytea"`
	PictureContentType string         `json:"-"`
	Questions          []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Classrooms         []Classroom    `json:"classrooms,omitempty" gorm:"many2many:classroom_tests;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
