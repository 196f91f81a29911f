package model

import (
	"time"

	"gorm.io/gorm"
)

// School is the root of the content hierarchy. The password is compared by
// exact match when a teacher associates with the school.
type School struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Name               string         `json:"name" gorm:"not null;uniqueIndex"`
	Password           string         `json:"-" gorm:"not null"`
	Picture            []byte         `json:"-" gorm:"type:bytea"`
	PictureContentType string         `json:"-"`
	Classrooms         []Classroom    `json:"classrooms,omitempty" gorm:"foreignKey:SchoolID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
