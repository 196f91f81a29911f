package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	TestID             uint           `json:"test_id" gorm:"not null;index"`
	Name               string         `json:"name" gorm:"not null"`
	Picture            []byte         `json:"-" gorm:"type:bytea"`
	PictureContentType string         `json:"-"`
	Audio              []byte         `json:"-" gorm:"type:bytea"`
	AudioContentType   string         `json:"-"`
	Options            []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
