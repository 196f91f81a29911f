package model

import (
	"time"

	"gorm.io/gorm"
)

// Option stores its display text with the option's own decimal id appended
// to the end of Name. Delivery reverses the encoding by stripping exactly
// len(strconv.Itoa(ID)) trailing characters. Within a question at most one
// option should carry IsCorrect; the scoring lookup fails loudly otherwise.
type Option struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	QuestionID         uint           `json:"question_id" gorm:"not null;index"`
	Name               string         `json:"name" gorm:"not null"`
	IsCorrect          bool           `json:"is_correct" gorm:"not null;default:false"`
	Picture            []byte         `json:"-" gorm:"type:bytea"`
	PictureContentType string         `json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
