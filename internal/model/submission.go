package model

import (
	"time"
)

// UserTestSubmission is a transient row: one answered question pending
// aggregation. Rows are consumed by finalize or cleared by the reset
// operation, never soft-deleted.
type UserTestSubmission struct {
	ID                     uint      `gorm:"primarykey" json:"id"`
	UserID                 uint      `json:"user_id" gorm:"not null;index:idx_submissions_user_test"`
	TestID                 uint      `json:"test_id" gorm:"not null;index:idx_submissions_user_test"`
	QuestionID             uint      `json:"question_id" gorm:"not null;index"`
	SelectedOptionID       uint      `json:"selected_option_id" gorm:"not null"`
	Score                  int       `json:"score" gorm:"not null"`
	LastAnsweredQuestionID *uint     `json:"last_answered_question_id,omitempty" gorm:"constraint:OnDelete:SET NULL;"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
