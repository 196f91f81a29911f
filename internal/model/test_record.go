package model

import (
	"time"
)

// TestRecord is permanent and append-only. A finalize call writes one
// per-question record per consumed submission plus a single total record,
// all sharing the same GroupID. Question and option names are snapshotted by
// value so later content edits never rewrite history; the question link is
// nullified if the question is deleted.
type TestRecord struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	UserID             uint      `json:"user_id" gorm:"not null;index:idx_records_user_test"`
	TestID             uint      `json:"test_id" gorm:"not null;index:idx_records_user_test"`
	QuestionID         *uint     `json:"question_id,omitempty" gorm:"constraint:OnDelete:SET NULL;"`
	QuestionName       string    `json:"question_name,omitempty"`
	SelectedOptionName string    `json:"selected_option_name,omitempty"`
	RecordedScore      *int      `json:"recorded_score,omitempty"`
	TotalRecordedScore *int      `json:"total_recorded_score,omitempty"`
	GroupID            string    `json:"group_id" gorm:"not null;index"`
	SessionID          uint      `json:"session_id" gorm:"not null;index"`
	CreatedAt          time.Time `json:"created_at"`
}
