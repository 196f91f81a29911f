package model

import (
	"time"
)

const (
	SessionStatusOpen      = "open"
	SessionStatusFinalized = "finalized"
)

// Session is one instance of a user starting a test. Number carries the test
// id and User the identity-provider username as free text; the timestamp is
// truncated to minute granularity.
type Session struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SessionName string    `json:"session_name" gorm:"not null"`
	User        string    `json:"user" gorm:"not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null;index:idx_sessions_user_test"`
	Number      uint      `json:"number" gorm:"not null;index:idx_sessions_user_test"`
	Status      string    `json:"status" gorm:"not null;default:'open'"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
