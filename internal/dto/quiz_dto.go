package dto

import "time"

// DeliveredQuestion is what a test taker sees. Correctness never leaves the
// server through this shape.
type DeliveredQuestion struct {
	ID         uint   `json:"id"`
	TestID     uint   `json:"test_id"`
	Name       string `json:"name"`
	HasPicture bool   `json:"has_picture"`
	HasAudio   bool   `json:"has_audio"`
}

type DeliveredOption struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Label      string `json:"label"`
	HasPicture bool   `json:"has_picture"`
}

type SubmitAnswerRequest struct {
	SelectedOptionID uint `json:"selected_option_id" binding:"required"`
}

type SubmitAnswerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type FinalizeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RecordIDs []uint `json:"record_ids"`
}

type SessionResponse struct {
	ID          uint      `json:"id"`
	SessionName string    `json:"session_name"`
	User        string    `json:"user"`
	Number      uint      `json:"number"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

type TestRecordResponse struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	TestID             uint      `json:"test_id"`
	QuestionID         *uint     `json:"question_id,omitempty"`
	QuestionName       string    `json:"question_name,omitempty"`
	SelectedOptionName string    `json:"selected_option_name,omitempty"`
	RecordedScore      *int      `json:"recorded_score,omitempty"`
	TotalRecordedScore *int      `json:"total_recorded_score,omitempty"`
	GroupID            string    `json:"group_id"`
	SessionID          uint      `json:"session_id"`
	CreatedAt          time.Time `json:"created_at"`
}

type JoinClassroomRequest struct {
	ClassroomName     string `json:"classroom_name" binding:"required"`
	ClassroomPassword string `json:"classroom_password" binding:"required"`
}

type JoinSchoolRequest struct {
	SchoolName     string `json:"school_name" binding:"required"`
	SchoolPassword string `json:"school_password" binding:"required"`
}
