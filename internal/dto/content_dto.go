package dto

import "time"

// Admin content CRUD. Create requests bind from multipart forms so pictures
// and audio can ride along, the same shape the web client always posted.

// Upload carries an optional blob attached to a create request.
type Upload struct {
	Data        []byte
	ContentType string
}

type CreateSchoolRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type SchoolResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateClassroomRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type ClassroomResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	SchoolID  uint      `json:"school_id"`
	TeacherID uint      `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTestRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

type TestResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateQuestionRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

type QuestionResponse struct {
	ID        uint      `json:"id"`
	TestID    uint      `json:"test_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateOptionRequest struct {
	Name      string `form:"name" json:"name" binding:"required"`
	IsCorrect bool   `form:"is_correct" json:"is_correct"`
}

// OptionResponse exposes the stored (encoded) name; delivery endpoints return
// DeliveredOption with the decoded label instead.
type OptionResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Name       string `json:"name"`
	IsCorrect  bool   `json:"is_correct"`
}
