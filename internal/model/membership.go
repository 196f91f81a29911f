package model

import (
	"time"

	"gorm.io/gorm"
)

// Teacher associates an identity-provider user with a School. The user id is
// whatever the identity provider issued; the core only stores it.
type Teacher struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	SchoolID  uint           `json:"school_id" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Student enrolls in classrooms many-to-many via the join-by-password flow.
type Student struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	Classrooms []Classroom    `json:"classrooms,omitempty" gorm:"many2many:classroom_students;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
