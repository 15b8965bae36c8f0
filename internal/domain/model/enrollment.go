package model

import "time"

// Enrollmentは受講登録（user×courseで一意）
type Enrollment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID   int64     `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	Progress   int       `gorm:"not null;default:0" json:"progress"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
