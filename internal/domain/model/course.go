package model

import "time"

type Course struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	Description  string   `json:"description"`
	Category     string   `gorm:"index" json:"category"`
	InstructorID int64    `gorm:"index;not null" json:"instructorId"`
	Published    bool     `gorm:"not null;default:false" json:"published"`
	Lessons      []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
