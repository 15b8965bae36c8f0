package model

import "time"

type Lesson struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  int64     `gorm:"index;not null" json:"courseId"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Concepts  []Concept `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"concepts,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
