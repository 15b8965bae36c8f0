package model

import "time"

// Conceptはlesson内の用語カード
type Concept struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonID   int64     `gorm:"index;not null" json:"lessonId"`
	Term       string    `gorm:"not null" json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
