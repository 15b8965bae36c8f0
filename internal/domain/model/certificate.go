package model

import "time"

type Certificate struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Serial   string `gorm:"type:uuid;uniqueIndex;not null" json:"serial"`
	UserID   int64  `gorm:"index;not null" json:"userId"`
	CourseID int64  `gorm:"index;not null" json:"courseId"`
	IssuedAt time.Time `gorm:"autoCreateTime" json:"issuedAt"`
}
