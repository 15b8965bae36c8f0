package model

import "time"

// RefreshTokenは発行済みrefresh tokenの記録
// token自体が署名付きJWTなので値の一意性はtoken文字列で担保する
type RefreshToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    int64     `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
