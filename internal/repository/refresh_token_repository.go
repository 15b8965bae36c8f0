package repository

import (
	"app/internal/domain/model"
	"context"
)

// リフレッシュトークンの保存・取得・rotate・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	//token値で1件検索。なければnil
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	//token値で削除。0件でもerrorにしない（冪等）
	DeleteByToken(ctx context.Context, token string) error
	// Rotateは旧tokenの削除と新tokenの作成を1トランザクションで行う
	// 旧tokenが既に消えていた場合はErrRefreshTokenNotFoundを返し新tokenも作らない
	// （同じtokenでの同時refreshは片方だけ成功させる）
	Rotate(ctx context.Context, oldToken string, next *model.RefreshToken) error
}
