package repository

import (
	"app/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（Rolesも同じトランザクションで保存される）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する（Roles込み）。いなければnil
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//usernameまたはemailの一致で1件取得する（Roles込み）。いなければnil
	FindByHandle(ctx context.Context, handle string) (*model.User, error)
	//メールからユーザーを1件取得する。いなければnil
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
