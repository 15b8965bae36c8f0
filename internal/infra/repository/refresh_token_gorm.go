package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewRefreshTokenGormRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db}
}

// リフレッシュトークンを保存する
func (r *refreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	//タイムアウトやキャンセルをDB処理に伝える
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// token値で1件検索します。なければnil
func (r *refreshTokenGormRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&rt).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}

	return &rt, nil
}

// token値で削除します。0件でもerrorにしない（logoutやrotateの後追いを許す）
func (r *refreshTokenGormRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.RefreshToken{}).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Rotateは旧tokenの削除と新tokenの作成を1トランザクションで行う
// 削除が0件なら誰かが先にrotate済みなのでErrRefreshTokenNotFoundでrollbackする
// （新tokenは作られない。同じtokenの同時refreshはここで片方だけ成功する）
func (r *refreshTokenGormRepository) Rotate(ctx context.Context, oldToken string, next *model.RefreshToken) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("token = ?", oldToken).Delete(&model.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrRefreshTokenNotFound
		}

		return tx.Create(next).Error
	})

	if err != nil {
		if errors.Is(err, repo.ErrRefreshTokenNotFound) {
			return err
		}
		return mapWriteError(err)
	}
	return nil
}
