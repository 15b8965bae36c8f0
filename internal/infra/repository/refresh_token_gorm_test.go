package repository

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	assert.NoError(t, db.AutoMigrate(&model.RefreshToken{}))
	return db
}

func countTokens(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	assert.NoError(t, db.Model(&model.RefreshToken{}).Count(&n).Error)
	return n
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find by token", func(t *testing.T) {
		db := newTestDB(t)
		r := NewRefreshTokenGormRepository(db)

		rec := &model.RefreshToken{
			Token:     "token-a",
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		assert.NoError(t, r.Create(ctx, rec))

		found, err := r.FindByToken(ctx, "token-a")
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, int64(1), found.UserID)

		missing, err := r.FindByToken(ctx, "token-b")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete by token is idempotent", func(t *testing.T) {
		db := newTestDB(t)
		r := NewRefreshTokenGormRepository(db)

		assert.NoError(t, r.Create(ctx, &model.RefreshToken{
			Token: "token-a", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		}))

		assert.NoError(t, r.DeleteByToken(ctx, "token-a"))
		//2回目も、存在しないtokenでもerrorにならない
		assert.NoError(t, r.DeleteByToken(ctx, "token-a"))
		assert.NoError(t, r.DeleteByToken(ctx, "never-existed"))

		assert.EqualValues(t, 0, countTokens(t, db))
	})

	t.Run("rotate replaces old with new atomically", func(t *testing.T) {
		db := newTestDB(t)
		r := NewRefreshTokenGormRepository(db)

		assert.NoError(t, r.Create(ctx, &model.RefreshToken{
			Token: "old-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		}))

		next := &model.RefreshToken{
			Token: "new-token", UserID: 1, ExpiresAt: time.Now().Add(2 * time.Hour),
		}
		assert.NoError(t, r.Rotate(ctx, "old-token", next))

		old, err := r.FindByToken(ctx, "old-token")
		assert.NoError(t, err)
		assert.Nil(t, old)

		fresh, err := r.FindByToken(ctx, "new-token")
		assert.NoError(t, err)
		assert.NotNil(t, fresh)

		assert.EqualValues(t, 1, countTokens(t, db))
	})

	t.Run("rotate of an already rotated token fails and creates nothing", func(t *testing.T) {
		db := newTestDB(t)
		r := NewRefreshTokenGormRepository(db)

		assert.NoError(t, r.Create(ctx, &model.RefreshToken{
			Token: "old-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		}))

		winner := &model.RefreshToken{
			Token: "winner-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		}
		assert.NoError(t, r.Rotate(ctx, "old-token", winner))

		//同じold tokenでの2回目（レースの負け側）は401相当のerrorで、
		//新しいtokenも作られない
		loser := &model.RefreshToken{
			Token: "loser-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		}
		err := r.Rotate(ctx, "old-token", loser)
		assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)

		gone, err := r.FindByToken(ctx, "loser-token")
		assert.NoError(t, err)
		assert.Nil(t, gone)

		assert.EqualValues(t, 1, countTokens(t, db))
	})

	t.Run("rotate with unknown old token creates nothing", func(t *testing.T) {
		db := newTestDB(t)
		r := NewRefreshTokenGormRepository(db)

		err := r.Rotate(ctx, "never-existed", &model.RefreshToken{
			Token: "new-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour),
		})
		assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)
		assert.EqualValues(t, 0, countTokens(t, db))
	})
}
