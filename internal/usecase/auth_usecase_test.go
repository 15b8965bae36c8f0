package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/auth"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByHandle(ctx context.Context, handle string) (*model.User, error) {
	args := m.Called(ctx, handle)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, oldToken string, next *model.RefreshToken) error {
	args := m.Called(ctx, oldToken, next)
	return args.Error(0)
}

// 入力検証は別テスト済みなので素通しのstubで良い
type okValidator struct{}

func (okValidator) ValidateSignup(ctx context.Context, name, username, email, password string) error {
	return nil
}
func (okValidator) ValidateLogin(ctx context.Context, handle, password string) error {
	return nil
}

// =====================
// helper
// =====================

const (
	ucAccessSecret  = "uc_access_secret"
	ucRefreshSecret = "uc_refresh_secret"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        ucAccessSecret,
		JWTRefreshSecret: ucRefreshSecret,
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	}
}

func newUsecase(users *MockUserRepository, tokens *MockRefreshTokenRepository) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(testConfig(), users, tokens, auth.NewPasswordHasher(), okValidator{})
}

func studentUser(t *testing.T, password string) *model.User {
	t.Helper()

	digest, err := auth.NewPasswordHasher().Hash(password)
	assert.NoError(t, err)

	return &model.User{
		ID:           1,
		Name:         "Test User",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: digest,
		Roles:        []model.UserRole{{UserID: 1, Role: model.RoleStudent}},
	}
}

// =====================
// Signup
// =====================

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with STUDENT role and returns token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		users.On("Create", ctx, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*model.User)
				u.ID = 10
			}).
			Return(nil)

		out, err := uc.Signup(ctx, usecase.SignupInput{
			Name:     "Test User",
			Username: "testuser",
			Email:    "test@example.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, out.Token)

		//作られたuserにSTUDENT roleが付いていること
		created := users.Calls[0].Arguments.Get(1).(*model.User)
		assert.Len(t, created.Roles, 1)
		assert.Equal(t, model.RoleStudent, created.Roles[0].Role)
		//平文パスワードを保存していないこと
		assert.NotEqual(t, "password123", created.PasswordHash)

		//tokenはaccess secretで検証でき、STUDENTを載せている
		claims, err := auth.Verify(out.Token, ucAccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), claims.UserID)
		assert.Equal(t, []string{"STUDENT"}, claims.Roles)

		users.AssertExpectations(t)
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateUsername)

		_, err := uc.Signup(ctx, usecase.SignupInput{
			Name: "n", Username: "taken", Email: "a@b.co", Password: "password123",
		})
		assert.ErrorIs(t, err, usecase.ErrConflictUsername)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)

		_, err := uc.Signup(ctx, usecase.SignupInput{
			Name: "n", Username: "u", Email: "taken@b.co", Password: "password123",
		})
		assert.ErrorIs(t, err, usecase.ErrConflictEmail)
	})

	t.Run("connection failure maps to unavailable", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("Create", ctx, mock.Anything).Return(repository.ErrUnavailable)

		_, err := uc.Signup(ctx, usecase.SignupInput{
			Name: "n", Username: "u", Email: "a@b.co", Password: "password123",
		})
		assert.ErrorIs(t, err, usecase.ErrUnavailable)
	})
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues access and refresh tokens", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		user := studentUser(t, "password123")
		users.On("FindByHandle", ctx, "testuser").Return(user, nil)
		tokens.On("Create", ctx, mock.AnythingOfType("*model.RefreshToken")).Return(nil)

		out, err := uc.Login(ctx, "testuser", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Body.Token)
		assert.NotEmpty(t, out.RefreshToken)
		assert.True(t, out.RefreshExpiresAt.After(time.Now()))

		//access tokenはaccess secretでだけ通る
		_, err = auth.Verify(out.Body.Token, ucAccessSecret)
		assert.NoError(t, err)
		_, err = auth.Verify(out.Body.Token, ucRefreshSecret)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		//refresh tokenはrefresh secretでだけ通る
		claims, err := auth.Verify(out.RefreshToken, ucRefreshSecret)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		_, err = auth.Verify(out.RefreshToken, ucAccessSecret)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		//保存されたrecordはtoken値とuserIDを持つ
		rec := tokens.Calls[0].Arguments.Get(1).(*model.RefreshToken)
		assert.Equal(t, out.RefreshToken, rec.Token)
		assert.Equal(t, int64(1), rec.UserID)

		tokens.AssertExpectations(t)
	})

	t.Run("unknown handle is invalid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("FindByHandle", ctx, "nobody").Return(nil, nil)

		_, err := uc.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("wrong password is the same invalid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("FindByHandle", ctx, "testuser").Return(studentUser(t, "password123"), nil)

		_, err := uc.Login(ctx, "testuser", "wrongpassword")
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("email works as handle", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		users.On("FindByHandle", ctx, "test@example.com").Return(studentUser(t, "password123"), nil)
		tokens.On("Create", ctx, mock.Anything).Return(nil)

		out, err := uc.Login(ctx, "test@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Body.Token)
	})
}

// =====================
// Refresh
// =====================

func TestAuthUsecase_Refresh(t *testing.T) {
	ctx := context.Background()

	signRefresh := func(t *testing.T, ttl time.Duration) string {
		t.Helper()
		token, err := auth.Sign(auth.Claims{
			UserID:   1,
			Username: "testuser",
			Roles:    []string{"STUDENT"},
		}, ucRefreshSecret, ttl)
		assert.NoError(t, err)
		return token
	}

	t.Run("success rotates and reissues", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		old := signRefresh(t, time.Hour)
		tokens.On("FindByToken", ctx, old).Return(&model.RefreshToken{
			Token:     old,
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("FindByID", ctx, int64(1)).Return(studentUser(t, "password123"), nil)
		tokens.On("Rotate", ctx, old, mock.AnythingOfType("*model.RefreshToken")).Return(nil)

		out, err := uc.Refresh(ctx, old)
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Body.Token)
		assert.NotEqual(t, old, out.RefreshToken)

		_, err = auth.Verify(out.Body.Token, ucAccessSecret)
		assert.NoError(t, err)

		tokens.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("garbage token fails closed without touching the store", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		_, err := uc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
		tokens.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
	})

	t.Run("token signed with access secret is rejected", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		wrong, err := auth.Sign(auth.Claims{UserID: 1, Username: "testuser"}, ucAccessSecret, time.Hour)
		assert.NoError(t, err)

		_, err = uc.Refresh(ctx, wrong)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})

	t.Run("missing persisted record means 401", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		old := signRefresh(t, time.Hour)
		tokens.On("FindByToken", ctx, old).Return(nil, nil)

		_, err := uc.Refresh(ctx, old)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})

	t.Run("stale persisted expiry deletes the row", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		//JWT自体はまだ有効でもDB側expiresAtが過去なら失効
		old := signRefresh(t, time.Hour)
		tokens.On("FindByToken", ctx, old).Return(&model.RefreshToken{
			Token:     old,
			UserID:    1,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		tokens.On("DeleteByToken", ctx, old).Return(nil)

		_, err := uc.Refresh(ctx, old)
		assert.ErrorIs(t, err, usecase.ErrRefreshExpired)
		tokens.AssertCalled(t, "DeleteByToken", ctx, old)
	})

	t.Run("losing a rotation race fails closed", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		old := signRefresh(t, time.Hour)
		tokens.On("FindByToken", ctx, old).Return(&model.RefreshToken{
			Token:     old,
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("FindByID", ctx, int64(1)).Return(studentUser(t, "password123"), nil)
		//並行するrefreshが先にrotateしていた
		tokens.On("Rotate", ctx, old, mock.Anything).Return(repository.ErrRefreshTokenNotFound)

		_, err := uc.Refresh(ctx, old)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})

	t.Run("vanished user means 401", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(users, tokens)

		old := signRefresh(t, time.Hour)
		tokens.On("FindByToken", ctx, old).Return(&model.RefreshToken{
			Token:     old,
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("FindByID", ctx, int64(1)).Return(nil, nil)

		_, err := uc.Refresh(ctx, old)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})
}

// =====================
// Logout / Verify / ForgotPassword
// =====================

func TestAuthUsecase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the persisted token", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		tokens.On("DeleteByToken", ctx, "some-token").Return(nil)

		assert.NoError(t, uc.Logout(ctx, "some-token"))
		tokens.AssertExpectations(t)
	})

	t.Run("empty token is 401 without touching the store", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		err := uc.Logout(ctx, "")
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
		tokens.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
	})

	t.Run("delete failure is indistinguishable from not logged in", func(t *testing.T) {
		tokens := new(MockRefreshTokenRepository)
		uc := newUsecase(new(MockUserRepository), tokens)

		tokens.On("DeleteByToken", ctx, "some-token").Return(repository.ErrUnavailable)

		err := uc.Logout(ctx, "some-token")
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})
}

func TestAuthUsecase_Verify(t *testing.T) {
	uc := newUsecase(new(MockUserRepository), new(MockRefreshTokenRepository))

	t.Run("valid access token returns claims", func(t *testing.T) {
		token, err := auth.Sign(auth.Claims{
			UserID: 1, Username: "testuser", Roles: []string{"STUDENT"},
		}, ucAccessSecret, time.Hour)
		assert.NoError(t, err)

		claims, err := uc.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "testuser", claims.Username)
	})

	t.Run("refresh token does not pass as access token", func(t *testing.T) {
		token, err := auth.Sign(auth.Claims{
			UserID: 1, Username: "testuser",
		}, ucRefreshSecret, time.Hour)
		assert.NoError(t, err)

		_, err = uc.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthUsecase_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email is 404", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		err := uc.ForgotPassword(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("known email succeeds", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := newUsecase(users, new(MockRefreshTokenRepository))

		users.On("FindByEmail", ctx, "test@example.com").Return(studentUser(t, "password123"), nil)

		assert.NoError(t, uc.ForgotPassword(ctx, "test@example.com"))
	})
}
