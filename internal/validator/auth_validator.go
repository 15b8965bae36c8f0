package validator

import (
	"context"
	"regexp"
	"strings"

	"app/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, name, username, email, password string) error {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// 必須チェック
	if name == "" || username == "" || email == "" || password == "" {
		return usecase.ErrValidation
	}

	// email形式
	if !emailRe.MatchString(email) {
		return usecase.ErrValidation
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return usecase.ErrValidation
	}

	return nil
}

// ログインの入力を検証
// handleはusernameでもemailでも良いので形式チェックはしない
func (v *authValidator) ValidateLogin(ctx context.Context, handle, password string) error {
	if strings.TrimSpace(handle) == "" || password == "" {
		return usecase.ErrValidation
	}
	return nil
}
