package repository

import "errors"

var (
	// ユーザーが見つかりませんを統一
	ErrUserNotFound = errors.New("user not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	ErrRecordNotFound = errors.New("record not found")

	// unique制約違反（どのカラムか分かる場合は個別のerrorにする）
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicate         = errors.New("duplicate record")

	// DB接続レベルの失敗
	ErrUnavailable = errors.New("database not available")
)
