package repository

import (
	"errors"
	"net"
	"strings"

	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation はPostgresのunique制約違反コード
const pgUniqueViolation = "23505"

// mapWriteError はINSERT/UPDATE系の失敗をrepositoryのerrorに正規化する
// unique違反はどの制約に当たったかでusername/emailを区別する
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			switch {
			case strings.Contains(pgErr.ConstraintName, "username"):
				return repo.ErrDuplicateUsername
			case strings.Contains(pgErr.ConstraintName, "email"):
				return repo.ErrDuplicateEmail
			default:
				return repo.ErrDuplicate
			}
		}
		// class 08 = connection exception
		if strings.HasPrefix(pgErr.Code, "08") {
			return repo.ErrUnavailable
		}
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrDuplicate
	}

	if isConnectionError(err) {
		return repo.ErrUnavailable
	}

	return err
}

// isConnectionError はDBに到達できない系の失敗かどうか
func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
