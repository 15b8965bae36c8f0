package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const (
	testAccessSecret  = "test_access_secret"
	testRefreshSecret = "test_refresh_secret"
)

func testClaims() Claims {
	return Claims{
		UserID:   42,
		Username: "testuser",
		Roles:    []string{"STUDENT"},
	}
}

func TestSignAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token, err := Sign(testClaims(), testAccessSecret, time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := Verify(token, testAccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "testuser", claims.Username)
		assert.Equal(t, []string{"STUDENT"}, claims.Roles)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		token, err := Sign(testClaims(), testAccessSecret, time.Hour)
		assert.NoError(t, err)

		claims, err := Verify(token, "wrong_secret")
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access and refresh secrets are not interchangeable", func(t *testing.T) {
		accessToken, err := Sign(testClaims(), testAccessSecret, time.Hour)
		assert.NoError(t, err)
		refreshToken, err := Sign(testClaims(), testRefreshSecret, time.Hour)
		assert.NoError(t, err)

		_, err = Verify(accessToken, testRefreshSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = Verify(refreshToken, testAccessSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token fails with ErrTokenExpired", func(t *testing.T) {
		token, err := Sign(testClaims(), testAccessSecret, -time.Minute)
		assert.NoError(t, err)

		claims, err := Verify(token, testAccessSecret)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("rejects non-HS256 signing method", func(t *testing.T) {
		//alg=noneのtokenは署名が合っていても弾く
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			UserID:   42,
			Username: "testuser",
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = Verify(raw, testAccessSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects claims with missing identity", func(t *testing.T) {
		token, err := Sign(Claims{Username: "nouid"}, testAccessSecret, time.Hour)
		assert.NoError(t, err)

		_, err = Verify(token, testAccessSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
