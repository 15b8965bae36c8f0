package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// 署名不一致や形式不正
	ErrInvalidToken = errors.New("invalid token")
	// 期限切れ
	ErrTokenExpired = errors.New("token expired")
)

// ClaimsはJWTに入れるペイロード
// デコード結果をそのまま信用せずValidateで形を確認する
type Claims struct {
	UserID   int64    `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Validateはclaimsの形チェック
func (c *Claims) Validate() error {
	if c.UserID <= 0 || c.Username == "" {
		return ErrInvalidToken
	}
	return nil
}

// Signはclaimsに発行時刻と期限を付けてHS256で署名する
// accessとrefreshでsecret/ttlを変えて使う
func Sign(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return t.SignedString([]byte(secret))
}

// Verifyはtokenを検証してclaimsを返す
// 期限切れはErrTokenExpired、それ以外の検証失敗は全てErrInvalidToken
func Verify(raw string, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if err := claims.Validate(); err != nil {
		return nil, err
	}

	return claims, nil
}
