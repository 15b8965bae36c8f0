package auth

import "golang.org/x/crypto/bcrypt"

// bcryptのコスト
const hashCost = 10

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: hashCost}
}

// Hashはパスワードをbcryptでハッシュ化する
// saltはbcryptが内部で生成するので同じ入力でも毎回違うdigestになる
func (h *PasswordHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verifyは平文とdigestを照合する
// 不一致はfalseを返すだけでerrorにはしない
func (h *PasswordHasher) Verify(plain string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
