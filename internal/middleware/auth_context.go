package middleware

import (
	"net/http"
	"strings"

	"app/internal/auth"
	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

const CtxIdentityKey = "identity" // middleware.Identity

// Identityはリクエストごとに導出される認証情報
// Userがnilなら匿名。導出は1リクエスト1回でimmutable
type Identity struct {
	User *auth.Claims
}

// HasRoleは可変長OR判定。どれか1つ持っていればtrue
// 匿名（User==nil）やrole無指定は常にfalse
func (id Identity) HasRole(roles ...model.Role) bool {
	if id.User == nil || len(roles) == 0 {
		return false
	}
	for _, have := range id.User.Roles {
		for _, want := range roles {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

// DeriveIdentityはAuthorizationヘッダからIdentityを作ってcontextに入れる
// headerなし・形式不正・検証失敗は全て匿名に落とす（絶対にrejectしない）
func DeriveIdentity(accessSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CtxIdentityKey, deriveIdentity(c.Request(), accessSecret))
			return next(c)
		}
	}
}

func deriveIdentity(r *http.Request, accessSecret string) Identity {
	raw, ok := bearerToken(r)
	if !ok {
		return Identity{}
	}

	claims, err := auth.Verify(raw, accessSecret)
	if err != nil {
		//署名不正も期限切れもまとめて匿名扱い
		return Identity{}
	}

	return Identity{User: claims}
}

// bearerTokenはAuthorizationヘッダから"Bearer <token>"のtokenを抜く
func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// IdentityFromはcontextからIdentityを取り出す
// DeriveIdentityを通っていないrouteでは匿名を返す
func IdentityFrom(c echo.Context) Identity {
	id, ok := c.Get(CtxIdentityKey).(Identity)
	if !ok {
		return Identity{}
	}
	return id
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// RequireAuthは匿名を401で弾く
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c).User == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}
			return next(c)
		}
	}
}

// RequireRoleは指定roleをどれも持たないユーザーを403で弾く
// 匿名は401
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id.User == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}
			if !id.HasRole(roles...) {
				return c.JSON(http.StatusForbidden, errorJSON("Forbidden"))
			}
			return next(c)
		}
	}
}
