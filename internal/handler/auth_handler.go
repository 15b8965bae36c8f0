package handler

import (
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration // refresh cookieの有効期限
	cookieSecure bool          // productionのみSecure
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		refreshTTL:   cfg.RefreshTokenTTL,
		cookieSecure: cfg.IsProduction(),
	}
}

// /auth/signup のリクエストボディ
type signupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth/login のリクエストボディ
// handleはusernameでもemailでも良い
type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// SignupはPOST /auth/signupのハンドラ
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	out, err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// LoginはPOST /auth/loginのハンドラ
// 成功時はrefresh tokenをHttpOnly cookieで返す
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrInvalidCredentials)
	}

	out, err := h.uc.Login(c.Request().Context(), req.Handle, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshToken)

	return c.JSON(http.StatusOK, out.Body)
}

// RefreshはPOST /auth/refreshのハンドラ
// cookieのrefresh tokenを検証してrotateする
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(c, usecase.ErrUnauthorized)
	}

	out, err := h.uc.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshToken)

	return c.JSON(http.StatusOK, out.Body)
}

// LogoutはPOST /auth/logoutのハンドラ
// cookieが無いのも削除失敗も同じ401にする（区別させない）
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(c, usecase.ErrUnauthorized)
	}

	if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
		return respondError(c, err)
	}

	h.clearRefreshCookie(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// VerifyはGET /auth/verifyのハンドラ
// クライアントが明示的に「ログイン済みか」を確認する用
// 検証失敗はライブラリのエラー文をそのまま返す
func (h *AuthHandler) Verify(c echo.Context) error {
	authz := c.Request().Header.Get("Authorization")
	token, ok := bearerToken(authz)
	if !ok {
		return respondError(c, usecase.ErrUnauthorized)
	}

	claims, err := h.uc.Verify(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"user": claims})
}

// ForgotPasswordはPOST /auth/forgot-passwordのハンドラ
// 送信処理はstub。emailが存在すれば200を返す
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Email sent"})
}

// refresh tokenをCookieにセット
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// refresh cookieを消す
// MaxAge負値でGoは"Max-Age=0"を送る
func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// bearerTokenは"Bearer <token>"のtokenを抜く
func bearerToken(authz string) (string, bool) {
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
