package usecase

import (
	"app/internal/auth"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"context"
	"errors"
	"time"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 handleかパスワードが違う（どちらかは明かさない）
	ErrInvalidCredentials = errors.New("invalid credentials")
	//401 認証失敗の総称
	ErrUnauthorized = errors.New("unauthorized")
	//401 DB側のexpiresAt切れ（メッセージだけ区別する）
	ErrRefreshExpired = errors.New("refresh token expired")
	//404 forgot-passwordのemail不明
	ErrNotFound = errors.New("not found")
	//409 username重複
	ErrConflictUsername = errors.New("username already exists")
	//409 email重複
	ErrConflictEmail = errors.New("email already exists")
	//409 その他の重複
	ErrConflict = errors.New("conflict")
	//503 DBに繋がらない
	ErrUnavailable = errors.New("database not available")
	//500
	ErrInternal = errors.New("internal error")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, name, username, email, password string) error
	ValidateLogin(ctx context.Context, handle, password string) error
}

type SignupInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// handlerがCookieに詰めるために必要な値も一緒に返す
type LoginResult struct {
	Body             TokenResponse
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	tokens    repository.RefreshTokenRepository
	hasher    *auth.PasswordHasher
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	hasher *auth.PasswordHasher,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		validator: validator,
	}
}

// Signupはユーザー作成＋STUDENT role付与＋access token発行
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*TokenResponse, error) {
	if err := u.validator.ValidateSignup(ctx, in.Name, in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, ErrInternal
	}

	//roleはuserと同じトランザクションで作られる
	user := &model.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		Roles:        []model.UserRole{{Role: model.RoleStudent}},
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, mapPersistError(err)
	}

	token, err := u.signAccessToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	return &TokenResponse{Token: token}, nil
}

// Loginはhandle（usernameまたはemail）＋パスワードで認証する
// 見つからないのと不一致は同じErrInvalidCredentialsに潰す
func (u *AuthUsecase) Login(ctx context.Context, handle, password string) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, handle, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := u.users.FindByHandle(ctx, handle)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u.issueSession(ctx, user, "")
}

// Refreshはrefresh tokenを検証してaccess tokenを再発行し、refresh tokenをrotateする
// どこで失敗しても401に潰す（fail closed）。DB期限切れだけメッセージを分ける
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	//1) JWTとしての検証（refresh secret）
	claims, err := auth.Verify(refreshToken, u.cfg.JWTRefreshSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	//2) DBに記録があるか
	rec, err := u.tokens.FindByToken(ctx, refreshToken)
	if err != nil || rec == nil {
		return nil, ErrUnauthorized
	}

	//3) DB側expiresAtの独立チェック。切れていたら行を消して終了
	if rec.ExpiresAt.Before(time.Now()) {
		_ = u.tokens.DeleteByToken(ctx, refreshToken)
		return nil, ErrRefreshExpired
	}

	//4) ユーザーがまだ存在するか（roles込みで取り直す）
	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	//5) 新しいtokenを発行して旧tokenをrotate
	res, err := u.issueSession(ctx, user, refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return res, nil
}

// LogoutはDBのrefresh token行を消す
// 行が無くてもerrorにしない。削除の失敗は401に潰す
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrUnauthorized
	}
	if err := u.tokens.DeleteByToken(ctx, refreshToken); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// Verifyは「ログイン済みか」の明示チェック用
// middlewareと違って呼び出し元にclaimsとエラー文を返す
func (u *AuthUsecase) Verify(token string) (*auth.Claims, error) {
	return auth.Verify(token, u.cfg.JWTSecret)
}

// ForgotPasswordはemailの存在確認だけ行う
// TODO: リセットリンクのメール送信（メール基盤が決まったら実装する）
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return mapPersistError(err)
	}
	if user == nil {
		return ErrNotFound
	}
	return nil
}

// issueSessionはaccess＋refreshの発行とrefresh行の保存/rotateをまとめる
// oldRefreshが空ならlogin（新規作成）、あればrefresh（rotate）
func (u *AuthUsecase) issueSession(ctx context.Context, user *model.User, oldRefresh string) (*LoginResult, error) {
	accessToken, err := u.signAccessToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	refreshToken, err := auth.Sign(u.claimsFor(user), u.cfg.JWTRefreshSecret, u.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, ErrInternal
	}

	expiresAt := time.Now().Add(u.cfg.RefreshTokenTTL)
	rec := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}

	if oldRefresh == "" {
		err = u.tokens.Create(ctx, rec)
	} else {
		err = u.tokens.Rotate(ctx, oldRefresh, rec)
	}
	if err != nil {
		return nil, mapPersistError(err)
	}

	return &LoginResult{
		Body:             TokenResponse{Token: accessToken},
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

func (u *AuthUsecase) signAccessToken(user *model.User) (string, error) {
	return auth.Sign(u.claimsFor(user), u.cfg.JWTSecret, u.cfg.AccessTokenTTL)
}

func (u *AuthUsecase) claimsFor(user *model.User) auth.Claims {
	return auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.RoleNames(),
	}
}

// mapPersistErrorはrepositoryのerrorをusecaseのerrorに変換する
func mapPersistError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrConflictUsername
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrConflictEmail
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repository.ErrUnavailable):
		return ErrUnavailable
	case errors.Is(err, repository.ErrRefreshTokenNotFound):
		return ErrUnauthorized
	default:
		return ErrInternal
	}
}
