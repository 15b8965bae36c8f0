package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret        string        // access token署名シークレット
	JWTRefreshSecret string        // refresh token署名シークレット（accessと必ず別）
	AccessTokenTTL   time.Duration // access tokenの有効期限（デフォルト1h）
	RefreshTokenTTL  time.Duration // refresh tokenの有効期限（デフォルト7d）

	GoEnv string // development/production（Secure cookieと500メッセージを制御）
	FEURL string // フロントURL（CORSで使う）
}

// production判定
func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{
		Port:             getenv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		GoEnv:            getenv("GO_ENV", "development"),
		FEURL:            getenv("FE_URL", "http://localhost:3000"),
	}

	//必須チェック（シークレットが無ければ起動させない）
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	//accessとrefreshのシークレットが同じだとtokenの用途分離が壊れる
	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		return Config{}, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	accessTTL, err := parseTTL(getenv("JWT_EXPIRATION", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRATION: %w", err)
	}
	cfg.AccessTokenTTL = accessTTL

	refreshTTL, err := parseTTL(getenv("JWT_REFRESH_EXPIRATION", "7d"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_REFRESH_EXPIRATION: %w", err)
	}
	cfg.RefreshTokenTTL = refreshTTL

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// parseTTLは"1h"や"7d"を解釈する
// time.ParseDurationは"d"を知らないので日数だけ自前で処理する
func parseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
