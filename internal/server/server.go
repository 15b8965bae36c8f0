package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/ratelimit"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlersはroute登録に必要なhandler一式
type Handlers struct {
	Auth       *handler.AuthHandler
	Course     *handler.CourseHandler
	Lesson     *handler.LessonHandler
	Enrollment *handler.EnrollmentHandler
	Contact    *handler.ContactHandler
}

// Limitersはエンドポイント種別ごとのrate limiter
// インスタンスはmainが作ってStopも面倒を見る
type Limiters struct {
	General *ratelimit.Limiter
	Auth    *ratelimit.Limiter
	Strict  *ratelimit.Limiter
}

// Newはechoを組み立てる（起動はしない）
func New(cfg config.Config, h Handlers, l Limiters) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = newHTTPErrorHandler(cfg)

	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
	}))

	//全routeで一度だけidentityを導出する（失敗してもrejectしない）
	e.Use(middleware.DeriveIdentity(cfg.JWTSecret))

	RegisterRoutes(e, h, l)

	return e
}
