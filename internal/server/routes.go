package server

import (
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers, l Limiters) {
	//認証系は厳しめのlimiter（IP+UAごと5req/15分）
	auth := e.Group("/auth", middleware.RateLimit(l.Auth))
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/verify", h.Auth.Verify)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)

	general := middleware.RateLimit(l.General)
	canEdit := middleware.RequireRole(model.RoleInstructor, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	//コース（読み取りは公開、書き込みはINSTRUCTOR/ADMIN）
	courses := e.Group("/courses", general)
	courses.GET("", h.Course.List)
	courses.GET("/:id", h.Course.Get)
	courses.POST("", h.Course.Create, canEdit)
	courses.PUT("/:id", h.Course.Update, canEdit)
	courses.DELETE("/:id", h.Course.Delete, canEdit)

	courses.GET("/:id/lessons", h.Lesson.List)
	courses.POST("/:id/lessons", h.Lesson.Create, canEdit)
	courses.POST("/:id/enroll", h.Enrollment.Enroll, middleware.RequireAuth())

	lessons := e.Group("/lessons", general)
	lessons.PUT("/:id", h.Lesson.Update, canEdit)
	lessons.DELETE("/:id", h.Lesson.Delete, canEdit)
	lessons.POST("/:id/concepts", h.Lesson.CreateConcept, canEdit)

	concepts := e.Group("/concepts", general)
	concepts.DELETE("/:id", h.Lesson.DeleteConcept, canEdit)

	me := e.Group("/me", general, middleware.RequireAuth())
	me.GET("/enrollments", h.Enrollment.ListMine)
	me.GET("/certificates", h.Enrollment.ListMyCertificates)

	e.POST("/certificates", h.Enrollment.IssueCertificate, general, adminOnly)

	//お問い合わせフォームはbot対策で最も厳しいlimiter
	e.POST("/contact", h.Contact.Submit, middleware.RateLimit(l.Strict))
	e.GET("/admin/contact", h.Contact.List, general, adminOnly)
}
