package main

import (
	"log"

	"app/internal/auth"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/ratelimit"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envはあれば読む（本番は環境変数そのまま）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.RefreshToken{},
		&model.Course{},
		&model.Lesson{},
		&model.Concept{},
		&model.Enrollment{},
		&model.Certificate{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	courseRepo := infraRepo.NewCourseGormRepository(gormDB)
	lessonRepo := infraRepo.NewLessonGormRepository(gormDB)
	conceptRepo := infraRepo.NewConceptGormRepository(gormDB)
	enrollmentRepo := infraRepo.NewEnrollmentGormRepository(gormDB)
	certRepo := infraRepo.NewCertificateGormRepository(gormDB)
	contactRepo := infraRepo.NewContactMessageGormRepository(gormDB)

	//Usecase生成
	hasher := auth.NewPasswordHasher()
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, hasher, validator.NewAuthValidator())
	courseUC := usecase.NewCourseUsecase(courseRepo, lessonRepo, conceptRepo)
	enrollmentUC := usecase.NewEnrollmentUsecase(enrollmentRepo, courseRepo)
	certUC := usecase.NewCertificateUsecase(certRepo)
	contactUC := usecase.NewContactUsecase(contactRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC, cfg),
		Course:     handler.NewCourseHandler(courseUC),
		Lesson:     handler.NewLessonHandler(courseUC),
		Enrollment: handler.NewEnrollmentHandler(enrollmentUC, certUC),
		Contact:    handler.NewContactHandler(contactUC),
	}

	//Rate limiter（プロセス終了時に掃除goroutineも止める）
	limiters := server.Limiters{
		General: ratelimit.NewGeneral(),
		Auth:    ratelimit.NewAuth(),
		Strict:  ratelimit.NewStrict(),
	}
	defer limiters.General.Stop()
	defer limiters.Auth.Stop()
	defer limiters.Strict.Stop()

	//Server起動
	e := server.New(cfg, handlers, limiters)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
