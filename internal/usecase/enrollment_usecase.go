package usecase

import (
	"app/internal/domain/model"
	"app/internal/repository"
	"context"

	"github.com/google/uuid"
)

type EnrollmentUsecase struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
}

func NewEnrollmentUsecase(
	enrollments repository.EnrollmentRepository,
	courses repository.CourseRepository,
) *EnrollmentUsecase {
	return &EnrollmentUsecase{enrollments: enrollments, courses: courses}
}

// Enrollは公開済みコースへの受講登録
// 二重登録は409
func (u *EnrollmentUsecase) Enroll(ctx context.Context, userID, courseID int64) (*model.Enrollment, error) {
	course, err := u.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if course == nil || !course.Published {
		return nil, ErrNotFound
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	if err := u.enrollments.Create(ctx, enrollment); err != nil {
		return nil, mapPersistError(err)
	}
	return enrollment, nil
}

func (u *EnrollmentUsecase) ListMine(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	enrollments, err := u.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	return enrollments, nil
}

type CertificateUsecase struct {
	certs repository.CertificateRepository
}

func NewCertificateUsecase(certs repository.CertificateRepository) *CertificateUsecase {
	return &CertificateUsecase{certs: certs}
}

// Issueは修了証を発行する（admin操作）
// serialはUUIDで採番する
func (u *CertificateUsecase) Issue(ctx context.Context, userID, courseID int64) (*model.Certificate, error) {
	if userID <= 0 || courseID <= 0 {
		return nil, ErrValidation
	}

	cert := &model.Certificate{
		Serial:   uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
	}

	if err := u.certs.Create(ctx, cert); err != nil {
		return nil, mapPersistError(err)
	}
	return cert, nil
}

func (u *CertificateUsecase) ListMine(ctx context.Context, userID int64) ([]model.Certificate, error) {
	certs, err := u.certs.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	return certs, nil
}
