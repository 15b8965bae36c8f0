package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type enrollmentGormRepository struct {
	db *gorm.DB
}

func NewEnrollmentGormRepository(db *gorm.DB) repo.EnrollmentRepository {
	return &enrollmentGormRepository{db: db}
}

func (r *enrollmentGormRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *enrollmentGormRepository) ListByUser(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error

	if err != nil {
		return nil, mapWriteError(err)
	}
	return enrollments, nil
}

type certificateGormRepository struct {
	db *gorm.DB
}

func NewCertificateGormRepository(db *gorm.DB) repo.CertificateRepository {
	return &certificateGormRepository{db: db}
}

func (r *certificateGormRepository) Create(ctx context.Context, cert *model.Certificate) error {
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *certificateGormRepository) ListByUser(ctx context.Context, userID int64) ([]model.Certificate, error) {
	var certs []model.Certificate

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error

	if err != nil {
		return nil, mapWriteError(err)
	}
	return certs, nil
}

type contactMessageGormRepository struct {
	db *gorm.DB
}

func NewContactMessageGormRepository(db *gorm.DB) repo.ContactMessageRepository {
	return &contactMessageGormRepository{db: db}
}

func (r *contactMessageGormRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *contactMessageGormRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&msgs).Error

	if err != nil {
		return nil, mapWriteError(err)
	}
	return msgs, nil
}
