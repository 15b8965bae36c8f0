package repository

import (
	"app/internal/domain/model"
	"context"
)

type EnrollmentRepository interface {
	//同じuser×courseの二重登録はErrDuplicate
	Create(ctx context.Context, enrollment *model.Enrollment) error
	ListByUser(ctx context.Context, userID int64) ([]model.Enrollment, error)
}

type CertificateRepository interface {
	Create(ctx context.Context, cert *model.Certificate) error
	ListByUser(ctx context.Context, userID int64) ([]model.Certificate, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]model.ContactMessage, error)
}
