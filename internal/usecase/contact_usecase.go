package usecase

import (
	"app/internal/domain/model"
	"app/internal/repository"
	"context"
	"strings"
)

type ContactUsecase struct {
	messages repository.ContactMessageRepository
}

func NewContactUsecase(messages repository.ContactMessageRepository) *ContactUsecase {
	return &ContactUsecase{messages: messages}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Message) == "" {
		return nil, ErrValidation
	}

	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}

	if err := u.messages.Create(ctx, msg); err != nil {
		return nil, mapPersistError(err)
	}
	return msg, nil
}

func (u *ContactUsecase) List(ctx context.Context) ([]model.ContactMessage, error) {
	msgs, err := u.messages.List(ctx)
	if err != nil {
		return nil, mapPersistError(err)
	}
	return msgs, nil
}
