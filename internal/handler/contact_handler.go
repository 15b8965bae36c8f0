package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// POST /contact（公開、strictなrate limit配下）
func (h *ContactHandler) Submit(c echo.Context) error {
	var req usecase.ContactInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	msg, err := h.uc.Submit(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// GET /admin/contact（ADMIN）
func (h *ContactHandler) List(c echo.Context) error {
	msgs, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}
