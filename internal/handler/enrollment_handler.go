package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type EnrollmentHandler struct {
	enrollments *usecase.EnrollmentUsecase
	certs       *usecase.CertificateUsecase
}

func NewEnrollmentHandler(
	enrollments *usecase.EnrollmentUsecase,
	certs *usecase.CertificateUsecase,
) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, certs: certs}
}

// POST /courses/:id/enroll（要ログイン）
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	id := middleware.IdentityFrom(c)

	enrollment, err := h.enrollments.Enroll(c.Request().Context(), id.User.UserID, courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// GET /me/enrollments（要ログイン）
func (h *EnrollmentHandler) ListMine(c echo.Context) error {
	id := middleware.IdentityFrom(c)

	enrollments, err := h.enrollments.ListMine(c.Request().Context(), id.User.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, enrollments)
}

// GET /me/certificates（要ログイン）
func (h *EnrollmentHandler) ListMyCertificates(c echo.Context) error {
	id := middleware.IdentityFrom(c)

	certs, err := h.certs.ListMine(c.Request().Context(), id.User.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, certs)
}

type issueCertificateRequest struct {
	UserID   int64 `json:"userId"`
	CourseID int64 `json:"courseId"`
}

// POST /certificates（ADMIN）
func (h *EnrollmentHandler) IssueCertificate(c echo.Context) error {
	var req issueCertificateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	cert, err := h.certs.Issue(c.Request().Context(), req.UserID, req.CourseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, cert)
}
