package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CourseHandler struct {
	uc *usecase.CourseUsecase
}

func NewCourseHandler(uc *usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

// GET /courses
// instructor/adminは未公開も見える
func (h *CourseHandler) List(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	includeUnpublished := id.HasRole(model.RoleInstructor, model.RoleAdmin)

	courses, err := h.uc.List(c.Request().Context(), includeUnpublished)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, courses)
}

// GET /courses/:id
func (h *CourseHandler) Get(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	id := middleware.IdentityFrom(c)
	includeUnpublished := id.HasRole(model.RoleInstructor, model.RoleAdmin)

	course, err := h.uc.Get(c.Request().Context(), courseID, includeUnpublished)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

// POST /courses（INSTRUCTOR/ADMIN）
func (h *CourseHandler) Create(c echo.Context) error {
	var req usecase.CourseInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	id := middleware.IdentityFrom(c)

	course, err := h.uc.Create(c.Request().Context(), id.User.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, course)
}

// PUT /courses/:id（INSTRUCTOR/ADMIN）
func (h *CourseHandler) Update(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.CourseInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	course, err := h.uc.Update(c.Request().Context(), courseID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

// DELETE /courses/:id（INSTRUCTOR/ADMIN）
func (h *CourseHandler) Delete(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), courseID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted"})
}
