package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LessonHandler struct {
	uc *usecase.CourseUsecase
}

func NewLessonHandler(uc *usecase.CourseUsecase) *LessonHandler {
	return &LessonHandler{uc: uc}
}

// GET /courses/:id/lessons
func (h *LessonHandler) List(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	lessons, err := h.uc.ListLessons(c.Request().Context(), courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lessons)
}

// POST /courses/:id/lessons（INSTRUCTOR/ADMIN）
func (h *LessonHandler) Create(c echo.Context) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.LessonInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	lesson, err := h.uc.AddLesson(c.Request().Context(), courseID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, lesson)
}

// PUT /lessons/:id（INSTRUCTOR/ADMIN）
func (h *LessonHandler) Update(c echo.Context) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.LessonInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	lesson, err := h.uc.UpdateLesson(c.Request().Context(), lessonID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lesson)
}

// DELETE /lessons/:id（INSTRUCTOR/ADMIN）
func (h *LessonHandler) Delete(c echo.Context) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.uc.DeleteLesson(c.Request().Context(), lessonID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Lesson deleted"})
}

// POST /lessons/:id/concepts（INSTRUCTOR/ADMIN）
func (h *LessonHandler) CreateConcept(c echo.Context) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.ConceptInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrValidation)
	}

	concept, err := h.uc.AddConcept(c.Request().Context(), lessonID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, concept)
}

// DELETE /concepts/:id（INSTRUCTOR/ADMIN）
func (h *LessonHandler) DeleteConcept(c echo.Context) error {
	conceptID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.uc.DeleteConcept(c.Request().Context(), conceptID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Concept deleted"})
}
