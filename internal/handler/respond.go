package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// respondErrorはusecaseのerrorをHTTPレスポンスに変換する
// ここ以外でstatus codeを決めない
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation error"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
	case errors.Is(err, usecase.ErrRefreshExpired):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Refresh token expired"})
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, usecase.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, usecase.ErrConflictUsername):
		return c.JSON(http.StatusConflict, errorResponse{Error: "Username already exists"})
	case errors.Is(err, usecase.ErrConflictEmail):
		return c.JSON(http.StatusConflict, errorResponse{Error: "Email already exists"})
	case errors.Is(err, usecase.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "Conflict"})
	case errors.Is(err, usecase.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "Database not available"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// path paramのidをint64にする
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.ErrValidation
	}
	return id, nil
}
