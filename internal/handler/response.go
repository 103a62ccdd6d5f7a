package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/store"
)

// All endpoints share one response envelope: success plus message, with
// optional data and pagination fields on success, and a message that may
// be a string or an array of field errors on failure.

func respondOK(c echo.Context, message string, data any) error {
	body := echo.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(http.StatusOK, body)
}

func respondCreated(c echo.Context, message string, data any) error {
	body := echo.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(http.StatusCreated, body)
}

func respondPage(c echo.Context, message string, data any, p store.PageParams, total int64) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    message,
		"total":      total,
		"page":       p.Page,
		"totalPages": p.TotalPages(total),
		"perPage":    p.Limit,
		"data":       data,
	})
}

// respondValidation returns field-level validation messages before any
// store mutation has happened.
func respondValidation(c echo.Context, messages []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": messages,
	})
}

// respondError maps a store error onto the failure envelope: not-found to
// 404, conflict to 400, anything else to a 500 with a generic message.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": err.Error()})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	default:
		log.Error("Unhandled store error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}
}

// parseID parses a numeric path parameter.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// entityRef is the compact parent summary embedded in list and detail
// responses.
type entityRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
