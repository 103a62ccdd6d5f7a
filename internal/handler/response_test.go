package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalog-service/internal/store"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get category: %w", store.ErrNotFound), http.StatusNotFound},
		{"conflict", store.ErrConflict, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, respondError(c, zap.NewNop(), tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, respondError(c, zap.NewNop(), errors.New("dial tcp 10.0.0.5:5432: i/o timeout")))

	body := decodeBody(t, rec)
	assert.Equal(t, "Something went wrong. Please try again.", body["message"])
}

func TestRespondValidation(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, respondValidation(c, []string{"Name is required", "Price must be positive"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Len(t, body["message"], 2)
}

func TestRespondPageEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	p := store.NewPageParams("3", "10", "")
	require.NoError(t, respondPage(c, "ok", []string{}, p, 25))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(10), body["perPage"])
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := parseID(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}
