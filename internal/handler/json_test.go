package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-dev/roster-manager/backend/internal/config"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Roster.TimeConvention = "07:00"

	h, err := NewHandler(cfg, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessResponse(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	h.successResponse(rec, req, "todo bien", map[string]int{"n": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "todo bien", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestErrorResponse(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)

	h.errorResponse(rec, req, "algo salió mal")

	// los errores de negocio responden 200 con success=false
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "algo salió mal", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestBadRequestTranslatesValidationErrors(t *testing.T) {
	h := testHandler(t)

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	err := h.validate.Struct(req)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	h.badRequest(rec, httptest.NewRequest(http.MethodPost, "/x", nil), err)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	// el mensaje sale traducido al español, no con el texto técnico
	assert.Contains(t, resp.Message, "Name")
	assert.NotContains(t, resp.Message, "validation")
}

func TestDefaultTemplatesEndpoint(t *testing.T) {
	h := testHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedules/default-templates", nil)
	h.GetDefaultTemplates(rec, req)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	templates, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, templates, 21)
}
