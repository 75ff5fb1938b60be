package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orrery-server/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *SettingsHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSettingsHandler(settings.NewService(settings.NewMemoryStore(), logger))
}

func TestGetSettings(t *testing.T) {
	h := newHandler()

	rec := httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got settings.Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, settings.Defaults(), got)
}

func TestUpdateSettings(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"speed", `{"speed": 3.5}`, http.StatusOK},
		{"scales", `{"sun_scale": 2, "planet_scale": 0.5}`, http.StatusOK},
		{"negative speed", `{"speed": -1}`, http.StatusBadRequest},
		{"unknown field", `{"warp": 9}`, http.StatusBadRequest},
		{"empty", `{}`, http.StatusBadRequest},
		{"malformed", `{"speed":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(tt.body))
			h.UpdateSettings(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateSettingsReturnsMergedValues(t *testing.T) {
	h := newHandler()

	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"planet_scale": 2}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got settings.Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, settings.Settings{Speed: 1, SunScale: 1, PlanetScale: 2}, got)
}

func TestSettingsMethodNotAllowed(t *testing.T) {
	h := newHandler()

	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"speed":1}`)))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest(http.MethodDelete, "/api/settings", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
