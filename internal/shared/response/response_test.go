package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"orrery-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWritesMappedStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		err  error
		code int
	}{
		{errors.Validation("speed out of range"), http.StatusBadRequest},
		{errors.NotFoundf("body %q not found", "Vulcan"), http.StatusNotFound},
		{errors.Unauthorized("control token required"), http.StatusUnauthorized},
		{errors.MethodNotAllowed(http.MethodDelete), http.StatusMethodNotAllowed},
		{errors.RateLimited("10.0.0.1"), http.StatusTooManyRequests},
		{errors.WrapExternal("redis", io.EOF), http.StatusServiceUnavailable},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)

		Error(rec, req, logger, tt.err)

		assert.Equal(t, tt.code, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tt.code, body.Code)
		assert.Equal(t, tt.err.Error(), body.Message)
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, map[string]float64{"speed": 2})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"speed":2}`, rec.Body.String())
}
