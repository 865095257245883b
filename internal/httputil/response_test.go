package httputil

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/meshpay/meshpay-go/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "invalid input maps to 422",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "secret too short"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
		{
			name:           "unauthorized maps to 401",
			err:            apperrors.Wrap(apperrors.ErrUnauthorized, "signature timestamp outside tolerance"),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name:           "unavailable maps to 503",
			err:            apperrors.Wrap(apperrors.ErrUnavailable, "credential unavailable"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "unavailable",
		},
		{
			name:           "unknown error maps to 500",
			err:            apperrors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedError)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, apperrors.New("unreadable body"), slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
	assert.Contains(t, w.Body.String(), "unreadable body")
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, apperrors.New("secret must be at least 32 characters"), slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
