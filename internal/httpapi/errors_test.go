package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailscheduler/middlewares"
	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

func TestHTTPError_Constructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	tests := []struct {
		name string
		err  *HTTPError
		code int
		ec   string
	}{
		{name: "bad request", err: ErrBadRequest("bad", WithError(cause)), code: http.StatusBadRequest, ec: CodeBadRequest},
		{name: "unprocessable", err: ErrUnprocessable("invalid", WithError(cause)), code: http.StatusUnprocessableEntity, ec: CodeValidation},
		{name: "internal", err: ErrInternal("oops", WithError(cause)), code: http.StatusInternalServerError, ec: CodeInternal},
		{name: "code override", err: ErrInternal("oops", WithErrorCode("custom"), WithError(cause)), code: http.StatusInternalServerError, ec: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.code, tt.err.StatusCode())
			assert.Equal(t, tt.ec, tt.err.ErrorCode)
			assert.ErrorIs(t, tt.err, cause)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	he := ErrBadRequest("bad", WithRequestID("req-1"))
	wrapped := fmt.Errorf("decode: %w", he)

	require.True(t, IsHTTPError(wrapped))
	got, ok := AsHTTPError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "req-1", got.RequestID)

	_, ok = AsHTTPError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsHTTPError(nil))
}

func TestHandler_ToHTTPError(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil)
	ve := validator.ValidationErrors{{Field: "email", Message: "is required"}}

	tests := []struct {
		name string
		err  error
		code int
		ec   string
	}{
		{name: "validation", err: ve, code: http.StatusUnprocessableEntity, ec: CodeValidation},
		{name: "panic", err: &middlewares.PanicError{Value: "x"}, code: http.StatusInternalServerError, ec: CodeInternal},
		{name: "timeout", err: &middlewares.TimeoutError{}, code: http.StatusServiceUnavailable, ec: CodeTimeout},
		{name: "unknown", err: errors.New("x"), code: http.StatusInternalServerError, ec: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			he := h.toHTTPError(tt.err)
			assert.Equal(t, tt.code, he.Code)
			assert.Equal(t, tt.ec, he.ErrorCode)
		})
	}

	assert.Equal(t, ve, h.toHTTPError(ve).Fields)
}
