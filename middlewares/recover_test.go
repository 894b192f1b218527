package middlewares_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailscheduler/middlewares"
)

func panicking(v any) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(v)
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("recovers from panic and passes PanicError to handler", func(t *testing.T) {
		t.Parallel()

		var got error
		h := middlewares.Recover(middlewares.WithRecoverErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusTeapot)
		}))(panicking("test panic"))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("default handler writes 500", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		middlewares.Recover()(panicking(errors.New("boom"))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("respects DisablePrintStack option", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var got error
		h := middlewares.Recover(
			middlewares.WithRecoverDisablePrintStack(),
			middlewares.WithRecoverLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
			middlewares.WithRecoverErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
				got = err
			}),
		)(panicking("test panic"))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
		require.Contains(t, buf.String(), "panic recovered")
		require.NotContains(t, buf.String(), `"stack"`)
	})

	t.Run("logs stack trace", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := middlewares.Recover(
			middlewares.WithRecoverStackSize(256),
			middlewares.WithRecoverLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		)(panicking("test panic"))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Contains(t, buf.String(), `"stack"`)
	})

	t.Run("re-raises ErrAbortHandler", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover()(panicking(http.ErrAbortHandler))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
