package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailscheduler/internal/scheduling"
	"github.com/dmitrymomot/mailscheduler/middlewares"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

// DefaultMaxBodyBytes caps the request body of POST /schedule-email.
const DefaultMaxBodyBytes int64 = 1 << 20

// Scheduler accepts schedule requests. *scheduling.Service implements it.
type Scheduler interface {
	Schedule(ctx context.Context, req scheduling.ScheduleRequest) (scheduling.Receipt, error)
}

// Handler serves the email intake endpoint.
type Handler struct {
	scheduler    Scheduler
	logger       *slog.Logger
	maxBodyBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxBodyBytes caps the accepted request body size.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler creates a Handler backed by s.
func NewHandler(s Scheduler, opts ...HandlerOption) *Handler {
	h := &Handler{
		scheduler:    s,
		logger:       logger.NewNope(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ScheduleEmail handles POST /schedule-email.
// Unknown JSON fields are ignored.
func (h *Handler) ScheduleEmail(w http.ResponseWriter, r *http.Request) {
	var req scheduling.ScheduleRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	receipt, err := h.scheduler.Schedule(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ScheduleResponse{
		Success: true,
		JobID:   receipt.JobID,
		FireAt:  receipt.FireAt.UTC(),
		Message: ScheduledMessage,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large",
				WithErrorCode(CodeBadRequest), WithError(err))
		case errors.Is(err, io.EOF):
			return ErrBadRequest("request body is empty", WithError(err))
		default:
			return ErrBadRequest("malformed JSON body", WithError(err))
		}
	}
	return nil
}

// writeError maps err to an HTTPError and writes it.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	he := h.toHTTPError(err)
	he.RequestID = middlewares.GetRequestID(r.Context())

	if he.Code >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.Int("status", he.Code),
			slog.String("error", err.Error()))
	} else {
		h.logger.InfoContext(r.Context(), "request rejected",
			slog.Int("status", he.Code),
			slog.String("error", err.Error()))
	}

	writeHTTPError(w, he)
}

func (h *Handler) toHTTPError(err error) *HTTPError {
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrUnprocessable(ve.Error(), WithFields(ve), WithError(err))
	}
	if errors.Is(err, scheduling.ErrScheduleFailed) {
		return ErrInternal("failed to schedule email", WithErrorCode(CodeScheduleFailed), WithError(err))
	}
	if pe, ok := middlewares.AsPanicError(err); ok {
		return ErrInternal("internal server error", WithError(pe))
	}
	if middlewares.IsTimeoutError(err) {
		return NewHTTPError(http.StatusServiceUnavailable, "request timed out", WithErrorCode(CodeTimeout), WithError(err))
	}
	return ErrInternal("internal server error", WithError(err))
}
