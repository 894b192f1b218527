package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

// ScheduledMessage is the acknowledgment text of a successful schedule.
const ScheduledMessage = "Email Scheduled Successfully!"

// ScheduleResponse is the body of a successful POST /schedule-email.
type ScheduleResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"job_id"`
	FireAt  time.Time `json:"fire_at"`
	Message string    `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Success   bool                       `json:"success"`
	Error     string                     `json:"error"`
	Code      string                     `json:"code,omitempty"`
	RequestID string                     `json:"request_id,omitempty"`
	Fields    validator.ValidationErrors `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, he *HTTPError) {
	writeJSON(w, he.Code, ErrorResponse{
		Error:     he.Message,
		Code:      he.ErrorCode,
		RequestID: he.RequestID,
		Fields:    he.Fields,
	})
}
