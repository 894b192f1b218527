package scheduling

import (
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

// Request field names, as they appear in validation errors.
const (
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldBody     = "body"
	FieldDateTime = "dateTime"
	FieldTimeZone = "timeZone"
	FieldFormat   = "format"
)

// maxSubjectLen is the RFC 5322 line length limit.
const maxSubjectLen = 998

// dateTimeLayouts are the accepted local date-time forms. Fractional seconds
// are accepted after the seconds field.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ScheduleRequest asks for one email to be sent at a local date-time in a time zone.
type ScheduleRequest struct {
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	DateTime string `json:"dateTime"` // local, no offset: 2025-01-01T10:00:00
	TimeZone string `json:"timeZone"` // IANA name: America/New_York
	Format   string `json:"format,omitempty"`
}

// Payload is what the job carries until it fires.
type Payload struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Format  string `json:"format,omitempty"`
}

// missing returns the names of empty required fields.
func (p Payload) missing() []string {
	var fields []string
	if p.Email == "" {
		fields = append(fields, FieldEmail)
	}
	if p.Subject == "" {
		fields = append(fields, FieldSubject)
	}
	if p.Body == "" {
		fields = append(fields, FieldBody)
	}
	return fields
}

// ScheduledJob is a validated request: the payload plus the absolute fire instant.
type ScheduledJob struct {
	Payload     Payload
	FireInstant time.Time // UTC
}

// Validate checks req and resolves its fire instant. It has no side effects.
// On failure the error is validator.ValidationErrors, which unwraps to ErrValidation.
func Validate(req ScheduleRequest) (ScheduledJob, error) {
	err := validator.Apply(
		validator.RequiredString(FieldEmail, req.Email),
		validator.ValidEmail(FieldEmail, req.Email),
		validator.RequiredString(FieldSubject, req.Subject),
		validator.MaxLenString(FieldSubject, req.Subject, maxSubjectLen),
		validator.RequiredString(FieldBody, req.Body),
		validator.RequiredString(FieldDateTime, req.DateTime),
		validator.ValidDateTime(FieldDateTime, req.DateTime, dateTimeLayouts...),
		validator.RequiredString(FieldTimeZone, req.TimeZone),
		validator.ValidTimeZone(FieldTimeZone, req.TimeZone),
		validator.OneOf(FieldFormat, req.Format, string(mailer.FormatHTML), string(mailer.FormatMarkdown)),
	)
	if err != nil {
		return ScheduledJob{}, err
	}

	// Both parse calls succeed: the rules above checked the same inputs.
	loc, _ := time.LoadLocation(req.TimeZone)
	wall, _ := parseLocal(req.DateTime)

	return ScheduledJob{
		Payload: Payload{
			Email:   req.Email,
			Subject: req.Subject,
			Body:    req.Body,
			Format:  req.Format,
		},
		FireInstant: ResolveInstant(wall, loc),
	}, nil
}

// parseLocal reads a local date-time; the returned wall clock is in UTC.
func parseLocal(s string) (time.Time, error) {
	var err error
	for _, layout := range dateTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ResolveInstant interprets the wall clock of wall (its location is ignored)
// in loc and returns the instant in UTC.
//
// Wall times that occur twice (clocks set back) resolve to the earlier instant.
// Wall times skipped by a forward transition move forward by the length of the gap,
// so 02:30 on a spring-forward night in New York becomes 03:30 EDT.
func ResolveInstant(wall time.Time, loc *time.Location) time.Time {
	naive := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.UTC)

	_, before := naive.Add(-36 * time.Hour).In(loc).Zone()
	_, after := naive.Add(36 * time.Hour).In(loc).Zone()

	var found []time.Time
	for _, offset := range []int{before, after} {
		candidate := naive.Add(-time.Duration(offset) * time.Second)
		if sameWall(candidate.In(loc), naive) {
			found = append(found, candidate)
		}
		if before == after {
			break
		}
	}

	switch len(found) {
	case 0:
		// Gap: keep the offset in force before the transition.
		return naive.Add(-time.Duration(before) * time.Second).UTC()
	case 1:
		return found[0].UTC()
	default:
		if found[1].Before(found[0]) {
			return found[1].UTC()
		}
		return found[0].UTC()
	}
}

func sameWall(t, naive time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := naive.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == naive.Hour() && t.Minute() == naive.Minute() &&
		t.Second() == naive.Second() && t.Nanosecond() == naive.Nanosecond()
}
