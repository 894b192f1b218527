package validator

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule is a single validation check bound to a field.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates rules in order and returns ValidationErrors, or nil when all pass.
// After the first failure for a field, remaining rules for that field are skipped.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	failed := make(map[string]struct{})

	for _, r := range rules {
		if _, skip := failed[r.Error.Field]; skip {
			continue
		}
		if r.Check == nil || r.Check() {
			continue
		}
		failed[r.Error.Field] = struct{}{}
		errs = append(errs, r.Error)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MaxLenString fails when value has more than limit runes.
func MaxLenString(field, value string, limit int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= limit },
		Error: ValidationError{
			Field:             field,
			Message:           "is too long",
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": limit},
		},
	}
}

// ValidEmail fails unless value is a bare RFC 5322 address (no display name).
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool { return isEmail(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidTimeZone fails unless value names an IANA time zone known to the runtime.
func ValidTimeZone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.LoadLocation(value)
			return err == nil && value != "" && value != "Local"
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid IANA time zone",
			TranslationKey:    "validation.time_zone",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidDateTime fails unless value parses with at least one of layouts.
func ValidDateTime(field, value string, layouts ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, layout := range layouts {
				if _, err := time.Parse(layout, value); err == nil {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a local date-time like 2006-01-02T15:04:05",
			TranslationKey:    "validation.date_time",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// OneOf fails unless value equals one of allowed. Empty value passes; pair with RequiredString if needed.
func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be one of: " + strings.Join(allowed, ", "),
			TranslationKey:    "validation.one_of",
			TranslationValues: map[string]any{"field": field, "values": allowed},
		},
	}
}

func isEmail(value string) bool {
	if value == "" || strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndexByte(addr.Address, '@')
	return at > 0 && at < len(addr.Address)-1
}
