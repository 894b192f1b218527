package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

func TestApply_AllPass(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.RequiredString("email", "a@b.com"),
		validator.ValidEmail("email", "a@b.com"),
		validator.ValidTimeZone("timeZone", "America/New_York"),
		validator.ValidDateTime("dateTime", "2025-01-01T10:00:00", "2006-01-02T15:04:05"),
	)
	assert.NoError(t, err)
}

func TestApply_ShortCircuitsPerField(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.RequiredString("email", ""),
		validator.ValidEmail("email", ""),
		validator.RequiredString("subject", ""),
	)
	require.Error(t, err)
	require.True(t, validator.IsValidationError(err))
	assert.ErrorIs(t, err, validator.ErrValidation)

	ve := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"email", "subject"}, ve.Fields())
	assert.Equal(t, "validation.required", ve[0].TranslationKey)
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"a@b.com", true},
		{"first.last+tag@example.co.uk", true},
		{"not-an-email", false},
		{"", false},
		{"@example.com", false},
		{"user@", false},
		{"John <john@example.com>", false},
		{"john @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidEmail("email", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, validator.ExtractValidationErrors(err).Has("email"))
			}
		})
	}
}

func TestValidTimeZone(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.ValidTimeZone("tz", "UTC")))
	assert.NoError(t, validator.Apply(validator.ValidTimeZone("tz", "Europe/Berlin")))
	assert.Error(t, validator.Apply(validator.ValidTimeZone("tz", "")))
	assert.Error(t, validator.Apply(validator.ValidTimeZone("tz", "Local")))
	assert.Error(t, validator.Apply(validator.ValidTimeZone("tz", "Mars/Olympus_Mons")))
}

func TestValidDateTime(t *testing.T) {
	t.Parallel()

	layouts := []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

	assert.NoError(t, validator.Apply(validator.ValidDateTime("dt", "2025-01-01T10:00:00", layouts...)))
	assert.NoError(t, validator.Apply(validator.ValidDateTime("dt", "2025-01-01T10:00", layouts...)))
	assert.Error(t, validator.Apply(validator.ValidDateTime("dt", "2025-01-01", layouts...)))
	assert.Error(t, validator.Apply(validator.ValidDateTime("dt", "tomorrow", layouts...)))
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.OneOf("format", "", "html", "markdown")))
	assert.NoError(t, validator.Apply(validator.OneOf("format", "markdown", "html", "markdown")))

	err := validator.Apply(validator.OneOf("format", "rtf", "html", "markdown"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format: must be one of: html, markdown")
}

func TestExtractValidationErrors_NotValidation(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.False(t, validator.IsValidationError(errors.New("boom")))
}
