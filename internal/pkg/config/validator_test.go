package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	valid := []struct {
		name     string
		schedule string
	}{
		{"nightly stats run", "0 2 * * *"},
		{"every 6 hours", "0 */6 * * *"},
		{"weekdays morning", "30 9 * * 1-5"},
		{"every minute", "* * * * *"},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateCronSchedule(tt.schedule))
		})
	}

	invalid := []struct {
		name     string
		schedule string
	}{
		{"empty", ""},
		{"too few fields", "0 0"},
		{"six fields", "0 0 * * * *"},
		{"minute out of range", "60 0 * * *"},
		{"random text", "at two in the morning"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid cron schedule")
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Asia/Amman"))

	for _, tz := range []string{"", "Mars/Olympus", "+03:00"} {
		err := ValidateTimezone(tz)
		assert.Error(t, err, "timezone %q should be rejected", tz)
	}
}

func TestValidateDuration(t *testing.T) {
	min, max := 10*time.Second, 30*time.Minute

	assert.NoError(t, ValidateDuration(5*time.Minute, min, max))
	assert.NoError(t, ValidateDuration(min, min, max))
	assert.NoError(t, ValidateDuration(max, min, max))

	assert.Error(t, ValidateDuration(time.Second, min, max))
	assert.Error(t, ValidateDuration(time.Hour, min, max))
	assert.Error(t, ValidateDuration(time.Minute, max, min), "inverted range must fail")
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(8081, 1024, 65535))
	assert.NoError(t, ValidateIntRange(1024, 1024, 65535))

	assert.Error(t, ValidateIntRange(80, 1024, 65535))
	assert.Error(t, ValidateIntRange(70000, 1024, 65535))
	assert.Error(t, ValidateIntRange(5, 10, 1), "inverted range must fail")
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Millisecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
