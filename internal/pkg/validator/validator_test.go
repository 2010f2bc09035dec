package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.True(t, IsValidUUID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("6ba7b8109dad11d180b400c04fd430c8"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-03")
	assert.True(t, ok)
	_, ok = IsValidDate("03/03/2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, clock := range valid {
		assert.True(t, IsValidClock(clock), clock)
	}
	invalid := []string{"24:00", "9:30", "09:60", "0930", ""}
	for _, clock := range invalid {
		assert.False(t, IsValidClock(clock), clock)
	}
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("annual", []string{"annual", "sick"}))
	assert.False(t, IsInSlice("unpaid", []string{"annual", "sick"}))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "is required"},
		{Field: "end_date", Message: "must not be before start_date"},
	}
	assert.Equal(t, "start_date: is required; end_date: must not be before start_date", errs.Error())
	assert.Equal(t, map[string]string{
		"start_date": "is required",
		"end_date":   "must not be before start_date",
	}, errs.ToMap())
}
