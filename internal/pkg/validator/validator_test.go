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
	assert.True(t, IsValidUUID("2d4a0a7e-9c1f-4b53-8f0a-1c2d3e4f5a6b"))
	assert.True(t, IsValidUUID("2D4A0A7E-9C1F-4B53-8F0A-1C2D3E4F5A6B"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, 10, d.Day())

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)
}

func TestIsValidClockTime(t *testing.T) {
	_, ok := IsValidClockTime("09:30")
	assert.True(t, ok)

	_, ok = IsValidClockTime("25:00")
	assert.False(t, ok)

	_, ok = IsValidClockTime("9am")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	_, ok := IsValidMonth("2025-03")
	assert.True(t, ok)

	_, ok = IsValidMonth("2025-13")
	assert.False(t, ok)
}

func TestCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(-6.16))
	assert.False(t, IsValidLatitude(91))
	assert.True(t, IsValidLongitude(106.87))
	assert.False(t, IsValidLongitude(-181))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "mode", Message: "mode is required"},
		{Field: "latitude", Message: "latitude is required"},
	}
	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "mode is required", m["mode"])
	assert.Contains(t, errs.Error(), "latitude")
}

func TestValidationErrorsIsEmpty(t *testing.T) {
	var errs ValidationErrors
	assert.True(t, errs.IsEmpty())

	errs = append(errs, ValidationError{Field: "mode", Message: "mode is required"})
	assert.False(t, errs.IsEmpty())
}
