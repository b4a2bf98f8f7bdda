package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("coutCentre", "must be within [0,100], got %v", 120.0)
	assert.Equal(t, "validation error on coutCentre: must be within [0,100], got 120", err.Error())
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
	assert.Equal(t, "validation error: x", (&ValidationError{Reason: "x"}).Error())
}

func TestParsePeriod(t *testing.T) {
	s, e, err := ParsePeriod("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), s)
	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), e)

	_, _, err = ParsePeriod("", "2025-01-31")
	assert.True(t, IsValidationError(err))
	_, _, err = ParsePeriod("01/01/2025", "2025-01-31")
	assert.True(t, IsValidationError(err))
	_, _, err = ParsePeriod("2025-02-01", "2025-01-31")
	assert.True(t, IsValidationError(err))
}
