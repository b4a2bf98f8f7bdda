package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, 66.7, Round(66.66666, 1))
	assert.Equal(t, 0.0, Round2(math.NaN()))
	assert.Equal(t, 0.0, Round2(math.Inf(1)))
}

func TestRoundPtr(t *testing.T) {
	assert.Nil(t, RoundPtr(nil, 2))
	v := 3.14159
	assert.Equal(t, 3.14, *RoundPtr(&v, 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, Clamp(130, 0, 100))
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 12, Count(12.9))
	assert.Equal(t, 0, Count(-3))
	assert.Equal(t, 0, Count(math.NaN()))
	assert.Equal(t, math.MaxInt32, Count(1e300))
	assert.Equal(t, math.MaxInt32, Count(math.Inf(1)))
}

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := GenerateJWTToken("s3cret", "7", "amina", "manager", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWTToken("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.IDUser)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWT_WrongSecretAndExpired(t *testing.T) {
	tok, err := GenerateJWTToken("s3cret", "7", "amina", "manager", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = ValidateJWTToken("other", tok)
	assert.Error(t, err)

	expired, err := GenerateJWTToken("s3cret", "7", "amina", "manager", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateJWTToken("s3cret", expired)
	assert.Error(t, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	_, err := GenerateJWTToken("", "1", "x", "y", time.Now())
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = ValidateJWTToken("", "abc")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
