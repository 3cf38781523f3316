package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	access, err := NewAccessToken("secret", 42, 15)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), access.Exp, 5*time.Second)

	tok, err := jwt.Parse(access.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.NotEmpty(t, claims["jti"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	access, err := NewAccessToken("secret", 1, 15)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestNewAccessToken_DistinctPerIssue(t *testing.T) {
	// Two tokens for the same user in the same second must not collide;
	// the jti claim guarantees that.
	a, err := NewAccessToken("secret", 7, 15)
	require.NoError(t, err)
	b, err := NewAccessToken("secret", 7, 15)
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.NotEqual(t, HashTokenRaw(a.Token), HashTokenRaw(b.Token))
}

func TestHashTokenRaw(t *testing.T) {
	h := HashTokenRaw("some-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashTokenRaw("some-token"))
	assert.NotEqual(t, h, HashTokenRaw("some-other-token"))
}
