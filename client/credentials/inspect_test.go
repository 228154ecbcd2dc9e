package credentials

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-server-secret"))
	require.NoError(t, err)
	return tok
}

func TestInspect(t *testing.T) {
	t.Parallel()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"id": "u42", "role": "admin", "email": "a@kissanbandi.in", "exp": exp.Unix()})

	c, err := Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "u42", c.Subject)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, "a@kissanbandi.in", c.Email)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.False(t, c.Expired(time.Now()))
}

func TestInspect_SubjectClaimWins(t *testing.T) {
	t.Parallel()
	c, err := Inspect(signed(t, jwt.MapClaims{"sub": "s1", "id": "u42"}))
	require.NoError(t, err)
	assert.Equal(t, "s1", c.Subject)
	assert.True(t, c.ExpiresAt.IsZero())
	assert.False(t, c.Expired(time.Now()))
}

func TestInspect_Garbage(t *testing.T) {
	t.Parallel()
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}
