package auth

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSigner(t *testing.T) {
	signer := NewJWTSigner([]byte(testSigningKey))
	id := NewID()

	token, err := signer.Sign(id)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := signer.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTSigner_OnlyIDClaim(t *testing.T) {
	token, err := NewJWTSigner([]byte(testSigningKey)).Sign(NewID())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = new(jwt.Parser).ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Len(t, claims, 1)
	assert.Contains(t, claims, "id")
}

func TestJWTSigner_RejectsBadTokens(t *testing.T) {
	signer := NewJWTSigner([]byte(testSigningKey))

	other, err := NewJWTSigner([]byte("another-key")).Sign(NewID())
	require.NoError(t, err)

	badID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "nope"}).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	for _, token := range []string{"", "not.a.jwt", other, badID} {
		id, err := signer.Parse(token)
		assert.Error(t, err)
		assert.Equal(t, ID(""), id)
	}
}
