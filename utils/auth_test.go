package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateUserToken(42, testSecret)
	require.NoError(t, err)

	id, err := ParseToken(token, TokenKindUser, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseToken(token, TokenKindClient, testSecret)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	_, err = ParseToken(token, TokenKindUser, []byte("other-secret"))
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	token, err := generateToken(TokenKindClient, 7, testSecret, time.Now().Add(-TokenTTL-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(token, TokenKindClient, testSecret)
	assert.Error(t, err)
}

func TestTokenNeedsSecret(t *testing.T) {
	_, err := GenerateClientToken(1, nil)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}

func TestPhoneValidation(t *testing.T) {
	assert.True(t, ValidatePhone("+55 (11) 99999-8888"))
	assert.False(t, ValidatePhone("phone"))
	assert.True(t, IsE164("+5511999998888"))
	assert.False(t, IsE164("11999998888"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
}
