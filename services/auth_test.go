package services

import (
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentrate/config"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.InDelta(t, time.Now().Add(TokenLifetime).Unix(), claims.ExpiresAt, 5)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ParseToken(tampered)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := AuthClaims{
		UserID: 7,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.SecretKey()))
	require.NoError(t, err)

	_, err = ParseToken(expired)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, AuthClaims{UserID: 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(unsigned)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("TestPass123")
	require.NoError(t, err)
	assert.NotEqual(t, "TestPass123", hash)

	assert.True(t, CheckPassword(hash, "TestPass123"))
	assert.False(t, CheckPassword(hash, "WrongPass123"))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.example.org", "a@b.co"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "no@tld", "spaces in@example.com", "@example.com", "user@"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("TestPass123"))

	weak := []string{
		"short1A",     // too short
		"alllower123", // no uppercase
		"ALLUPPER123", // no lowercase
		"NoDigitsHere", // no digit
	}
	for _, password := range weak {
		assert.Error(t, ValidatePassword(password), password)
	}
}
