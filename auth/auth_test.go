package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("admin@mugix.com", "s3cret", "test-secret", 8*time.Hour)
}

func TestLogin(t *testing.T) {
	m := newTestManager()

	token, err := m.Login("admin@mugix.com", "s3cret")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@mugix.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_RejectsWrongCredentials(t *testing.T) {
	m := newTestManager()

	_, err := m.Login("admin@mugix.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Login("other@mugix.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NotConfigured(t *testing.T) {
	m := NewManager("", "", "secret", time.Hour)
	_, err := m.Login("", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
	token, err := m.Issue("admin@mugix.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewManager("a", "b", "other-secret", time.Hour).Issue("a")
	require.NoError(t, err)

	_, err = newTestManager().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNonAdminRole(t *testing.T) {
	claims := Claims{
		Email: "x@mugix.com",
		Role:  "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestManager().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newTestManager().Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
