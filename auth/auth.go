// Package auth issues and verifies the admin's JWT. There is a single admin
// account whose credentials come from the environment.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the only role a token can carry
const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin credentials are not configured")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the token payload
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager checks admin credentials and signs tokens with HS256
type Manager struct {
	email    string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a Manager. Login fails until email and password are set.
func NewManager(email, password, secret string, ttl time.Duration) *Manager {
	return &Manager{
		email:    email,
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the credentials and returns a signed token
func (m *Manager) Login(email, password string) (string, error) {
	if m.email == "" || m.password == "" {
		return "", ErrNotConfigured
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(m.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !emailOK || !passwordOK {
		return "", ErrInvalidCredentials
	}

	return m.Issue(email)
}

// Issue signs an admin token for email
func (m *Manager) Issue(email string) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and checks its signature, expiry and role
func (m *Manager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
