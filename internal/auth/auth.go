// Package auth issues and verifies the bearer tokens that identify actors.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role")
)

type Claims struct {
	Role            models.Role `json:"role"`
	PasswordChanged bool        `json:"password_changed"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an HS256 token for the given subject.
func (m *Manager) Issue(sub string, role models.Role, passwordChanged bool) (string, error) {
	const op = "auth.Issue"

	if sub == "" {
		return "", fmt.Errorf("%s: empty subject", op)
	}
	if !role.Valid() {
		return "", fmt.Errorf("%s: %w: %q", op, ErrInvalidRole, role)
	}

	now := m.now()
	claims := Claims{
		Role:            role,
		PasswordChanged: passwordChanged,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Parse verifies raw and returns the actor it identifies.
func (m *Manager) Parse(raw string) (*models.Actor, error) {
	const op = "auth.Parse"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidRole, claims.Role)
	}

	return &models.Actor{
		UserID:          claims.Subject,
		Role:            claims.Role,
		PasswordChanged: claims.PasswordChanged,
	}, nil
}
