package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messagely/internal/domain"
)

// Claims carries the authenticated username alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager signs and verifies the bearer tokens used for request identity.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager. A ttl of zero issues tokens without an
// expiry claim; signature validity is then the only check.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate signs an HS256 token carrying the username claim.
func (m *Manager) Generate(username string) (string, error) {
	claims := Claims{Username: username}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.ttl))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify checks the signature and returns the username claim.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	tok, err := m.parseInto(tokenString, claims)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	if !tok.Valid || claims.Username == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Username, nil
}

func (m *Manager) parseInto(tokenString string, claims *Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return m.secret, nil
	})
}
