package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// Claims is the JWT payload: the session identity plus registered claims.
// The account id travels as the subject.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 tokens for established sessions.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for session.
func (i *TokenIssuer) Issue(session domain.Session) (string, error) {
	now := i.now()
	claims := Claims{
		Name: session.Name,
		Role: string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
