package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nativedelight/internal/apperrors"
)

var errSessionClaim = errors.New("sid claim missing")

// Tokens signs and verifies the bearer token that names a browsing session.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(t.ttl)
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify returns the session id carried by a valid, unexpired token.
func (t *Tokens) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.New(apperrors.CodeSession, "missing session token")
	}

	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", apperrors.Wrap(apperrors.CodeSession, err, "invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.New(apperrors.CodeSession, "invalid session token")
	}

	sid, ok := claims["sid"].(string)
	if !ok || strings.TrimSpace(sid) == "" {
		return "", apperrors.Wrap(apperrors.CodeSession, errSessionClaim, "invalid session token")
	}
	return sid, nil
}
