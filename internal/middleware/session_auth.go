package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/logger"
	"nativedelight/internal/session"
)

const (
	SessionHeader = "X-Session-Token"
	SessionCookie = "session_token"

	sessionContextKey = "session"
)

type TokenVerifier interface {
	Verify(raw string) (string, error)
}

type SessionStore interface {
	Get(id string) (*session.Session, error)
}

// SessionAuth resolves the browsing session named by the request token and
// injects it into the context.
func SessionAuth(tokens TokenVerifier, store SessionStore, logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw := tokenFromRequest(c)
		if raw == "" {
			logg.Warn(ctx, "missing session token")
			abortSession(c)
			return
		}

		sid, err := tokens.Verify(raw)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "reason", err.Error()), "session token rejected")
			abortSession(c)
			return
		}

		s, err := store.Get(sid)
		if err != nil {
			logg.Info(logg.WithSessionID(ctx, sid), "session not found")
			abortSession(c)
			return
		}

		c.Request = c.Request.WithContext(logg.WithSessionID(ctx, sid))
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// SessionFrom returns the session injected by SessionAuth.
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	s, ok := value.(*session.Session)
	return s, ok && s != nil
}

// tokenFromRequest checks the session header, then a bearer token, then the
// cookie.
func tokenFromRequest(c *gin.Context) string {
	if raw := strings.TrimSpace(c.GetHeader(SessionHeader)); raw != "" {
		return raw
	}

	if raw := strings.TrimSpace(c.GetHeader("Authorization")); raw != "" {
		parts := strings.Split(raw, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func abortSession(c *gin.Context) {
	meta := apperrors.MetadataFor(apperrors.CodeSession)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": meta.PublicMessage,
		"code":  apperrors.CodeSession,
	})
}
