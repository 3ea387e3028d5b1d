package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/logger"
	"nativedelight/internal/middleware"
	"nativedelight/internal/session"
)

// CreateSession loads the catalog, starts a browsing session and hands back
// its token, also as an http-only cookie.
func CreateSession(sessions *session.Manager, tokens *session.Tokens, secureCookie bool, logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /session"
		defer handlePanic(c, logg, route)

		s, err := sessions.Create(c.Request.Context())
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}

		token, expiresAt, err := tokens.Issue(s.ID())
		if err != nil {
			sessions.Remove(s.ID())
			respondWithError(c, logg, route, err)
			return
		}

		maxAge := int(time.Until(expiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secureCookie, true)

		c.JSON(http.StatusCreated, gin.H{
			"token":     token,
			"expiresAt": expiresAt.UTC().Format(time.RFC3339),
			"state":     s.State(),
		})
	}
}

func GetSession(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /session"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.State())
	}
}

// EndSession drops the session and clears the cookie.
func EndSession(sessions *session.Manager, secureCookie bool, logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /session"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		sessions.Remove(s.ID())
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookie, true)
		c.Status(http.StatusNoContent)
	}
}
