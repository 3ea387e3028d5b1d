package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/logger"
	"nativedelight/internal/middleware"
	"nativedelight/internal/session"
)

func handlePanic(c *gin.Context, logg *logger.Logger, route string) {
	if r := recover(); r != nil {
		logg.Error(c.Request.Context(), fmt.Sprintf("[%s] panic recovered", route), fmt.Errorf("%v", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"code":  apperrors.CodeInternal,
		})
	}
}

// respondWithError maps err to its status and public body. Extra fields such
// as the session state are merged into the body.
func respondWithError(c *gin.Context, logg *logger.Logger, route string, err error, extra ...gin.H) {
	code := apperrors.CodeOf(err)
	meta := apperrors.MetadataFor(code)

	message := meta.PublicMessage
	body := gin.H{"code": code}
	if typed := apperrors.As(err); typed != nil {
		if code != apperrors.CodeInternal && typed.Message() != "" {
			message = typed.Message()
		}
		if meta.DetailsAllowed && typed.Details() != nil {
			body["details"] = typed.Details()
		}
	}
	body["error"] = message
	for _, fields := range extra {
		for k, v := range fields {
			body[k] = v
		}
	}

	ctx := logg.WithField(c.Request.Context(), "code", string(code))
	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(ctx, fmt.Sprintf("[%s] returning error %d", route, meta.HTTPStatus), err)
	} else {
		logg.Warn(logg.WithField(ctx, "reason", err.Error()), fmt.Sprintf("[%s] returning error %d", route, meta.HTTPStatus))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(meta.HTTPStatus, body)
}

func badRequest(c *gin.Context, logg *logger.Logger, route string, err error) {
	respondWithError(c, logg, route, apperrors.Wrap(apperrors.CodeValidation, err, "invalid request body"))
}

// currentSession is only called behind SessionAuth.
func currentSession(c *gin.Context, logg *logger.Logger, route string) (*session.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		respondWithError(c, logg, route, apperrors.New(apperrors.CodeSession, "session expired"))
		return nil, false
	}
	return s, true
}
