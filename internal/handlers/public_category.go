package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/logger"
)

// GetCategories lists the active categories of the session's catalog
// snapshot, in catalog order.
func GetCategories(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		categories := s.Categories()
		logg.Debug(c.Request.Context(), fmt.Sprintf("[%s] returning %d categories", route, len(categories)))
		c.JSON(http.StatusOK, categories)
	}
}
