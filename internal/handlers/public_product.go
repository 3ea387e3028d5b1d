package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/logger"
	"nativedelight/internal/models"
)

/*
GET /menu
- items visible under the current view selection
- pagination only when both page and limit are given
*/
func GetMenu(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		respondWithItems(c, logg, route, s.VisibleItems())
	}
}

/*
GET /menu/all
- every orderable item regardless of view selection
*/
func GetAllMenuItems(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/all"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		respondWithItems(c, logg, route, s.MenuItems())
	}
}

func respondWithItems(c *gin.Context, logg *logger.Logger, route string, items []models.MenuItem) {
	pageStr := c.Query("page")
	limitStr := c.Query("limit")

	if pageStr != "" && limitStr != "" {
		page, limit, err := parsePaginationParams(pageStr, limitStr)
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}
		items = paginate(items, page, limit)
	}

	logg.Debug(c.Request.Context(), fmt.Sprintf("[%s] returning %d items", route, len(items)))
	c.JSON(http.StatusOK, items)
}
