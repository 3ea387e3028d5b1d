package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/logger"
	"nativedelight/internal/session"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type subcategoryRequest struct {
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory" binding:"required"`
}

func SelectCategory(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /view/category"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		state, err := s.SelectCategory(req.Name)
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// OpenCategory shows the subcategory picker for a category.
func OpenCategory(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /view/category/open"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		state, err := s.OpenCategory(req.Name)
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func CloseCategory(logg *logger.Logger) gin.HandlerFunc {
	return stateAction("POST /view/category/close", logg, (*session.Session).CloseCategory)
}

func SelectSubcategory(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /view/subcategory"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req subcategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		state, err := s.SelectSubcategory(req.Category, req.Subcategory)
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func Back(logg *logger.Logger) gin.HandlerFunc {
	return stateAction("POST /view/back", logg, (*session.Session).Back)
}

// stateAction wraps session operations that cannot fail.
func stateAction(route string, logg *logger.Logger, action func(*session.Session) session.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, action(s))
	}
}
