package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/logger"
	"nativedelight/internal/session"
)

type addItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func GetCart(logg *logger.Logger) gin.HandlerFunc {
	return stateAction("GET /cart", logg, (*session.Session).State)
}

func AddCartItem(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		state, err := s.AddItem(req.ItemID)
		if err != nil {
			respondWithError(c, logg, route, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// UpdateCartItem sets a line's quantity; below 1 removes the line.
func UpdateCartItem(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/items/:id"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		state, err := s.UpdateQuantity(c.Param("id"), *req.Quantity)
		if err != nil {
			respondWithError(c, logg, route, err, gin.H{"state": state})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func RemoveCartItem(logg *logger.Logger) gin.HandlerFunc {
	return cartMutation("DELETE /cart/items/:id", logg, func(c *gin.Context, s *session.Session) (session.State, error) {
		return s.RemoveItem(c.Param("id"))
	})
}

func ClearCart(logg *logger.Logger) gin.HandlerFunc {
	return cartMutation("DELETE /cart", logg, func(_ *gin.Context, s *session.Session) (session.State, error) {
		return s.ClearCart()
	})
}

// cartMutation reports a refused edit with the current state so the client
// can re-render.
func cartMutation(route string, logg *logger.Logger, mutate func(*gin.Context, *session.Session) (session.State, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}
		state, err := mutate(c, s)
		if err != nil {
			respondWithError(c, logg, route, err, gin.H{"state": state})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func OpenCart(logg *logger.Logger) gin.HandlerFunc {
	return stateAction("POST /cart/open", logg, func(s *session.Session) session.State {
		return s.SetCartOpen(true)
	})
}

func CloseCart(logg *logger.Logger) gin.HandlerFunc {
	return stateAction("POST /cart/close", logg, func(s *session.Session) session.State {
		return s.SetCartOpen(false)
	})
}
