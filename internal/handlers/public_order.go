package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nativedelight/internal/checkout"
	"nativedelight/internal/logger"
	"nativedelight/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutMethodRequest struct {
	ID string `json:"id" binding:"required"`
}

type checkoutSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

/* =========================
   BEGIN CHECKOUT
========================= */

// BeginCheckout opens the payment method chooser. An empty cart is not an
// error; the response reports opened=false and the state is unchanged.
func BeginCheckout(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		state, opened := s.BeginCheckout()
		c.JSON(http.StatusOK, gin.H{"opened": opened, "state": state})
	}
}

/* =========================
   CHOOSE PAYMENT METHOD
========================= */

func ChooseCheckoutMethod(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/method"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req checkoutMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		method := models.PaymentMethod(req.ID)
		link, state, err := s.ChooseMethod(method)
		if err != nil {
			respondWithError(c, logg, route, err, gin.H{"state": state})
			return
		}

		body := gin.H{"state": state}
		if link != "" {
			body["url"] = link
			logg.Info(c.Request.Context(), fmt.Sprintf("[%s] order handed off to chat", route))
		}
		c.JSON(http.StatusOK, body)
	}
}

/* =========================
   SUBMIT CHECKOUT FORM
========================= */

func SubmitCheckout(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/submit"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		var req checkoutSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logg, route, err)
			return
		}

		result, state, err := s.SubmitCheckout(c.Request.Context(), checkout.Form{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			respondWithError(c, logg, route, err, gin.H{"state": state})
			return
		}

		if result.RedirectURL != "" {
			logg.Info(c.Request.Context(), fmt.Sprintf("[%s] redirecting to payment", route))
		} else {
			logg.Info(c.Request.Context(), fmt.Sprintf("[%s] order placed", route))
		}

		c.JSON(http.StatusOK, gin.H{
			"redirectUrl": result.RedirectURL,
			"orderPlaced": result.OrderPlaced,
			"state":       state,
		})
	}
}

/* =========================
   CANCEL CHECKOUT
========================= */

func CancelCheckout(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/cancel"
		defer handlePanic(c, logg, route)

		s, ok := currentSession(c, logg, route)
		if !ok {
			return
		}

		state, err := s.CancelCheckout()
		if err != nil {
			respondWithError(c, logg, route, err, gin.H{"state": state})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
