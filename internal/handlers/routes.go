package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"nativedelight/internal/logger"
	"nativedelight/internal/middleware"
	"nativedelight/internal/session"
)

type Dependencies struct {
	Sessions *session.Manager
	Tokens   *session.Tokens
	Health   HealthChecker
	Gatherer prometheus.Gatherer
	Logger   *logger.Logger
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

func Register(r *gin.Engine, deps Dependencies) {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	r.GET("/healthz", Health(deps.Health, logg))
	r.GET("/metrics", Metrics(deps.Gatherer))

	r.POST("/session", CreateSession(deps.Sessions, deps.Tokens, deps.SecureCookie, logg))

	api := r.Group("/")
	api.Use(middleware.SessionAuth(deps.Tokens, deps.Sessions, logg))
	{
		api.GET("/session", GetSession(logg))
		api.DELETE("/session", EndSession(deps.Sessions, deps.SecureCookie, logg))

		api.GET("/categories", GetCategories(logg))
		api.GET("/menu", GetMenu(logg))
		api.GET("/menu/all", GetAllMenuItems(logg))

		api.POST("/view/category", SelectCategory(logg))
		api.POST("/view/category/open", OpenCategory(logg))
		api.POST("/view/category/close", CloseCategory(logg))
		api.POST("/view/subcategory", SelectSubcategory(logg))
		api.POST("/view/back", Back(logg))

		api.GET("/cart", GetCart(logg))
		api.POST("/cart/items", AddCartItem(logg))
		api.PATCH("/cart/items/:id", UpdateCartItem(logg))
		api.DELETE("/cart/items/:id", RemoveCartItem(logg))
		api.DELETE("/cart", ClearCart(logg))
		api.POST("/cart/open", OpenCart(logg))
		api.POST("/cart/close", CloseCart(logg))

		api.POST("/checkout", BeginCheckout(logg))
		api.POST("/checkout/method", ChooseCheckoutMethod(logg))
		api.POST("/checkout/submit", SubmitCheckout(logg))
		api.POST("/checkout/cancel", CancelCheckout(logg))
	}
}
