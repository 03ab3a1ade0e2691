// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/cart"
	"github.com/your-org/jewelry-storefront/internal/domain/catalog"
	"github.com/your-org/jewelry-storefront/internal/domain/checkout"
	"github.com/your-org/jewelry-storefront/internal/domain/payment"
	"github.com/your-org/jewelry-storefront/internal/interfaces/http/handlers"
)

// Services bundles the domain services the HTTP layer exposes
type Services struct {
	Catalog  *catalog.Provider
	Cart     *cart.Service
	Checkout *checkout.Service
	Payment  *payment.Service
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	SetupCatalogRoutes(rg, svc, cfg)
	SetupCartRoutes(rg, svc, cfg)
	SetupCheckoutRoutes(rg, svc, cfg)
}

// SetupCatalogRoutes sets up catalog browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, cfg)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("", catalogHandler.GetCatalog)
		catalogGroup.GET("/featured", catalogHandler.GetFeatured)
		catalogGroup.GET("/categories", catalogHandler.GetCategories)
	}

	products := rg.Group("/products")
	{
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

// SetupCartRoutes sets up shopping cart routes
func SetupCartRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Catalog, cfg)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout and payment routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, svc.Payment, cfg)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.GET("/summary", checkoutHandler.GetSummary)
		checkoutGroup.POST("/orders", checkoutHandler.CreateOrder)
		checkoutGroup.POST("/orders/:id/capture", checkoutHandler.CaptureOrder)
		checkoutGroup.POST("/orders/:id/cancel", checkoutHandler.CancelOrder)
	}
}
