// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/catalog"
)

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	provider *catalog.Provider
	config   *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(provider *catalog.Provider, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		provider: provider,
		config:   cfg,
	}
}

// GetCatalog handles GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	store, err := h.provider.Store(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Unable to load storefront data. Please refresh.",
		})
		return
	}

	criteria := catalog.Criteria{
		Search:      c.Query("search"),
		Material:    c.Query("cat"),
		Subcategory: c.Query("sub"),
		MinPrice:    parseInt64(c.Query("min_price")),
		MaxPrice:    parseInt64(c.Query("max_price")),
	}

	// Material root with no subcategory shows group tiles, not products;
	// the price range never applies in this mode
	if store.IsCategoryGrid(criteria) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Catalog retrieved successfully",
			"data": gin.H{
				"mode":       "categories",
				"title":      catalog.Label(criteria.Material) + " Collections",
				"categories": store.CategoryGrid(criteria.Material),
			},
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filtered := store.Filter(criteria)
	view := catalog.Paginate(filtered, page, h.config.Checkout.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data": gin.H{
			"mode":       "products",
			"title":      catalog.Label(criteria.Material),
			"products":   view.Items,
			"pagination": view,
		},
	})
}

// GetFeatured handles GET /catalog/featured
func (h *CatalogHandler) GetFeatured(c *gin.Context) {
	store, err := h.provider.Store(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Unable to load storefront data. Please refresh.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Featured products retrieved successfully",
		"data":    store.Featured(),
	})
}

// GetCategories handles GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	store, err := h.provider.Store(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Unable to load storefront data. Please refresh.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    store.CategoriesInScope(c.Query("cat")),
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	store, err := h.provider.Store(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Unable to load storefront data. Please refresh.",
		})
		return
	}

	prod, ok := store.FindByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    prod,
	})
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
