package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/supermall-dev/supermall-golang/internal/handlers"
	"github.com/supermall-dev/supermall-golang/internal/metrics"
	"github.com/supermall-dev/supermall-golang/internal/middleware"
)

// CORSMiddleware tells the browser the storefront origin may talk to us.
// The origin comes from CORS_ORIGIN so staging and production can differ;
// the default matches a local Vite dev server.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, m *metrics.RequestMetrics) *gin.Engine {
	router := gin.Default()

	// CORS must run before anything else answers.
	router.Use(CORSMiddleware())
	router.Use(m.Middleware())

	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/signup", h.Signup)
		v1.POST("/login", h.Login)

		// --- Public Browse Routes ---
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/floors", h.GetAllFloors)
		v1.GET("/shops", h.GetAllShops)
		v1.GET("/shops/:id", h.GetShopDetails)
		v1.GET("/offers", h.GetAllOffers)
		v1.GET("/offers/compare", h.CompareOffers)
		v1.GET("/offers/discount-preview", h.DiscountPreview)
		v1.GET("/products", h.GetAllProducts)
		v1.GET("/products/:id", h.GetProductDetails)
		v1.GET("/search", h.GlobalSearch)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/me", h.Me)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.POST("/floors", h.CreateFloor)
			admin.PUT("/floors/:id", h.UpdateFloor)
			admin.DELETE("/floors/:id", h.DeleteFloor)

			admin.POST("/shops", h.CreateShop)
			admin.PUT("/shops/:id", h.UpdateShop)
			admin.DELETE("/shops/:id", h.DeleteShop)

			admin.POST("/offers", h.CreateOffer)
			admin.PUT("/offers/:id", h.UpdateOffer)
			admin.DELETE("/offers/:id", h.DeleteOffer)

			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.PATCH("/products/:id/info", h.UpdateProductInfo)
			admin.DELETE("/products/:id", h.DeleteProduct)

			admin.GET("/dashboard-stats", h.GetDashboardStats)
			admin.POST("/seed", h.SeedDatabase)
		}
	}

	return router
}
