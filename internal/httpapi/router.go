package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"poshak-storefront/internal/auth"
	"poshak-storefront/internal/cart"
	"poshak-storefront/internal/catalog"
	"poshak-storefront/internal/order"
	"poshak-storefront/internal/storage"
)

const storeTimeout = 5 * time.Second

type ProductStore interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	Create(ctx context.Context, p catalog.Product) (catalog.Product, error)
	Update(ctx context.Context, id string, p catalog.Product) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (storage.Admin, error)
	Create(ctx context.Context, username, passwordHash string) (storage.Admin, error)
}

type Handler struct {
	products      ProductStore
	admins        AdminStore
	issuer        auth.Issuer
	carts         *cart.Store
	composer      order.Composer
	whatsappPhone string
	featuredLimit int
}

type Options struct {
	Products      ProductStore
	Admins        AdminStore
	Issuer        auth.Issuer
	Carts         *cart.Store
	Composer      order.Composer
	WhatsAppPhone string
	FeaturedLimit int
}

func NewHandler(o Options) *Handler {
	return &Handler{
		products:      o.Products,
		admins:        o.Admins,
		issuer:        o.Issuer,
		carts:         o.Carts,
		composer:      o.Composer,
		whatsappPhone: o.WhatsAppPhone,
		featuredLimit: o.FeaturedLimit,
	}
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = allowOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) { c.String(200, "API is running...") })

	requireAdmin := AuthMiddleware(h.issuer)

	// Products
	products := r.Group("/api/products")
	{
		products.GET("", h.listProducts)
		products.GET("/featured", h.featuredProducts)
		products.GET("/facets", h.productFacets)
		products.GET("/:id", h.getProduct)
		products.POST("", requireAdmin, h.createProduct)
		products.PUT("/:id", requireAdmin, h.updateProduct)
		products.DELETE("/:id", requireAdmin, h.deleteProduct)
	}

	// Admin
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", h.loginAdmin)
		admin.POST("/register", h.registerAdmin)
		admin.POST("/logout", requireAdmin, h.logoutAdmin)
	}

	// Carts
	carts := r.Group("/api/carts")
	{
		carts.POST("", h.createCart)
		carts.GET("/:cartId", h.getCart)
		carts.DELETE("/:cartId", h.deleteCart)
		carts.POST("/:cartId/items", h.addCartItem)
		carts.PUT("/:cartId/items/:itemId", h.updateCartItem)
		carts.DELETE("/:cartId/items/:itemId", h.removeCartItem)
		carts.DELETE("/:cartId/items", h.clearCart)
		carts.POST("/:cartId/checkout", h.checkout)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not Found - " + c.Request.URL.Path})
	})

	return r
}
