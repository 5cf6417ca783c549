// Package router wires the HTTP handlers into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/vietcart/backend/internal/infrastructure/auth"
	"github.com/vietcart/backend/internal/infrastructure/config"
	"github.com/vietcart/backend/internal/infrastructure/logger"
	"github.com/vietcart/backend/internal/interfaces/http/handler"
	"github.com/vietcart/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	System   *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain and all routes
// mounted under /api/v1
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		otelgin.Middleware(cfg.Telemetry.ServiceName),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	registerPublicRoutes(api, h)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtService))
	registerAccountRoutes(authed, h)
	registerShoppingRoutes(authed, h)

	staff := authed.Group("")
	staff.Use(middleware.RequireRoles("staff", "admin"))
	registerStaffRoutes(staff, h)

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles("admin"))
	registerAdminRoutes(admin, h)

	return engine, nil
}

// registerPublicRoutes mounts endpoints that need no token. The IPN endpoint
// is public because the gateway authenticates with the payload signature.
func registerPublicRoutes(rg *gin.RouterGroup, h Handlers) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.GET("/google/login", h.Auth.GoogleLogin)
		authGroup.GET("/google/callback", h.Auth.GoogleCallback)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/code/:code", h.Product.GetByCode)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.Tree)
		categories.GET("/:id", h.Category.Get)
		categories.GET("/slug/:slug", h.Category.GetBySlug)
	}

	brands := rg.Group("/brands")
	{
		brands.GET("", h.Brand.List)
		brands.GET("/:id", h.Brand.Get)
	}

	rg.POST("/payment/momo/ipn", h.Payment.IPN)
}

// registerAccountRoutes mounts the authenticated profile and address routes
func registerAccountRoutes(rg *gin.RouterGroup, h Handlers) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.Account.GetProfile)
		users.PUT("/me", h.Account.UpdateProfile)
		users.PUT("/me/password", h.Account.ChangePassword)
	}

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", h.Address.List)
		addresses.GET("/:id", h.Address.Get)
		addresses.POST("", h.Address.Create)
		addresses.PUT("/:id", h.Address.Update)
		addresses.PUT("/:id/default", h.Address.SetDefault)
		addresses.DELETE("/:id", h.Address.Delete)
	}
}

// registerShoppingRoutes mounts the authenticated cart, order, and payment
// routes
func registerShoppingRoutes(rg *gin.RouterGroup, h Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:productId", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
	}

	orders := rg.Group("/orders")
	{
		orders.POST("", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	payment := rg.Group("/payment")
	{
		payment.POST("/momo/create", h.Payment.CreateMoMo)
		payment.GET("/momo/status/:orderId", h.Payment.Status)
	}
}

// registerStaffRoutes mounts catalog and order management for staff and admin
func registerStaffRoutes(rg *gin.RouterGroup, h Handlers) {
	products := rg.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/restore", h.Product.Restore)
		products.POST("/:id/image", h.Product.UploadImage)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	brands := rg.Group("/brands")
	{
		brands.POST("", h.Brand.Create)
		brands.PUT("/:id", h.Brand.Update)
		brands.DELETE("/:id", h.Brand.Delete)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("/all", h.Order.ListAll)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

// registerAdminRoutes mounts account administration, admin only
func registerAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	users := rg.Group("/users")
	{
		users.GET("", h.Account.List)
		users.PUT("/:id/role", h.Account.ChangeRole)
		users.DELETE("/:id", h.Account.Deactivate)
	}
}
