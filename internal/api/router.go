package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/api/handler"
	"github.com/liketelecom/fieldservice/internal/api/middleware"
	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// Services bundles the core services the router exposes.
type Services struct {
	Auth    ports.AuthService
	Orders  ports.OrderService
	Ranking ports.RankingService
	Users   ports.UserService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, sessions ports.SessionStore, byteStore ports.ByteStore, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	authed := middleware.Auth(jwtSecret, sessions)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed)
	e.POST("/auth/renew", authHandler.Renew, authed)

	// --- Order routes ---
	orderHandler := handler.NewOrderHandler(svcs.Orders)
	orders := e.Group("/v1/orders", authed)
	orders.GET("", orderHandler.List, middleware.Require(domain.CapViewOrders))
	orders.POST("", orderHandler.Create, middleware.Require(domain.CapCreateOrder))
	orders.PUT("/priorities", orderHandler.Reorder, middleware.Require(domain.CapReorderQueue))
	orders.GET("/next", orderHandler.Next, middleware.Require(domain.CapViewOrders))
	orders.GET("/:id", orderHandler.Get, middleware.Require(domain.CapViewOrders))
	orders.POST("/:id/accept", orderHandler.Accept, middleware.Require(domain.CapAcceptOrder))
	orders.POST("/:id/complete", orderHandler.Complete, middleware.Require(domain.CapCompleteOrder))
	orders.POST("/:id/return", orderHandler.Return, middleware.Require(domain.CapReturnOrder))

	// --- Ranking routes ---
	rankingHandler := handler.NewRankingHandler(svcs.Ranking)
	e.GET("/v1/rankings", rankingHandler.Monthly, authed, middleware.Require(domain.CapViewRankings))

	// --- User roster routes (admin only) ---
	userHandler := handler.NewUserHandler(svcs.Users)
	users := e.Group("/v1/users", authed, middleware.Require(domain.CapManageUsers))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id/status", userHandler.SetStatus)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(byteStore)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
