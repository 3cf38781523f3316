package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-auth-service/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/user-auth-service/internal/middleware" // JWT authentication middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, used
// by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth;
// endpoints that need a valid bearer token live under /v1 and run through
// the JWT middleware, which also checks the token store for revocation.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, tokens middleware.TokenValidator) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Password-reset flow: forgot-password stores and dispatches a 4-digit
	// code, reset-password consumes it exactly once.
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret, tokens))
	// Logout revokes exactly the token presented in the Authorization
	// header; other sessions of the same user stay alive.
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}
