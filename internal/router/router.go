// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dojoroom/room-booking/internal/handler"
	"github.com/dojoroom/room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register, login, refresh and
// logout manage sessions and need no access token; /v1/me sits behind the
// JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterBooking registers the schedule and booking endpoints under
// /api/v1, all behind JWT authentication: the booking rules need a trusted
// owner name, and the schedule was never public in the first place.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.GET("/schedule", b.Schedule)
	api.POST("/add", b.Add)
	api.POST("/remove", b.Remove)
}
