// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/haneul-dev/virtual-gallery/internal/handler"
	"github.com/haneul-dev/virtual-gallery/internal/middleware"
)

// Register wires every route on the provided Echo instance. cache may
// be a pass-through middleware; it is applied only to the public GET
// listing routes so authenticated responses are never cached.
func Register(e *echo.Echo, auth *handler.AuthHandler, gallery *handler.GalleryHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	jwt := middleware.JWTAuth(jwtSecret)

	a := e.Group("/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.POST("/refresh", auth.Refresh)
	a.POST("/logout", auth.Logout)
	a.GET("/me", auth.Me, jwt)

	g := e.Group("/galleries")
	g.GET("", gallery.GetAllGalleries, cache)
	g.GET("/filtering", gallery.GetFilteredGalleries, cache)
	g.GET("/preview/:code", gallery.GetPreviewGalleries, cache)
	g.GET("/myGallery", gallery.GetMyGalleries, jwt)
	g.GET("/:id", gallery.GetGalleryByID)
	g.POST("", gallery.CreateGallery, jwt)
	g.PUT("/:id", gallery.UpdateGalleryByID, jwt)
	g.DELETE("/:id", gallery.DeleteGalleryByID, jwt)
}
