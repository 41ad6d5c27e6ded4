// Package handler exposes the HTTP handlers for the gallery API and the
// account endpoints. Handlers depend on small store interfaces declared
// here so they can be exercised against in-memory fakes in tests.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/queue"
)

// GalleryStore is the persistence contract for gallery records,
// implemented by repository.GalleryRepo.
type GalleryStore interface {
	Create(ctx context.Context, g *model.Gallery) error
	GetAll(ctx context.Context) ([]*model.Gallery, error)
	GetFiltered(ctx context.Context, f model.GalleryFilter) ([]*model.Gallery, error)
	GetUpcoming(ctx context.Context) ([]*model.Gallery, error)
	GetTodays(ctx context.Context) ([]*model.Gallery, error)
	GetByID(ctx context.Context, id uint64) (*model.Gallery, error)
	GetByAuthor(ctx context.Context, authorID uint64) ([]*model.Gallery, error)
	GetAuthorID(ctx context.Context, id uint64) (uint64, error)
	UpdateByID(ctx context.Context, id uint64, p *model.GalleryPatch) error
	DeleteByID(ctx context.Context, id uint64) error
}

// HallStore is the persistence contract for hall records, implemented
// by repository.HallRepo.
type HallStore interface {
	Create(ctx context.Context, h *model.Hall) error
	UpdateByID(ctx context.Context, hallID uint64, p *model.HallPatch) error
	GetByGalleryID(ctx context.Context, galleryID uint64) ([]*model.Hall, error)
	DeleteByGalleryID(ctx context.Context, galleryID uint64) error
}

// UserDirectory resolves author profiles for response shaping.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// EventPublisher emits domain events after state changes. Failures are
// logged by the caller and never affect the HTTP response.
type EventPublisher interface {
	PublishGalleryDeleted(ctx context.Context, ev queue.GalleryDeletedEvent) error
}

// Response is the JSON envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// getUserID extracts the authenticated user id from the echo context.
// JWT claims decode numbers as float64, so several representations are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getNickname extracts the caller's nickname claim, empty when absent.
func getNickname(c echo.Context) string {
	if s, ok := c.Get("nickname").(string); ok {
		return s
	}
	return ""
}
