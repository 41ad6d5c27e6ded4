package handler

// This file defines the authenticated gallery endpoints. Every mutation
// verifies that the caller owns the target gallery; a mismatch yields
// 403 rather than the generic 400.

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/queue"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
)

// hallEntry is one embedded hall of a create/update payload. On update
// hallObjectId names the existing hall to replace; it is not used on
// create.
type hallEntry struct {
	HallObjectID uint64           `json:"hallObjectId,omitempty"`
	HallName     string           `json:"hallName" validate:"required"`
	ImagesData   model.ImagesData `json:"imagesData"`
}

// galleryReq is the create/update request body. Author identity is
// never read from here; it always comes from the verified token.
type galleryReq struct {
	Title       string      `json:"title" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	StartDate   time.Time   `json:"startDate" validate:"required"`
	EndDate     time.Time   `json:"endDate" validate:"required"`
	Description string      `json:"description"`
	PosterURL   string      `json:"posterUrl"`
	Halls       []hallEntry `json:"halls" validate:"dive"`
}

// GetMyGalleries handles GET /galleries/myGallery and lists the
// caller's own galleries.
func (h *GalleryHandler) GetMyGalleries(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	galleries, err := h.Galleries.GetByAuthor(c.Request().Context(), authorID)
	if err != nil {
		log.Error().Err(err).Uint64("author_id", authorID).Msg("list own galleries failed")
		return fail(c, http.StatusBadRequest, "failed to get galleries")
	}
	if galleries == nil {
		galleries = []*model.Gallery{}
	}
	return ok(c, "get galleries success", galleries)
}

// CreateGallery handles POST /galleries. The gallery is persisted
// first, then one hall per embedded entry. Halls created before a
// mid-sequence failure are not rolled back; the operation is still
// reported as failed.
func (h *GalleryHandler) CreateGallery(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	nickname := getNickname(c)

	var req galleryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	gallery := &model.Gallery{
		AuthorID:    authorID,
		Nickname:    nickname,
		Title:       req.Title,
		Category:    req.Category,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}
	if err := h.Galleries.Create(ctx, gallery); err != nil {
		log.Error().Err(err).Msg("create gallery failed")
		return fail(c, http.StatusBadRequest, "failed creating gallery")
	}

	for _, entry := range req.Halls {
		hall := &model.Hall{
			GalleryID:  gallery.ID,
			HallName:   entry.HallName,
			ImagesData: entry.ImagesData,
		}
		if err := h.Halls.Create(ctx, hall); err != nil {
			log.Error().Err(err).Uint64("gallery_id", gallery.ID).Msg("create hall failed")
			return fail(c, http.StatusBadRequest, "failed creating gallery")
		}
	}
	return ok(c, "created gallery", gallery)
}

// UpdateGalleryByID handles PUT /galleries/:id. Only the owner may
// update; each embedded hall entry must name an existing hall via
// hallObjectId or the whole operation fails.
func (h *GalleryHandler) UpdateGalleryByID(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid gallery id")
	}

	ctx := c.Request().Context()
	authorID, err := h.Galleries.GetAuthorID(ctx, id)
	if err != nil {
		if err != repository.ErrGalleryNotFound {
			log.Error().Err(err).Uint64("gallery_id", id).Msg("ownership lookup failed")
		}
		return fail(c, http.StatusBadRequest, "failed updating gallery")
	}
	if authorID != callerID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	var req galleryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	patch := &model.GalleryPatch{
		Title:       req.Title,
		Category:    req.Category,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}
	if err := h.Galleries.UpdateByID(ctx, id, patch); err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("update gallery failed")
		return fail(c, http.StatusBadRequest, "failed updating gallery")
	}

	for _, entry := range req.Halls {
		if entry.HallObjectID == 0 {
			return fail(c, http.StatusBadRequest, "failed updating gallery")
		}
		hallPatch := &model.HallPatch{HallName: entry.HallName, ImagesData: entry.ImagesData}
		if err := h.Halls.UpdateByID(ctx, entry.HallObjectID, hallPatch); err != nil {
			if !errors.Is(err, repository.ErrHallNotFound) {
				log.Error().Err(err).Uint64("hall_id", entry.HallObjectID).Msg("update hall failed")
			}
			return fail(c, http.StatusBadRequest, "failed updating gallery")
		}
	}
	return ok(c, "updated gallery", nil)
}

// DeleteGalleryByID handles DELETE /galleries/:id. Halls are deleted
// before the gallery record so halls never dangle without a parent; a
// crash between the two deletes leaves halls gone but the gallery
// present. Emits a gallery.deleted event on success.
func (h *GalleryHandler) DeleteGalleryByID(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid gallery id")
	}

	ctx := c.Request().Context()
	authorID, err := h.Galleries.GetAuthorID(ctx, id)
	if err != nil {
		if err != repository.ErrGalleryNotFound {
			log.Error().Err(err).Uint64("gallery_id", id).Msg("ownership lookup failed")
		}
		return fail(c, http.StatusBadRequest, "failed deleting gallery")
	}
	if authorID != callerID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	// Snapshot image references before the rows disappear; the deletion
	// event carries them for external cleanup.
	gallery, err := h.Galleries.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("get gallery failed")
		return fail(c, http.StatusBadRequest, "failed deleting gallery")
	}
	halls, err := h.Halls.GetByGalleryID(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("get halls failed")
		return fail(c, http.StatusBadRequest, "failed deleting gallery")
	}

	if err := h.Halls.DeleteByGalleryID(ctx, id); err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("delete halls failed")
		return fail(c, http.StatusBadRequest, "failed deleting gallery")
	}
	if err := h.Galleries.DeleteByID(ctx, id); err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("delete gallery failed")
		return fail(c, http.StatusBadRequest, "failed deleting gallery")
	}

	if h.Events != nil {
		ev := queue.GalleryDeletedEvent{
			GalleryID: id,
			AuthorID:  authorID,
			Title:     gallery.Title,
			PosterURL: gallery.PosterURL,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		}
		for _, hall := range halls {
			for _, img := range hall.ImagesData {
				ev.ImageURLs = append(ev.ImageURLs, img.ImageURL)
			}
		}
		if err := h.Events.PublishGalleryDeleted(ctx, ev); err != nil {
			log.Warn().Err(err).Uint64("gallery_id", id).Msg("publish gallery.deleted failed")
		}
	}
	return ok(c, "deleted gallery", nil)
}
