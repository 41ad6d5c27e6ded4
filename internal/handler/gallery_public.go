package handler

// This file defines the unauthenticated gallery endpoints: full and
// filtered listings, the upcoming/todays previews and the detail view.
// Store failures are logged server-side and collapsed into a generic
// envelope with HTTP 400.

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
)

// GalleryHandler bundles the stores and directory composed by the
// gallery endpoints.
type GalleryHandler struct {
	Galleries GalleryStore
	Halls     HallStore
	Users     UserDirectory
	Events    EventPublisher
}

func NewGalleryHandler(galleries GalleryStore, halls HallStore, users UserDirectory, events EventPublisher) *GalleryHandler {
	if galleries == nil || halls == nil || users == nil {
		panic("nil store passed to NewGalleryHandler")
	}
	return &GalleryHandler{Galleries: galleries, Halls: halls, Users: users, Events: events}
}

// authorPart is the joined author profile block.
type authorPart struct {
	Nickname string `json:"nickname"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
}

// previewItem is one entry of the preview listing. Dates are rendered
// as 10-character YYYY-MM-DD strings.
type previewItem struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Author      authorPart `json:"author"`
	PosterURL   string     `json:"posterUrl"`
	Description string     `json:"description"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
}

// hallPart is the reduced hall shape of the detail view; image data is
// omitted on purpose.
type hallPart struct {
	HallID   uint64 `json:"hallId"`
	HallName string `json:"hallName"`
}

// galleryDetail is the composed payload of GET /galleries/:id.
type galleryDetail struct {
	AuthorID    uint64     `json:"authorId"`
	Author      authorPart `json:"author"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Description string     `json:"description"`
	PosterURL   string     `json:"posterUrl"`
	Halls       []hallPart `json:"halls"`
}

// previewDate renders a timestamp the way the preview contract demands:
// the first 10 characters of the UTC ISO form, i.e. YYYY-MM-DD.
func previewDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GetAllGalleries handles GET /galleries and returns every gallery
// verbatim.
func (h *GalleryHandler) GetAllGalleries(c echo.Context) error {
	galleries, err := h.Galleries.GetAll(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("list galleries failed")
		return fail(c, http.StatusBadRequest, "failed to get galleries")
	}
	if galleries == nil {
		galleries = []*model.Gallery{}
	}
	return ok(c, "get galleries success", galleries)
}

// GetFilteredGalleries handles GET /galleries/filtering. All query
// parameters are optional; paging defaults to page 1 with 10 per page.
func (h *GalleryHandler) GetFilteredGalleries(c echo.Context) error {
	f := model.GalleryFilter{
		Category: c.QueryParam("category"),
		Title:    c.QueryParam("title"),
		Nickname: c.QueryParam("nickname"),
		Page:     1,
		PerPage:  10,
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		f.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && n > 0 {
		f.PerPage = n
	}

	galleries, err := h.Galleries.GetFiltered(c.Request().Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("filtered gallery search failed")
		return fail(c, http.StatusBadRequest, "failed to get galleries")
	}
	if galleries == nil {
		galleries = []*model.Gallery{}
	}
	return ok(c, "get galleries success", galleries)
}

// GetPreviewGalleries handles GET /galleries/preview/:code where code
// selects either exhibitions that have not started yet ("upcoming") or
// ones currently open ("todays"). Any other code is rejected with 400.
func (h *GalleryHandler) GetPreviewGalleries(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		galleries []*model.Gallery
		err       error
	)
	switch c.Param("code") {
	case "upcoming":
		galleries, err = h.Galleries.GetUpcoming(ctx)
	case "todays":
		galleries, err = h.Galleries.GetTodays(ctx)
	default:
		return fail(c, http.StatusBadRequest, "unknown preview code")
	}
	if err != nil {
		log.Error().Err(err).Str("code", c.Param("code")).Msg("preview query failed")
		return fail(c, http.StatusBadRequest, "failed to get galleries")
	}

	results := make([]previewItem, 0, len(galleries))
	for _, g := range galleries {
		author, err := h.Users.GetByID(ctx, g.AuthorID)
		if err != nil {
			log.Error().Err(err).Uint64("author_id", g.AuthorID).Msg("author join failed")
			return fail(c, http.StatusBadRequest, "failed to get galleries")
		}
		results = append(results, previewItem{
			ID:          g.ID,
			Title:       g.Title,
			Author:      authorPart{Nickname: author.Nickname, Contact: author.Contact, Email: author.Email},
			PosterURL:   g.PosterURL,
			Description: g.Description,
			StartDate:   previewDate(g.StartDate),
			EndDate:     previewDate(g.EndDate),
		})
	}
	return ok(c, "get galleries success", results)
}

// GetGalleryByID handles GET /galleries/:id and composes the gallery,
// its halls and the author profile into one detail payload.
func (h *GalleryHandler) GetGalleryByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid gallery id")
	}
	ctx := c.Request().Context()

	gallery, err := h.Galleries.GetByID(ctx, id)
	if err != nil {
		if err != repository.ErrGalleryNotFound {
			log.Error().Err(err).Uint64("gallery_id", id).Msg("get gallery failed")
		}
		return fail(c, http.StatusBadRequest, "failed to get gallery")
	}
	halls, err := h.Halls.GetByGalleryID(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("gallery_id", id).Msg("get halls failed")
		return fail(c, http.StatusBadRequest, "failed to get gallery")
	}
	author, err := h.Users.GetByID(ctx, gallery.AuthorID)
	if err != nil {
		log.Error().Err(err).Uint64("author_id", gallery.AuthorID).Msg("author join failed")
		return fail(c, http.StatusBadRequest, "failed to get gallery")
	}

	detail := galleryDetail{
		AuthorID:    gallery.AuthorID,
		Author:      authorPart{Nickname: author.Nickname, Contact: author.Contact, Email: author.Email},
		Title:       gallery.Title,
		Category:    gallery.Category,
		StartDate:   gallery.StartDate,
		EndDate:     gallery.EndDate,
		Description: gallery.Description,
		PosterURL:   gallery.PosterURL,
		Halls:       make([]hallPart, 0, len(halls)),
	}
	for _, hall := range halls {
		detail.Halls = append(detail.Halls, hallPart{HallID: hall.ID, HallName: hall.HallName})
	}
	return ok(c, "get gallery success", detail)
}
