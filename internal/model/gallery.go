// Package model holds the persistence structs shared by the
// repositories and handlers.
package model

import "time"

// Gallery mirrors the `galleries` table. Nickname is denormalized from
// the author at create time so listing endpoints avoid a user join.
type Gallery struct {
	ID          uint64    `json:"id"`
	AuthorID    uint64    `json:"authorId"`
	Nickname    string    `json:"nickname"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GalleryPatch carries the mutable fields of an update. AuthorID and
// Nickname are deliberately absent: ownership never changes through the
// API.
type GalleryPatch struct {
	Title       string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	PosterURL   string
}

// GalleryFilter is the search input of the filtered listing. Zero-value
// fields are skipped when the WHERE clause is built.
type GalleryFilter struct {
	Category string
	Title    string
	Nickname string
	Page     int
	PerPage  int
}
