// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// GalleryDeletedEvent is published when a gallery and its halls have
// been deleted. It carries every externally stored image reference so a
// downstream janitor can reclaim poster and hall images without
// querying the primary database.
type GalleryDeletedEvent struct {
	GalleryID uint64   `json:"gallery_id"`
	AuthorID  uint64   `json:"author_id"`
	Title     string   `json:"title"`
	PosterURL string   `json:"poster_url,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
	DeletedAt string   `json:"deleted_at"`
}
