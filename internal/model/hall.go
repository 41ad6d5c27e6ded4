package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ImageData describes one image hung inside a hall. Only the URL is
// required; title and description are display metadata.
type ImageData struct {
	ImageURL         string `json:"imageUrl"`
	ImageTitle       string `json:"imageTitle,omitempty"`
	ImageDescription string `json:"imageDescription,omitempty"`
}

// ImagesData is the ordered image list of a hall. It is persisted as a
// JSON column and implements driver.Valuer / sql.Scanner so repositories
// can pass it straight to database/sql.
type ImagesData []ImageData

func (d ImagesData) Value() (driver.Value, error) {
	if d == nil {
		d = ImagesData{}
	}
	return json.Marshal(d)
}

func (d *ImagesData) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*d = nil
			return nil
		}
		return json.Unmarshal(v, d)
	case string:
		if v == "" {
			*d = nil
			return nil
		}
		return json.Unmarshal([]byte(v), d)
	}
	return fmt.Errorf("imagesData: cannot scan %T", src)
}

// Hall is a named sub-section of a gallery. A hall never outlives its
// gallery: deleting a gallery removes all of its halls first.
type Hall struct {
	ID         uint64     `json:"hallId"`
	GalleryID  uint64     `json:"galleryId"`
	HallName   string     `json:"hallName"`
	ImagesData ImagesData `json:"imagesData"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// HallPatch carries the mutable hall fields for an update.
type HallPatch struct {
	HallName   string
	ImagesData ImagesData
}
