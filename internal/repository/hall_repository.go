package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haneul-dev/virtual-gallery/internal/model"
)

// HallRepo provides persistence for hall records. Halls are always
// addressed through their owning gallery except for id-based updates.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall referencing its gallery. After insert the
// record is read back so ID and timestamps are populated.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const qInsert = `INSERT INTO halls (gallery_id, hall_name, images_data) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.GalleryID, h.HallName, h.ImagesData)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT id, gallery_id, hall_name, images_data, created_at, updated_at FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, h.ID).
		Scan(&h.ID, &h.GalleryID, &h.HallName, &h.ImagesData, &h.CreatedAt, &h.UpdatedAt)
}

// UpdateByID replaces a hall's name and image list. Returns
// ErrHallNotFound when the id does not resolve.
func (r *HallRepo) UpdateByID(ctx context.Context, hallID uint64, p *model.HallPatch) error {
	const q = `UPDATE halls SET hall_name = ?, images_data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.HallName, p.ImagesData, hallID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM halls WHERE id = ?`, hallID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrHallNotFound
			}
			return err
		}
	}
	return nil
}

// GetByGalleryID returns all halls of a gallery ordered by id.
func (r *HallRepo) GetByGalleryID(ctx context.Context, galleryID uint64) ([]*model.Hall, error) {
	const q = `SELECT id, gallery_id, hall_name, images_data, created_at, updated_at
	           FROM halls WHERE gallery_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hall
	for rows.Next() {
		h := new(model.Hall)
		if err := rows.Scan(&h.ID, &h.GalleryID, &h.HallName, &h.ImagesData, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByGalleryID removes every hall referencing the gallery. Zero
// affected rows is not an error; a gallery may have no halls.
func (r *HallRepo) DeleteByGalleryID(ctx context.Context, galleryID uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE gallery_id = ?`, galleryID)
	return err
}
