package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/haneul-dev/virtual-gallery/internal/model"
)

// galleryCols is the column list shared by every gallery SELECT so scans
// stay in one place.
const galleryCols = "id, author_id, nickname, title, category, start_date, end_date, description, poster_url, created_at, updated_at"

// GalleryRepo provides persistence for gallery records.
type GalleryRepo struct {
	db *sql.DB
}

// NewGalleryRepo constructs a GalleryRepo with the given DB handle.
func NewGalleryRepo(db *sql.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

func scanGallery(row interface{ Scan(...any) error }, g *model.Gallery) error {
	return row.Scan(&g.ID, &g.AuthorID, &g.Nickname, &g.Title, &g.Category,
		&g.StartDate, &g.EndDate, &g.Description, &g.PosterURL, &g.CreatedAt, &g.UpdatedAt)
}

func (r *GalleryRepo) queryList(ctx context.Context, q string, args ...any) ([]*model.Gallery, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Gallery
	for rows.Next() {
		g := new(model.Gallery)
		if err := scanGallery(rows, g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new gallery. AuthorID and Nickname must already be
// set from the authenticated caller. After insert the record is read
// back so ID and timestamps are populated.
func (r *GalleryRepo) Create(ctx context.Context, g *model.Gallery) error {
	const qInsert = `INSERT INTO galleries (author_id, nickname, title, category, start_date, end_date, description, poster_url)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		g.AuthorID, g.Nickname, g.Title, g.Category, g.StartDate, g.EndDate, g.Description, g.PosterURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	const qSelect = `SELECT ` + galleryCols + ` FROM galleries WHERE id = ?`
	return scanGallery(r.db.QueryRowContext(ctx, qSelect, g.ID), g)
}

// GetAll returns every gallery ordered by id.
func (r *GalleryRepo) GetAll(ctx context.Context) ([]*model.Gallery, error) {
	return r.queryList(ctx, `SELECT `+galleryCols+` FROM galleries ORDER BY id`)
}

// GetFiltered returns one page of galleries matching the filter. The
// WHERE clause is built dynamically from the provided fields; ordering
// by id keeps pagination stable across repeated calls.
func (r *GalleryRepo) GetFiltered(ctx context.Context, f model.GalleryFilter) ([]*model.Gallery, error) {
	where := []string{}
	args := []any{}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Nickname != "" {
		where = append(where, "nickname = ?")
		args = append(args, f.Nickname)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 10
	}
	args = append(args, perPage, (page-1)*perPage)

	q := `SELECT ` + galleryCols + ` FROM galleries WHERE ` + cond + ` ORDER BY id LIMIT ? OFFSET ?`
	return r.queryList(ctx, q, args...)
}

// GetUpcoming returns galleries whose exhibition has not started yet.
func (r *GalleryRepo) GetUpcoming(ctx context.Context) ([]*model.Gallery, error) {
	return r.queryList(ctx, `SELECT `+galleryCols+` FROM galleries WHERE start_date > NOW() ORDER BY start_date, id`)
}

// GetTodays returns galleries currently open: start_date <= now <= end_date.
func (r *GalleryRepo) GetTodays(ctx context.Context) ([]*model.Gallery, error) {
	return r.queryList(ctx, `SELECT `+galleryCols+` FROM galleries WHERE start_date <= NOW() AND end_date >= NOW() ORDER BY start_date, id`)
}

// GetByID returns a single gallery or ErrGalleryNotFound.
func (r *GalleryRepo) GetByID(ctx context.Context, id uint64) (*model.Gallery, error) {
	const q = `SELECT ` + galleryCols + ` FROM galleries WHERE id = ?`
	g := new(model.Gallery)
	if err := scanGallery(r.db.QueryRowContext(ctx, q, id), g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return g, nil
}

// GetByAuthor returns all galleries owned by the given author.
func (r *GalleryRepo) GetByAuthor(ctx context.Context, authorID uint64) ([]*model.Gallery, error) {
	return r.queryList(ctx, `SELECT `+galleryCols+` FROM galleries WHERE author_id = ? ORDER BY id`, authorID)
}

// GetAuthorID returns just the owning author id for a gallery. Used for
// ownership checks without fetching the full record.
func (r *GalleryRepo) GetAuthorID(ctx context.Context, id uint64) (uint64, error) {
	var authorID uint64
	err := r.db.QueryRowContext(ctx, `SELECT author_id FROM galleries WHERE id = ?`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrGalleryNotFound
		}
		return 0, err
	}
	return authorID, nil
}

// UpdateByID replaces the mutable gallery fields. Returns
// ErrGalleryNotFound when the id does not resolve.
func (r *GalleryRepo) UpdateByID(ctx context.Context, id uint64, p *model.GalleryPatch) error {
	const q = `UPDATE galleries
	           SET title = ?, category = ?, start_date = ?, end_date = ?, description = ?, poster_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Title, p.Category, p.StartDate, p.EndDate, p.Description, p.PosterURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing row from a no-op update on an existing row.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM galleries WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGalleryNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteByID removes a gallery. A second delete of the same id returns
// ErrGalleryNotFound rather than silently succeeding.
func (r *GalleryRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM galleries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGalleryNotFound
	}
	return nil
}
