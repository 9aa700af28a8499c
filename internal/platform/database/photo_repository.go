package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type photoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a PhotoRepository backed by db
func NewPhotoRepository(db *sql.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create inserts a photo and fills in its generated columns
func (r *photoRepository) Create(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO photos (
			file_name, original_file_name, description, presigned_url,
			file_size, content_type, tags, location, category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.FileName,
		p.OriginalFileName,
		p.Description,
		p.PresignedURL,
		p.FileSize,
		p.ContentType,
		p.Tags,
		p.Location,
		p.Category,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}

	return nil
}

func (r *photoRepository) getOne(ctx context.Context, query string, args ...any) (*Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// GetByID retrieves a photo by its ID
func (r *photoRepository) GetByID(ctx context.Context, id int64) (*Photo, error) {
	return r.getOne(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = $1`, id)
}

// GetByFileName retrieves a photo by its storage object name
func (r *photoRepository) GetByFileName(ctx context.Context, fileName string) (*Photo, error) {
	return r.getOne(ctx, `SELECT `+photoColumns+` FROM photos WHERE file_name = $1`, fileName)
}

// ListNewestFirst returns every photo ordered by creation time, newest first
func (r *photoRepository) ListNewestFirst(ctx context.Context) ([]*Photo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+photoColumns+` FROM photos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return scanPhotos(rows)
}

// UpdateDescription sets the description and returns the updated row
func (r *photoRepository) UpdateDescription(ctx context.Context, id int64, description string) (*Photo, error) {
	return r.getOne(ctx,
		`UPDATE photos SET description = $2 WHERE id = $1 RETURNING `+photoColumns,
		id, description)
}

// UpdatePresignedURL stores a regenerated URL and returns the updated row
func (r *photoRepository) UpdatePresignedURL(ctx context.Context, id int64, url string) (*Photo, error) {
	return r.getOne(ctx,
		`UPDATE photos SET presigned_url = $2 WHERE id = $1 RETURNING `+photoColumns,
		id, url)
}

// Delete removes a photo row
func (r *photoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of stored photos
func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}
