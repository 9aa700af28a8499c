package database

import (
	"context"
	"database/sql"
)

// PhotoRepository defines data access for the photos table
type PhotoRepository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id int64) (*Photo, error)
	GetByFileName(ctx context.Context, fileName string) (*Photo, error)
	ListNewestFirst(ctx context.Context) ([]*Photo, error)
	UpdateDescription(ctx context.Context, id int64, description string) (*Photo, error)
	UpdatePresignedURL(ctx context.Context, id int64, url string) (*Photo, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

const photoColumns = `id, file_name, original_file_name, description, presigned_url,
	file_size, content_type, tags, location, category, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*Photo, error) {
	p := &Photo{}
	err := row.Scan(
		&p.ID,
		&p.FileName,
		&p.OriginalFileName,
		&p.Description,
		&p.PresignedURL,
		&p.FileSize,
		&p.ContentType,
		&p.Tags,
		&p.Location,
		&p.Category,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPhotos(rows *sql.Rows) ([]*Photo, error) {
	defer func() { _ = rows.Close() }() //nolint:errcheck // Resource cleanup

	photos := make([]*Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	return photos, rows.Err()
}
