package implementations

import (
	"context"
	"errors"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/platform/database"
)

// PhotoRepositoryAdapter adapts database.PhotoRepository to photo.Repository
type PhotoRepositoryAdapter struct {
	dbRepo database.PhotoRepository
}

var _ photo.Repository = (*PhotoRepositoryAdapter)(nil)

// NewPhotoRepositoryAdapter creates a domain repository adapter
func NewPhotoRepositoryAdapter(dbRepo database.PhotoRepository) *PhotoRepositoryAdapter {
	return &PhotoRepositoryAdapter{dbRepo: dbRepo}
}

func (a *PhotoRepositoryAdapter) Create(ctx context.Context, p *photo.Photo) error {
	row := toRow(p)
	if err := a.dbRepo.Create(ctx, row); err != nil {
		return err
	}

	p.ID = row.ID
	p.Version = row.Version
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (a *PhotoRepositoryAdapter) GetByID(ctx context.Context, id int64) (*photo.Photo, error) {
	row, err := a.dbRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toDomain(row), nil
}

func (a *PhotoRepositoryAdapter) List(ctx context.Context) ([]*photo.Photo, error) {
	rows, err := a.dbRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	photos := make([]*photo.Photo, 0, len(rows))
	for _, row := range rows {
		photos = append(photos, toDomain(row))
	}
	return photos, nil
}

func (a *PhotoRepositoryAdapter) UpdateDescription(ctx context.Context, id int64, description string) (*photo.Photo, error) {
	row, err := a.dbRepo.UpdateDescription(ctx, id, description)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toDomain(row), nil
}

func (a *PhotoRepositoryAdapter) UpdatePresignedURL(ctx context.Context, id int64, url string) (*photo.Photo, error) {
	row, err := a.dbRepo.UpdatePresignedURL(ctx, id, url)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toDomain(row), nil
}

func (a *PhotoRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	return mapRepoError(a.dbRepo.Delete(ctx, id))
}

func mapRepoError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return photo.ErrPhotoNotFound
	}
	return err
}

func toRow(p *photo.Photo) *database.Photo {
	return &database.Photo{
		ID:               p.ID,
		FileName:         p.FileName,
		OriginalFileName: p.OriginalFileName,
		Description:      p.Description,
		PresignedURL:     p.PresignedURL,
		FileSize:         p.FileSize,
		ContentType:      p.ContentType,
		Tags:             database.NullString(p.Tags),
		Location:         database.NullString(p.Location),
		Category:         database.NullString(p.Category),
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toDomain(row *database.Photo) *photo.Photo {
	return &photo.Photo{
		ID:               row.ID,
		FileName:         row.FileName,
		OriginalFileName: row.OriginalFileName,
		Description:      row.Description,
		PresignedURL:     row.PresignedURL,
		FileSize:         row.FileSize,
		ContentType:      row.ContentType,
		Tags:             row.Tags.String,
		Location:         row.Location.String,
		Category:         row.Category.String,
		Version:          row.Version,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
