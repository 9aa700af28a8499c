package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photoColumnNames = []string{
	"id", "file_name", "original_file_name", "description", "presigned_url",
	"file_size", "content_type", "tags", "location", "category", "version", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (PhotoRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPhotoRepository(db), mock
}

func photoRow(id int64, description string, created time.Time) []driver.Value {
	return []driver.Value{
		id, "uuid_sunset.jpg", "sunset.jpg", description, "http://minio/photos/uuid_sunset.jpg",
		int64(2048), "image/jpeg", "sky,sea", nil, "nature", 0, created, created,
	}
}

func TestPhotoRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		now := time.Now()

		p := &Photo{
			FileName:         "uuid_sunset.jpg",
			OriginalFileName: "sunset.jpg",
			Description:      "Sunset",
			PresignedURL:     "http://minio/photos/uuid_sunset.jpg",
			FileSize:         2048,
			ContentType:      "image/jpeg",
			Tags:             NullString("sky"),
			Location:         NullString(""),
			Category:         NullString("nature"),
		}

		mock.ExpectQuery(`INSERT INTO photos`).
			WithArgs(p.FileName, p.OriginalFileName, p.Description, p.PresignedURL,
				p.FileSize, p.ContentType, p.Tags, p.Location, p.Category).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).
				AddRow(11, 0, now, now))

		require.NoError(t, repo.Create(context.Background(), p))
		assert.Equal(t, int64(11), p.ID)
		assert.Equal(t, now, p.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO photos`).WillReturnError(errors.New("duplicate key"))

		err := repo.Create(context.Background(), &Photo{FileName: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPhotoRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM photos WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(photoColumnNames).AddRow(photoRow(5, "Sunset", created)...))

		p, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), p.ID)
		assert.Equal(t, "sky,sea", p.Tags.String)
		assert.False(t, p.Location.Valid)
		assert.Equal(t, created, p.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM photos WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetByID(context.Background(), 99)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPhotoRepository_ListNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows(photoColumnNames).
			AddRow(photoRow(2, "Newer", newer)...).
			AddRow(photoRow(1, "Older", older)...))

	photos, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "Newer", photos[0].Description)
	assert.Equal(t, "Older", photos[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_ListNewestFirst_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(photoColumnNames))

	photos, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestPhotoRepository_UpdateDescription(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		created := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE photos SET description = $2 WHERE id = $1`)).
			WithArgs(int64(3), "New text").
			WillReturnRows(sqlmock.NewRows(photoColumnNames).AddRow(photoRow(3, "New text", created)...))

		p, err := repo.UpdateDescription(context.Background(), 3, "New text")
		require.NoError(t, err)
		assert.Equal(t, "New text", p.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`UPDATE photos`).
			WithArgs(int64(3), "New text").
			WillReturnRows(sqlmock.NewRows(photoColumnNames))

		_, err := repo.UpdateDescription(context.Background(), 3, "New text")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPhotoRepository_UpdatePresignedURL(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE photos SET presigned_url = $2`)).
		WithArgs(int64(4), "http://new").
		WillReturnRows(sqlmock.NewRows(photoColumnNames).AddRow(photoRow(4, "d", time.Now())...))

	p, err := repo.UpdatePresignedURL(context.Background(), 4, "http://new")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		affected  int64
		execErr   error
		expectErr error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, expectErr: ErrNotFound},
		{name: "database error", execErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			exp := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM photos WHERE id = $1`)).WithArgs(int64(8))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.Delete(context.Background(), 8)
			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.execErr != nil:
				assert.ErrorContains(t, err, "connection reset")
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPhotoRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM photos`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestNullString(t *testing.T) {
	assert.False(t, NullString("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, NullString("x"))
}
