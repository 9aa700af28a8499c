package database

import (
	"database/sql"
	"time"
)

// Photo is a row of the photos table
type Photo struct {
	ID               int64
	FileName         string
	OriginalFileName string
	Description      string
	PresignedURL     string
	FileSize         int64
	ContentType      string
	Tags             sql.NullString
	Location         sql.NullString
	Category         sql.NullString
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NullString maps an empty string to SQL NULL
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
