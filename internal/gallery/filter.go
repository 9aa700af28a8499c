package gallery

import (
	"strings"

	"photo-gallery/internal/domain/photo"
)

// NormalizeQuery lower-cases and trims a search query
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether p matches an already normalized query. The empty
// query matches every photo.
func Matches(p photo.Record, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{p.Description, p.Tags, p.Location, p.Category} {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Filter returns the photos matching query in their original order. The
// result never aliases photos.
func Filter(photos []photo.Record, query string) []photo.Record {
	query = NormalizeQuery(query)
	out := make([]photo.Record, 0, len(photos))
	for _, p := range photos {
		if Matches(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(photos []photo.Record, id int64) int {
	for i := range photos {
		if photos[i].ID == id {
			return i
		}
	}
	return -1
}

func removeID(photos []photo.Record, id int64) []photo.Record {
	out := photos[:0:0]
	for _, p := range photos {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
