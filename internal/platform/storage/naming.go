package storage

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

const maxSanitizedLen = 200

// SanitizeFilename keeps ASCII letters, digits, dot, underscore and hyphen,
// replacing everything else with a single underscore.
func SanitizeFilename(filename string) string {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" {
		return "unnamed_file"
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(trimmed, "_")
	sanitized = strings.ReplaceAll(sanitized, "..", "_")
	sanitized = repeatedUnderscores.ReplaceAllString(sanitized, "_")

	if len(sanitized) > maxSanitizedLen {
		sanitized = sanitized[len(sanitized)-maxSanitizedLen:]
	}

	return sanitized
}

// UniqueObjectName returns "<uuid>_<sanitized original name>", or a bare UUID
// when there is no original name.
func UniqueObjectName(originalFilename string) string {
	id := uuid.NewString()
	if strings.TrimSpace(originalFilename) == "" {
		return id
	}
	return id + "_" + SanitizeFilename(originalFilename)
}
