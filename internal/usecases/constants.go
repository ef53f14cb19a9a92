package usecases

import "regexp"

const (
	// MaxNameLength bounds category, project and team names.
	MaxNameLength = 100
	// MaxTitleLength bounds prompt titles.
	MaxTitleLength = 200

	// DefaultHistoryPageSize is the page size for version history listings.
	DefaultHistoryPageSize = 20
)

// colorPattern matches a six-digit hex color with leading '#'.
var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
