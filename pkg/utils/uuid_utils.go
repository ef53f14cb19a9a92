package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails (highly unlikely)
		return uuid.New()
	}
	return id
}

// EnsureUUID returns id unless it is the zero value, in which case a fresh
// v7 id is generated. Rows created through the repositories get time-ordered
// ids without relying on a database default.
func EnsureUUID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return GenerateUUIDv7()
	}
	return id
}
