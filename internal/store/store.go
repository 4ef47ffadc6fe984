// Package store persists sheet snapshots and user records in Redis.
package store

import (
	"context"
	"errors"

	"ethersheet/internal/models"
)

var ErrEmptyID = errors.New("store: empty id")

// SheetStore persists sheet snapshots keyed by sheet id.
type SheetStore interface {
	// FindOrCreate returns the stored sheet, creating an empty one atomically
	// on first access.
	FindOrCreate(ctx context.Context, sheetID string) (models.Sheet, error)
	// Save overwrites the stored data. Last write wins.
	Save(ctx context.Context, sheetID, data string) error
}

// UserDirectory resolves user records keyed by the caller-supplied user id.
type UserDirectory interface {
	FindOrCreate(ctx context.Context, userID string) (models.User, error)
}
