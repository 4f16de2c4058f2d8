package users

import (
	"context"

	"notekeeper/internal/models"
)

// Repository describes operations for the locally mirrored user record.
type Repository interface {
	// Insert upserts a user by UserID.
	Insert(ctx context.Context, user *models.User) error

	// InsertAll upserts users received from the remote side; SyncFlag is
	// forced to 1 on each record before writing.
	InsertAll(ctx context.Context, users []models.User) error

	// GetByID returns the user with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// DeleteAll wipes the user table (logout).
	DeleteAll(ctx context.Context) error
}
