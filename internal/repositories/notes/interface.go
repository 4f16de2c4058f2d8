package notes

import (
	"context"

	"notekeeper/internal/models"
)

// Repository describes CRUD and query operations for locally stored notes.
// Implementations are backed by the local SQLite database.
//
// Insert and InsertAll upsert by NoteID (replace-on-conflict). Watch and
// WatchByID return long-lived channels that receive the current result set
// immediately and again after every mutation of the notes table; they are
// closed when ctx ends.
type Repository interface {
	// Insert upserts a single note by NoteID.
	Insert(ctx context.Context, note *models.Note) error

	// InsertAll upserts a batch of notes in one transaction.
	InsertAll(ctx context.Context, notes []models.Note) error

	// GetAll returns all notes ordered by creation date ascending.
	GetAll(ctx context.Context) ([]models.Note, error)

	// GetByID returns the note with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// GetAllPending returns the notes with sync_flag=0 (awaiting upload).
	GetAllPending(ctx context.Context) ([]models.Note, error)

	// DeleteByID removes a note; absent ids are not an error.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every note.
	DeleteAll(ctx context.Context) error

	// Watch streams the full note set ordered by creation date.
	Watch(ctx context.Context) (<-chan []models.Note, error)

	// WatchByID streams a single note; nil is sent when the note is absent.
	WatchByID(ctx context.Context, id string) (<-chan *models.Note, error)
}
