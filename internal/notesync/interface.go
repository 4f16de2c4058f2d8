// Package notesync is the offline-first core: notes are written locally
// first and confirmed remotely after, with the sync flag recording which
// state each record is in (0 local-only, 1 confirmed remote).
package notesync

import (
	"context"

	"notekeeper/internal/models"
	"notekeeper/internal/outcome"
)

// MediaRef pairs an uploaded media item with its remote download reference.
type MediaRef struct {
	Type models.MediaType
	URL  string
}

// Repository combines the local note store with the remote document and
// blob gateways. Local operations never touch the network; the Upload*,
// Fetch* and DeleteRemote* operations do.
type Repository interface {
	// SaveLocal upserts the note locally, keeping its sync flag as given.
	SaveLocal(ctx context.Context, note *models.Note) error

	// SaveAllLocal upserts notes in one transaction.
	SaveAllLocal(ctx context.Context, notes []models.Note) error

	// Note returns the local note with the given id, or nil when absent.
	Note(ctx context.Context, noteID string) (*models.Note, error)

	// Watch streams snapshots of all local notes, ordered by creation date.
	Watch(ctx context.Context) (<-chan []models.Note, error)

	// WatchNote streams snapshots of one note; absent notes emit nil.
	WatchNote(ctx context.Context, noteID string) (<-chan *models.Note, error)

	// Pending returns local notes not yet confirmed remote (sync flag 0).
	Pending(ctx context.Context) ([]models.Note, error)

	// DeleteLocal removes the note from the local store.
	DeleteLocal(ctx context.Context, noteID string) error

	// ClearLocal wipes the local note store.
	ClearLocal(ctx context.Context) error

	// UploadNote writes the note's metadata document remotely. Media is not
	// uploaded here; the note's MediaID must already hold its references.
	UploadNote(ctx context.Context, note *models.Note) outcome.Outcome[struct{}]

	// UploadAllPending uploads every pending note's metadata concurrently,
	// cancelling the remaining uploads on the first failure.
	UploadAllPending(ctx context.Context) outcome.Outcome[struct{}]

	// UploadMedia uploads the note's attached media concurrently and returns
	// one reference per item, in the order attached.
	UploadMedia(ctx context.Context, note *models.Note) outcome.Outcome[[]MediaRef]

	// FetchRemoteNotes returns the signed-in user's notes from the remote
	// store, each marked confirmed (sync flag 1).
	FetchRemoteNotes(ctx context.Context) outcome.Outcome[[]models.Note]

	// DeleteRemoteNote removes the note's remote document.
	DeleteRemoteNote(ctx context.Context, noteID string) outcome.Outcome[struct{}]
}
