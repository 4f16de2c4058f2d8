package notesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"notekeeper/internal/auth"
	"notekeeper/internal/common"
	"notekeeper/internal/logging"
	"notekeeper/internal/models"
	"notekeeper/internal/outcome"
	"notekeeper/internal/remote"
	"notekeeper/internal/repositories/notes"
)

const defaultFetchTimeout = 50 * time.Second

// SyncRepository implements Repository over the local notes store and the
// remote gateways.
type SyncRepository struct {
	local notes.Repository
	docs  remote.DocumentStore
	blobs remote.BlobStore
	auth  auth.Provider
	log   logging.Logger

	// fetchTimeout bounds a single remote query inside FetchRemoteNotes.
	fetchTimeout time.Duration
}

// NewSyncRepository wires the sync core together.
func NewSyncRepository(local notes.Repository, docs remote.DocumentStore, blobs remote.BlobStore, provider auth.Provider, log logging.Logger) *SyncRepository {
	return &SyncRepository{
		local:        local,
		docs:         docs,
		blobs:        blobs,
		auth:         provider,
		log:          log,
		fetchTimeout: defaultFetchTimeout,
	}
}

func (r *SyncRepository) SaveLocal(ctx context.Context, note *models.Note) error {
	return r.local.Insert(ctx, note)
}

func (r *SyncRepository) SaveAllLocal(ctx context.Context, notes []models.Note) error {
	return r.local.InsertAll(ctx, notes)
}

func (r *SyncRepository) Note(ctx context.Context, noteID string) (*models.Note, error) {
	return r.local.GetByID(ctx, noteID)
}

func (r *SyncRepository) Watch(ctx context.Context) (<-chan []models.Note, error) {
	return r.local.Watch(ctx)
}

func (r *SyncRepository) WatchNote(ctx context.Context, noteID string) (<-chan *models.Note, error) {
	return r.local.WatchByID(ctx, noteID)
}

func (r *SyncRepository) Pending(ctx context.Context) ([]models.Note, error) {
	return r.local.GetAllPending(ctx)
}

func (r *SyncRepository) DeleteLocal(ctx context.Context, noteID string) error {
	return r.local.DeleteByID(ctx, noteID)
}

func (r *SyncRepository) ClearLocal(ctx context.Context) error {
	return r.local.DeleteAll(ctx)
}

// UploadNote writes the note's metadata document remotely. Only metadata
// travels: the locally attached media list stays local, the already resolved
// MediaID references go along.
func (r *SyncRepository) UploadNote(ctx context.Context, note *models.Note) outcome.Outcome[struct{}] {
	doc := remote.NoteDocument{
		NoteID:      note.NoteID,
		Title:       note.Title,
		Description: note.Description,
		Category:    note.Category,
		MediaID:     note.MediaID,
		UserID:      note.UserID,
		DateCreated: note.DateCreated,
	}
	if err := r.docs.PutNoteDocument(ctx, doc); err != nil {
		return outcome.Err[struct{}](classifyRemoteErr(err, common.ErrRemoteWrite))
	}
	return outcome.Ok(struct{}{})
}

// UploadAllPending uploads every pending note's metadata concurrently. The
// first failure cancels the remaining uploads; notes whose uploads completed
// before the failure stay uploaded, so the operation is not atomic.
func (r *SyncRepository) UploadAllPending(ctx context.Context) outcome.Outcome[struct{}] {
	pending, err := r.local.GetAllPending(ctx)
	if err != nil {
		return outcome.Err[struct{}](err)
	}
	if len(pending) == 0 {
		return outcome.Ok(struct{}{})
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range pending {
		note := pending[i]
		g.Go(func() error {
			if o := r.UploadNote(ctx, &note); !o.IsOk() {
				return fmt.Errorf("note %s: %w", note.NoteID, o.Err())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcome.Err[struct{}](err)
	}
	return outcome.Ok(struct{}{})
}

// UploadMedia uploads the note's attached media concurrently. Each item
// writes its reference into its own slot, so results keep the attachment
// order; the first failure cancels the remaining uploads.
func (r *SyncRepository) UploadMedia(ctx context.Context, note *models.Note) outcome.Outcome[[]MediaRef] {
	media, err := note.Media()
	if err != nil {
		return outcome.Err[[]MediaRef](err)
	}
	if len(media) == 0 {
		return outcome.Ok[[]MediaRef](nil)
	}

	refs := make([]MediaRef, len(media))
	g, ctx := errgroup.WithContext(ctx)
	for i := range media {
		i, m := i, media[i]
		g.Go(func() error {
			key, err := m.Type.StorageKey(note.NoteID)
			if err != nil {
				return err
			}
			url, err := r.blobs.UploadBlob(ctx, m.URI, key)
			if err != nil {
				return classifyRemoteErr(err, common.ErrBlobUpload)
			}
			refs[i] = MediaRef{Type: m.Type, URL: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcome.Err[[]MediaRef](err)
	}
	return outcome.Ok(refs)
}

// FetchRemoteNotes queries the signed-in user's remote documents. Returned
// notes are marked confirmed (sync flag 1) and carry no local media list.
func (r *SyncRepository) FetchRemoteNotes(ctx context.Context) outcome.Outcome[[]models.Note] {
	userID, err := r.auth.CurrentUserID()
	if err != nil {
		return outcome.Err[[]models.Note](err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	docs, err := r.docs.QueryNotesByOwner(ctx, userID)
	if err != nil {
		return outcome.Err[[]models.Note](classifyRemoteErr(err, common.ErrRemoteRead))
	}

	result := make([]models.Note, 0, len(docs))
	for _, d := range docs {
		result = append(result, models.Note{
			NoteID:      d.NoteID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			MediaID:     d.MediaID,
			UserID:      d.UserID,
			DateCreated: d.DateCreated,
			SyncFlag:    1,
		})
	}
	r.log.Debug(ctx, "fetched remote notes", "count", len(result))
	return outcome.Ok(result)
}

// DeleteRemoteNote removes the note's remote document.
func (r *SyncRepository) DeleteRemoteNote(ctx context.Context, noteID string) outcome.Outcome[struct{}] {
	if err := r.docs.DeleteNoteDocument(ctx, noteID); err != nil {
		return outcome.Err[struct{}](classifyRemoteErr(err, common.ErrRemoteDelete))
	}
	return outcome.Ok(struct{}{})
}

// classifyRemoteErr maps a deadline expiry to ErrTimeout and wraps anything
// not already carrying a domain sentinel with fallback.
func classifyRemoteErr(err error, fallback error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", common.ErrTimeout, err)
	}
	if errors.Is(err, fallback) {
		return err
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
