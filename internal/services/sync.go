// Package services holds the application use cases on top of the sync core:
// saving and syncing notes, watching queries, and the account lifecycle.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"notekeeper/internal/common"
	"notekeeper/internal/logging"
	"notekeeper/internal/models"
	"notekeeper/internal/notesync"
	"notekeeper/internal/outcome"
)

// Timeouts bounds each kind of remote operation. Metadata writes are small
// and quick; media uploads move real bytes and get the generous bound.
type Timeouts struct {
	Metadata time.Duration
	Media    time.Duration
	Fetch    time.Duration
}

// DefaultTimeouts returns the standard operation bounds.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Metadata: 10 * time.Second,
		Media:    100 * time.Second,
		Fetch:    50 * time.Second,
	}
}

// SyncService implements the save/sync/delete use cases. Every operation is
// local-first: the local store is the source of truth the UI watches, and
// remote writes only confirm what is already saved.
type SyncService struct {
	repo     notesync.Repository
	log      logging.Logger
	timeouts Timeouts
}

// NewSyncService builds the service with the given operation bounds.
func NewSyncService(repo notesync.Repository, log logging.Logger, timeouts Timeouts) *SyncService {
	return &SyncService{repo: repo, log: log, timeouts: timeouts}
}

// SaveNote persists the note locally, then pushes media and metadata remotely
// and flips the sync flag to confirmed. A remote failure leaves the note
// saved locally with sync flag 0, to be retried by UploadPendingNotes.
func (s *SyncService) SaveNote(ctx context.Context, note *models.Note) outcome.Outcome[struct{}] {
	note.SyncFlag = 0
	if err := s.repo.SaveLocal(ctx, note); err != nil {
		return outcome.Err[struct{}](fmt.Errorf("%w: %w", common.ErrLocalPersist, err))
	}

	if o := s.syncNote(ctx, note); !o.IsOk() {
		s.log.Warn(ctx, "note saved locally but not synced", "noteId", note.NoteID, "error", o.Err())
		return o
	}

	note.SyncFlag = 1
	if err := s.repo.SaveLocal(ctx, note); err != nil {
		return outcome.Err[struct{}](fmt.Errorf("%w: %w", common.ErrLocalPersist, err))
	}
	return outcome.Ok(struct{}{})
}

// syncNote uploads the note's media first, records the resulting references
// in MediaID, then uploads the metadata document.
func (s *SyncService) syncNote(ctx context.Context, note *models.Note) outcome.Outcome[struct{}] {
	refs := s.UploadMedia(ctx, note)
	if !refs.IsOk() {
		return outcome.Err[struct{}](refs.Err())
	}

	if urls := refURLs(refs.Value()); len(urls) > 0 {
		note.MediaID = strings.Join(urls, ",")
	}

	return s.UploadNote(ctx, note)
}

// UploadNote pushes the note's metadata document with the metadata deadline.
func (s *SyncService) UploadNote(ctx context.Context, note *models.Note) outcome.Outcome[struct{}] {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Metadata)
	defer cancel()
	return timeoutAware(s.repo.UploadNote(ctx, note))
}

// UploadMedia pushes the note's attached media with the media deadline.
func (s *SyncService) UploadMedia(ctx context.Context, note *models.Note) outcome.Outcome[[]notesync.MediaRef] {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Media)
	defer cancel()
	return timeoutAware(s.repo.UploadMedia(ctx, note))
}

// UploadPendingNotes pushes every locally pending note, media before
// metadata, concurrently across notes. The first failure cancels the rest;
// sync flags are not flipped here, so anything that did not confirm stays
// pending.
func (s *SyncService) UploadPendingNotes(ctx context.Context) outcome.Outcome[struct{}] {
	pending, err := s.repo.Pending(ctx)
	if err != nil {
		return outcome.Err[struct{}](err)
	}
	if len(pending) == 0 {
		return outcome.Ok(struct{}{})
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range pending {
		note := pending[i]
		g.Go(func() error {
			if o := s.syncNote(gctx, &note); !o.IsOk() {
				return fmt.Errorf("note %s: %w", note.NoteID, o.Err())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcome.Err[struct{}](err)
	}

	s.log.Info(ctx, "uploaded pending notes", "count", len(pending))
	return outcome.Ok(struct{}{})
}

// FetchAndSaveNotes pulls the signed-in user's remote notes and replaces
// their local copies, already marked confirmed.
func (s *SyncService) FetchAndSaveNotes(ctx context.Context) outcome.Outcome[[]models.Note] {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Fetch)
	defer cancel()

	fetched := timeoutAware(s.repo.FetchRemoteNotes(ctx))
	if !fetched.IsOk() {
		return fetched
	}

	if err := s.repo.SaveAllLocal(ctx, fetched.Value()); err != nil {
		return outcome.Err[[]models.Note](fmt.Errorf("%w: %w", common.ErrLocalPersist, err))
	}
	return fetched
}

// DeleteNote removes the note remotely first and locally only after the
// remote delete is confirmed, so an offline delete does not silently lose
// the remote copy.
func (s *SyncService) DeleteNote(ctx context.Context, noteID string) outcome.Outcome[struct{}] {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Metadata)
	defer cancel()

	if o := timeoutAware(s.repo.DeleteRemoteNote(ctx, noteID)); !o.IsOk() {
		return o
	}

	if err := s.repo.DeleteLocal(ctx, noteID); err != nil {
		return outcome.Err[struct{}](fmt.Errorf("%w: %w", common.ErrLocalPersist, err))
	}
	return outcome.Ok(struct{}{})
}

// ClearLocal wipes the local note store.
func (s *SyncService) ClearLocal(ctx context.Context) error {
	return s.repo.ClearLocal(ctx)
}

func refURLs(refs []notesync.MediaRef) []string {
	urls := make([]string, 0, len(refs))
	for _, r := range refs {
		urls = append(urls, r.URL)
	}
	return urls
}

// timeoutAware rewraps a failure caused by an expired deadline as ErrTimeout.
func timeoutAware[T any](o outcome.Outcome[T]) outcome.Outcome[T] {
	if o.IsOk() {
		return o
	}
	err := o.Err()
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, common.ErrTimeout) {
		return outcome.Err[T](fmt.Errorf("%w: %w", common.ErrTimeout, err))
	}
	return o
}
