package services

import (
	"context"
	"strings"
	"time"

	"notekeeper/internal/auth"
	"notekeeper/internal/common"
	"notekeeper/internal/models"
	"notekeeper/internal/notesync"
	"notekeeper/internal/outcome"
)

// NoteService builds notes for the signed-in user and exposes the watched
// queries the UI renders from.
type NoteService struct {
	repo notesync.Repository
	auth auth.Provider
	sync *SyncService

	now func() time.Time
}

// NewNoteService wires the note use cases.
func NewNoteService(repo notesync.Repository, provider auth.Provider, sync *SyncService) *NoteService {
	return &NoteService{
		repo: repo,
		auth: provider,
		sync: sync,
		now:  time.Now,
	}
}

// AddNote creates a note owned by the signed-in user and runs the full save
// path: local first, then media and metadata remotely.
func (s *NoteService) AddNote(ctx context.Context, title, description, category string, media []models.Media) outcome.Outcome[*models.Note] {
	userID, err := s.auth.CurrentUserID()
	if err != nil {
		return outcome.Err[*models.Note](err)
	}

	now := s.now()
	note := &models.Note{
		NoteID:      models.NewNoteID(userID, now),
		Title:       title,
		Description: description,
		Category:    category,
		UserID:      userID,
		DateCreated: common.FormatDate(now),
	}
	for _, m := range media {
		if err := note.AttachMedia(m); err != nil {
			return outcome.Err[*models.Note](err)
		}
	}

	if o := s.sync.SaveNote(ctx, note); !o.IsOk() {
		return outcome.Err[*models.Note](o.Err())
	}
	return outcome.Ok(note)
}

// Note returns the local note with the given id, or nil when absent.
func (s *NoteService) Note(ctx context.Context, noteID string) (*models.Note, error) {
	return s.repo.Note(ctx, noteID)
}

// WatchNote streams snapshots of one note.
func (s *NoteService) WatchNote(ctx context.Context, noteID string) (<-chan *models.Note, error) {
	return s.repo.WatchNote(ctx, noteID)
}

// AllNotes streams snapshots of the local notes matching the category filter
// and the title search. The search matches case-insensitively anywhere in
// the title; an empty search matches everything.
func (s *NoteService) AllNotes(ctx context.Context, category models.Category, search string) (<-chan []models.Note, error) {
	in, err := s.repo.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Note)
	go func() {
		defer close(out)
		for snapshot := range in {
			filtered := filterNotes(snapshot, category, search)
			select {
			case out <- filtered:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func filterNotes(all []models.Note, category models.Category, search string) []models.Note {
	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.Note, 0, len(all))
	for _, n := range all {
		if !category.Matches(n.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(n.Title), search) {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}
