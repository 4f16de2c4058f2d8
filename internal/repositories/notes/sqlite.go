package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notekeeper/internal/dbx"
	"notekeeper/internal/models"
)

const noteColumns = `note_id, title, description, note_category, media_list, media_id, user_id, date_created, sync_flag`

// SQLiteRepository implements Repository over a local SQLite database.
// All mutations notify active Watch subscribers.
type SQLiteRepository struct {
	db       *sql.DB
	notifier *notifier
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: newNotifier()}
}

func insertOne(ctx context.Context, tx dbx.DBTX, n *models.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(note_id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				note_category = excluded.note_category,
				media_list = excluded.media_list,
				media_id = excluded.media_id,
				user_id = excluded.user_id,
				date_created = excluded.date_created,
				sync_flag = excluded.sync_flag
	`
	_, err := tx.ExecContext(ctx, query,
		n.NoteID, n.Title, n.Description, n.Category, n.MediaList, n.MediaID, n.UserID, n.DateCreated, n.SyncFlag)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}
	return nil
}

// Insert upserts a single note by NoteID.
func (r *SQLiteRepository) Insert(ctx context.Context, note *models.Note) error {
	if err := insertOne(ctx, r.db, note); err != nil {
		return err
	}
	r.notifier.broadcast()
	return nil
}

// InsertAll upserts a batch of notes inside one transaction, then notifies
// watchers once.
func (r *SQLiteRepository) InsertAll(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range notes {
			if err := insertOne(ctx, tx, &notes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.notifier.broadcast()
	return nil
}

func scanNote(scan func(dest ...any) error) (*models.Note, error) {
	var n models.Note
	err := scan(&n.NoteID, &n.Title, &n.Description, &n.Category, &n.MediaList, &n.MediaID, &n.UserID, &n.DateCreated, &n.SyncFlag)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *SQLiteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns all notes ordered by creation date ascending.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Note, error) {
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY date_created`)
}

// GetAllPending returns the snapshot of notes with sync_flag=0.
func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Note, error) {
	return r.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes WHERE sync_flag = 0`)
}

// GetByID returns the matching note, or nil when there is none.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE note_id = ?`, id)
	n, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return n, nil
}

// DeleteByID removes a note unconditionally; deleting an absent id is a no-op.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	r.notifier.broadcast()
	return nil
}

// DeleteAll wipes the notes table.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	r.notifier.broadcast()
	return nil
}
