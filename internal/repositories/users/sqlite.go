package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notekeeper/internal/dbx"
	"notekeeper/internal/models"
)

const userColumns = `user_id, first_name, last_name, email, password, date_registered, sync_flag`

// SQLiteRepository implements Repository over the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func insertOne(ctx context.Context, tx dbx.DBTX, u *models.User) error {
	query := `INSERT INTO user (` + userColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				email = excluded.email,
				password = excluded.password,
				date_registered = excluded.date_registered,
				sync_flag = excluded.sync_flag
	`
	_, err := tx.ExecContext(ctx, query,
		u.UserID, u.FirstName, u.LastName, u.Email, u.Password, u.DateRegistered, u.SyncFlag)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Insert upserts a user by UserID.
func (r *SQLiteRepository) Insert(ctx context.Context, user *models.User) error {
	return insertOne(ctx, r.db, user)
}

// InsertAll upserts users received from remote, forcing SyncFlag to 1 on each
// record: anything obtained from the remote side is by definition synced.
func (r *SQLiteRepository) InsertAll(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range users {
			u := users[i]
			u.SyncFlag = 1
			if err := insertOne(ctx, tx, &u); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns the matching user, or nil when there is none.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE user_id = ?`, id)

	var u models.User
	err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.DateRegistered, &u.SyncFlag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &u, nil
}

// DeleteAll wipes the user table.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
