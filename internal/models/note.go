// Package models defines the domain types persisted in the local store and
// synchronized with the remote backend.
package models

import (
	"fmt"
	"time"
)

// Note is a single user note.
//
// NoteID is the sole identity; re-inserting a note with the same id replaces
// the prior record entirely. MediaList holds the JSON-serialized []Media of
// locally attached files. MediaID holds the comma-joined remote download URLs
// once media has been uploaded; it is empty until then.
//
// SyncFlag is 0 while the note exists only locally and flips to 1 only after
// a confirmed successful remote metadata write.
type Note struct {
	NoteID      string
	Title       string
	Description string
	Category    string
	MediaList   string
	MediaID     string
	UserID      string
	DateCreated string
	SyncFlag    int
}

// NewNoteID builds the caller-generated note identity <userId>_<timestamp>.
func NewNoteID(userID string, now time.Time) string {
	return fmt.Sprintf("%s_%d", userID, now.Unix())
}

// Media parses the note's serialized media list.
func (n *Note) Media() ([]Media, error) {
	return ParseMediaList(n.MediaList)
}

// AttachMedia adds m to the note's media list. At most one item per media
// type is kept: attaching a new item of a given type replaces the existing
// one.
func (n *Note) AttachMedia(m Media) error {
	list, err := ParseMediaList(n.MediaList)
	if err != nil {
		return err
	}

	replaced := false
	for i := range list {
		if list[i].Type == m.Type {
			list[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, m)
	}

	s, err := MediaListString(list)
	if err != nil {
		return err
	}
	n.MediaList = s
	return nil
}
