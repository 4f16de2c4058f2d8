package models

import (
	"encoding/json"
	"fmt"

	"notekeeper/internal/common"
)

// MediaType distinguishes the two supported attachment kinds.
type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// Ext returns the file extension used for remote blob keys.
// An unknown type is a data error, not a transient failure.
func (t MediaType) Ext() (string, error) {
	switch t {
	case MediaTypeImage:
		return ".jpg", nil
	case MediaTypeVideo:
		return ".mp4", nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedMedia, string(t))
	}
}

// StorageKey derives the remote blob path for a note's media item:
// notes_images/<noteId>.jpg or notes_videos/<noteId>.mp4. One slot per type
// per note; re-uploads overwrite.
func (t MediaType) StorageKey(noteID string) (string, error) {
	switch t {
	case MediaTypeImage:
		return "notes_images/" + noteID + ".jpg", nil
	case MediaTypeVideo:
		return "notes_videos/" + noteID + ".mp4", nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedMedia, string(t))
	}
}

// Media describes one attached file: a local path (or remote URL) and its type.
type Media struct {
	URI  string    `json:"uri"`
	Type MediaType `json:"type"`
}

// ParseMediaList decodes the serialized media list stored on a Note.
// An empty string means no media.
func ParseMediaList(s string) ([]Media, error) {
	if s == "" {
		return nil, nil
	}
	var list []Media
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("failed to parse media list: %w", err)
	}
	return list, nil
}

// MediaListString encodes a media list for storage on a Note.
// An empty list encodes to the empty string.
func MediaListString(list []Media) (string, error) {
	if len(list) == 0 {
		return "", nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to serialize media list: %w", err)
	}
	return string(b), nil
}
