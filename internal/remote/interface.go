// Package remote contains the gateways to the remote backend: a document
// store for note metadata and a blob store for media content. The sync core
// depends only on the interfaces; the S3 implementation lives alongside.
package remote

import "context"

// NoteDocument is the wire shape of a note's metadata. The locally attached
// media list is never sent remotely; only the resolved download references
// travel, comma-joined in MediaID.
type NoteDocument struct {
	NoteID      string `json:"noteId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"noteCategory"`
	MediaID     string `json:"mediaId"`
	UserID      string `json:"userId"`
	DateCreated string `json:"dateCreated"`
}

// DocumentStore holds one document per note, keyed by note id.
type DocumentStore interface {
	// PutNoteDocument writes the document, overwriting any prior version.
	// Fails with common.ErrRemoteWrite on network/auth/server errors.
	PutNoteDocument(ctx context.Context, doc NoteDocument) error

	// QueryNotesByOwner returns all documents whose owner matches userID
	// exactly. Fails with common.ErrRemoteRead.
	QueryNotesByOwner(ctx context.Context, userID string) ([]NoteDocument, error)

	// DeleteNoteDocument removes the document for the given note id.
	// Fails with common.ErrRemoteDelete when the delete cannot be confirmed.
	DeleteNoteDocument(ctx context.Context, noteID string) error
}

// BlobStore uploads media binaries and resolves their download references.
type BlobStore interface {
	// UploadBlob uploads the file at localPath to the given storage key and
	// returns a stable download URL. Fails with common.ErrBlobUpload.
	UploadBlob(ctx context.Context, localPath string, key string) (string, error)
}
