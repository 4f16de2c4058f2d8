// Package common contains shared constants and sentinel errors used across
// the sync core. Callers match these values with errors.Is.
package common

import "errors"

var (
	// Auth errors.
	ErrNotAuthenticated = errors.New("user not logged in")

	// Remote gateway errors (network, permission, server).
	ErrRemoteWrite  = errors.New("remote write failed")
	ErrRemoteRead   = errors.New("remote read failed")
	ErrRemoteDelete = errors.New("remote delete failed")

	// Media errors. ErrUnsupportedMedia is a data error, not transient.
	ErrBlobUpload       = errors.New("media upload failed")
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// Deadline-bound operations that exceeded their allotted wait.
	ErrTimeout = errors.New("operation timed out")

	// Local insert failed after a successful remote fetch.
	ErrLocalPersist = errors.New("failed to save notes locally")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
