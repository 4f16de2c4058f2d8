package models

// User is the locally mirrored account record. Password holds a bcrypt
// placeholder hash, never the plaintext. SyncFlag follows the same
// local-only/confirmed-remote convention as Note.
type User struct {
	UserID         string
	FirstName      string
	LastName       string
	Email          string
	Password       string
	DateRegistered string
	SyncFlag       int
}
