package common

import "time"

// DateDefault is the fixed yyyy-MM-dd format used for Note.DateCreated and
// User.DateRegistered.
const DateDefault = "2006-01-02"

// FormatDate renders t in the default date format.
func FormatDate(t time.Time) string {
	return t.Format(DateDefault)
}
