package utils

import "time"

// Today returns midnight UTC of the current calendar day. Dates parsed
// from the YYYY-MM-DD wire format are UTC midnights, so "not in the past"
// style checks compare equal for today's date.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
