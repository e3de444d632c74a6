package valueobjects

import "time"

// ISOTimestamp renders t as an ISO-8601 string in UTC.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
