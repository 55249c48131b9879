package wikicontext

import "time"

// timeNow is a package-level variable so tests can control timestamps.
var timeNow = time.Now

// nowStamp returns the current UTC time in RFC 3339, the format used for
// every lastSync and lastUpdated field.
func nowStamp() string {
	return timeNow().UTC().Format(time.RFC3339)
}
