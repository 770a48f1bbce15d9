package mcp

import "time"

// nowUTC stands in for time.Now().UTC() at the few call sites that
// need a command timestamp, mirroring the teacher's tools_helpers.go
// pattern of small shared conveniences for the tool handlers.
func nowUTC() time.Time {
	return time.Now().UTC()
}
