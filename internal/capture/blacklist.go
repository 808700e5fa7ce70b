package capture

import (
	"strings"

	"go.klb.dev/slate/internal/window"
)

// Blocked reports whether a capture should be suppressed for the given
// window metadata. With an app id present, blacklist entries match by
// exact case-insensitive equality; with only a title, they match as
// case-insensitive substrings. Absent metadata never blocks.
func Blocked(meta *window.Metadata, blacklist []string) bool {
	if meta == nil || len(blacklist) == 0 {
		return false
	}
	if meta.AppID != "" {
		for _, entry := range blacklist {
			if strings.EqualFold(meta.AppID, entry) {
				return true
			}
		}
		return false
	}
	if meta.Title == "" {
		return false
	}
	title := strings.ToLower(meta.Title)
	for _, entry := range blacklist {
		if strings.Contains(title, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}
