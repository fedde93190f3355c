package projects

import (
	"errors"
	"strings"
	"time"
)

// OfflineIDPrefix marks identifiers of projects that live only in the local
// fallback store. Such ids are never looked up remotely, and ids without the
// prefix are never looked up locally.
const OfflineIDPrefix = "offline-"

var ErrNotFound = errors.New("project not found")

// ErrRemoteUnavailable is returned when a remote-only lookup is requested
// but no hosted store is configured.
var ErrRemoteUnavailable = errors.New("hosted project store unavailable")

// Project pairs a user prompt with its generated HTML document. Field names
// follow the website_projects table columns.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Prompt      string    `json:"prompt"`
	HTMLContent string    `json:"html_content"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsOfflineID reports whether id belongs to the local fallback store. The
// prefix is the sole routing discriminant.
func IsOfflineID(id string) bool {
	return strings.HasPrefix(id, OfflineIDPrefix)
}
