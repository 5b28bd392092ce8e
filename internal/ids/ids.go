package ids

import "github.com/segmentio/ksuid"

// New returns a fresh sortable identifier for database rows.
func New() string {
	return ksuid.New().String()
}
