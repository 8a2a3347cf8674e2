package models

import "fmt"

// Status is the closed complaint status enum. The service only ever stores
// one of the four values below; earlier revisions of the product used other
// spellings and those are rejected at the boundary, not migrated silently.
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// ParseStatus validates a raw status value against the closed enum.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusCreated, StatusInProgress, StatusCompleted, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// Terminal reports whether no further transitions may leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

func (s Status) String() string { return string(s) }
