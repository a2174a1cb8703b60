// Package task owns the persisted task collection.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", s)
	}
	return status, nil
}

// Task represents a single tracked unit of work.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// UnmarshalJSON decodes a task record, falling back to the legacy
// "update_at" key when "updated_at" is missing.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		LegacyUpdatedAt string `json:"update_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	if t.UpdatedAt == "" {
		t.UpdatedAt = aux.LegacyUpdatedAt
	}
	return nil
}

// IsZero returns true if the task has no ID.
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Time layout names accepted by ResolveTimeLayout.
const (
	LayoutANSIC   = "ansic"
	LayoutRFC3339 = "rfc3339"
)

// ResolveTimeLayout maps a layout name to a Go time layout. Empty and
// "ansic" give time.ANSIC, the ctime-style format; any other unrecognized
// value is returned unchanged and used as a layout.
func ResolveTimeLayout(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutANSIC:
		return time.ANSIC
	case LayoutRFC3339:
		return time.RFC3339
	default:
		return name
	}
}
