// Package tracker implements the user-facing task operations on top of a
// task.Store.
//
// Every operation reports its result as an Outcome carrying the message to
// show. Missing ids, invalid input and empty listings are outcomes, not
// errors. The only error an operation returns is a failed save, which wraps
// ErrNotPersisted: the change is applied in memory but may not be on disk.
package tracker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/task-cli/internal/task"
)

// ErrNotPersisted marks a change that was applied but could not be saved.
var ErrNotPersisted = errors.New("change may not be durable")

// OutcomeKind classifies an operation result.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeNotFound
	OutcomeInvalid
	OutcomeEmpty
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeEmpty:
		return "empty"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the user-visible result of an operation.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	// Tasks holds the listed tasks for List and ListByStatus, or the task
	// affected by a mutation.
	Tasks []task.Task
	// listing is set for List and ListByStatus so Render prints each task.
	listing bool
}

// OK reports whether the operation did what was asked.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeOK
}

// Render writes the outcome message, followed by one line per task for
// non-empty listings.
func (o Outcome) Render(w io.Writer) {
	if o.listing && o.Kind == OutcomeOK {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, o.Message)
	if !o.listing || o.Kind != OutcomeOK {
		return
	}
	for _, t := range o.Tasks {
		fmt.Fprintln(w, FormatTask(t))
	}
}

// FormatTask renders a task as a single listing line.
func FormatTask(t task.Task) string {
	return fmt.Sprintf("• %d: %s [%s] (Created: %s)", t.ID, t.Description, t.Status, t.CreatedAt)
}

// Tracker runs operations against a loaded store.
type Tracker struct {
	store *task.Store
}

// New returns a Tracker for store. The store should already be loaded.
func New(store *task.Store) *Tracker {
	return &Tracker{store: store}
}

// Store returns the underlying store.
func (t *Tracker) Store() *task.Store {
	return t.store
}

// Add creates a todo task with a fresh id and saves the store.
func (t *Tracker) Add(description string) (Outcome, error) {
	if strings.TrimSpace(description) == "" {
		return invalid("Error: Missing description."), nil
	}

	created := t.store.NewTask(description)
	t.store.Append(created)
	out := Outcome{
		Kind:    OutcomeOK,
		Message: fmt.Sprintf("Task added successfully (ID: %d).", created.ID),
		Tasks:   []task.Task{created},
	}
	return out, t.persist()
}

// Update replaces the description of task id and saves the store.
func (t *Tracker) Update(id int, description string) (Outcome, error) {
	if strings.TrimSpace(description) == "" {
		return invalid("Error: Missing description."), nil
	}

	found, ok := t.store.Find(id)
	if !ok {
		return notFound(id), nil
	}
	found.Description = description
	t.store.Touch(found)
	out := Outcome{
		Kind:    OutcomeOK,
		Message: fmt.Sprintf("Task %d updated successfully.", id),
		Tasks:   []task.Task{*found},
	}
	return out, t.persist()
}

// Delete removes task id and saves the store.
func (t *Tracker) Delete(id int) (Outcome, error) {
	found, ok := t.store.Find(id)
	if !ok {
		return notFound(id), nil
	}
	removed := *found
	t.store.Remove(id)
	out := Outcome{
		Kind:    OutcomeOK,
		Message: fmt.Sprintf("Task %d deleted successfully.", id),
		Tasks:   []task.Task{removed},
	}
	return out, t.persist()
}

// SetStatus changes the status of task id and saves the store.
func (t *Tracker) SetStatus(id int, status task.Status) (Outcome, error) {
	if !status.Valid() {
		return invalid(fmt.Sprintf("Error: Invalid status '%s'.", status)), nil
	}

	found, ok := t.store.Find(id)
	if !ok {
		return notFound(id), nil
	}
	found.Status = status
	t.store.Touch(found)
	out := Outcome{
		Kind:    OutcomeOK,
		Message: fmt.Sprintf("Status for task %d changed to '%s'.", id, status),
		Tasks:   []task.Task{*found},
	}
	return out, t.persist()
}

// List returns every task in insertion order.
func (t *Tracker) List() Outcome {
	tasks := t.store.Tasks()
	if len(tasks) == 0 {
		return Outcome{Kind: OutcomeEmpty, Message: "No tasks found.", listing: true}
	}
	return Outcome{Kind: OutcomeOK, Message: "All Tasks:", Tasks: tasks, listing: true}
}

// ListByStatus returns the tasks whose status equals status exactly.
// Unknown statuses are not rejected; they simply match nothing.
func (t *Tracker) ListByStatus(status string) Outcome {
	tasks := t.store.Filter(task.Status(status))
	if len(tasks) == 0 {
		return Outcome{
			Kind:    OutcomeEmpty,
			Message: fmt.Sprintf("No tasks with status '%s' found.", status),
			listing: true,
		}
	}
	return Outcome{
		Kind:    OutcomeOK,
		Message: fmt.Sprintf("Tasks with status '%s':", status),
		Tasks:   tasks,
		listing: true,
	}
}

func (t *Tracker) persist() error {
	if err := t.store.Save(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

func notFound(id int) Outcome {
	return Outcome{Kind: OutcomeNotFound, Message: fmt.Sprintf("Error: Task with ID %d not found.", id)}
}

func invalid(msg string) Outcome {
	return Outcome{Kind: OutcomeInvalid, Message: msg}
}
