package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultFileName is the task file used when no path is configured.
const DefaultFileName = "tasks_database.json"

// Store holds the ordered task collection and the id counter for one file.
type Store struct {
	path      string
	tasks     []Task
	lastID    int
	corrupted bool

	logger *log.Logger
	now    func() time.Time
	layout string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for task timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeLayout sets the timestamp layout. See ResolveTimeLayout.
func WithTimeLayout(name string) StoreOption {
	return func(s *Store) {
		s.layout = ResolveTimeLayout(name)
	}
}

// NewStore creates an empty store backed by path. Call Load to read it.
func NewStore(path string, opts ...StoreOption) *Store {
	if path == "" {
		path = DefaultFileName
	}
	s := &Store{
		path:   path,
		tasks:  []Task{},
		logger: log.Default(),
		now:    time.Now,
		layout: time.ANSIC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing or empty file yields an empty
// collection. An unparsable file is logged as corrupted and also yields an
// empty collection; the file itself is not touched. Only I/O failures other
// than a missing file are returned.
func (s *Store) Load() error {
	s.tasks = []Task{}
	s.lastID = 0
	s.corrupted = false

	data, err := os.ReadFile(s.path)
	if err != nil {
		// A parent that is a regular file means there is no task file either.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			s.logger.Debug("task file not found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("read task file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var loaded []Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.corrupted = true
		s.logger.Warn("database file is corrupted, starting with an empty list", "path", s.path, "err", err)
		return nil
	}

	if loaded != nil {
		s.tasks = loaded
	}
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(s.tasks), "last_id", s.lastID)
	return nil
}

// Corrupted reports whether the last Load found an unparsable file.
func (s *Store) Corrupted() bool {
	return s.corrupted
}

// Save writes the full collection to the backing file. The data goes to a
// temp file in the same directory which is then renamed over the target, so
// readers see either the old or the new content.
func (s *Store) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID reserves and returns a fresh id. Ids only grow for the lifetime
// of the store, including across deletions.
func (s *Store) NextID() int {
	s.lastID++
	return s.lastID
}

// Peek returns the id NextID would hand out, without reserving it.
func (s *Store) Peek() int {
	return s.lastID + 1
}

// Timestamp returns the current time formatted with the store's layout.
func (s *Store) Timestamp() string {
	return s.now().Format(s.layout)
}

// NewTask builds a todo task with a freshly reserved id. It is not added
// to the collection.
func (s *Store) NewTask(description string) Task {
	now := s.Timestamp()
	return Task{
		ID:          s.NextID(),
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Append adds a task to the end of the collection.
func (s *Store) Append(t Task) {
	s.tasks = append(s.tasks, t)
	if t.ID > s.lastID {
		s.lastID = t.ID
	}
}

// Find returns the task with the given id, or false if none.
func (s *Store) Find(id int) (*Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i], true
		}
	}
	return nil, false
}

// Remove deletes the task with the given id and reports whether it existed.
func (s *Store) Remove(id int) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Touch refreshes the task's updated_at timestamp.
func (s *Store) Touch(t *Task) {
	t.UpdatedAt = s.Timestamp()
}

// Filter returns the tasks whose status equals status exactly, in order.
func (s *Store) Filter(status Status) []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
