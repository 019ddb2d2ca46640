// Package taskstore persists the bundled task tracker in its own JSON
// document, separate from the expense ledger.
package taskstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/expense-cli/internal/ledgererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Task statuses.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task priorities, highest first.
const (
	PriorityHigh   = "P1"
	PriorityMedium = "P2"
	PriorityLow    = "P3"
)

// Task is one tracked task.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// document is the on-disk shape of the task file.
type document struct {
	Tasks  []Task `json:"tasks"`
	LastID int    `json:"lastId"`
}

// Store reads and writes the task document.
type Store struct {
	path string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a task store backed by the given file path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateFields carries the optional fields of a task update. Nil means
// leave unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	Priority    *string
}

// Add creates a task with the given title, description and priority.
// An empty priority defaults to P3.
func (s *Store) Add(title, description, priority string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, &ledgererror.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if priority == "" {
		priority = PriorityLow
	}
	if err := validatePriority(priority); err != nil {
		return Task{}, err
	}

	doc, err := s.read()
	if err != nil {
		return Task{}, err
	}

	now := s.now()
	task := Task{
		ID:          doc.LastID + 1,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.Tasks = append(doc.Tasks, task)
	doc.LastID = task.ID

	if err := s.write(doc); err != nil {
		return Task{}, err
	}
	log.WithFields(logrus.Fields{
		"id":       task.ID,
		"priority": task.Priority,
	}).Info("Added task")
	return task, nil
}

// Update applies the non-nil fields to the task with the given ID.
func (s *Store) Update(id int, fields UpdateFields) (Task, error) {
	if fields.Priority != nil {
		if err := validatePriority(*fields.Priority); err != nil {
			return Task{}, err
		}
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return Task{}, &ledgererror.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	doc, err := s.read()
	if err != nil {
		return Task{}, err
	}

	idx := findTask(doc.Tasks, id)
	if idx < 0 {
		return Task{}, &ledgererror.NotFoundError{Kind: "task", Key: fmt.Sprintf("%d", id)}
	}

	task := &doc.Tasks[idx]
	if fields.Title != nil {
		task.Title = strings.TrimSpace(*fields.Title)
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Priority != nil {
		task.Priority = *fields.Priority
	}
	task.UpdatedAt = s.now()

	if err := s.write(doc); err != nil {
		return Task{}, err
	}
	return *task, nil
}

// SetStatus moves the task to the given status. Entering DONE stamps
// CompletedAt; leaving it clears the stamp.
func (s *Store) SetStatus(id int, status string) (Task, error) {
	if err := validateStatus(status); err != nil {
		return Task{}, err
	}

	doc, err := s.read()
	if err != nil {
		return Task{}, err
	}

	idx := findTask(doc.Tasks, id)
	if idx < 0 {
		return Task{}, &ledgererror.NotFoundError{Kind: "task", Key: fmt.Sprintf("%d", id)}
	}

	task := &doc.Tasks[idx]
	now := s.now()
	task.Status = status
	task.UpdatedAt = now
	if status == StatusDone {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.write(doc); err != nil {
		return Task{}, err
	}
	return *task, nil
}

// Delete removes the task with the given ID and returns the deleted
// record.
func (s *Store) Delete(id int) (Task, error) {
	doc, err := s.read()
	if err != nil {
		return Task{}, err
	}

	idx := findTask(doc.Tasks, id)
	if idx < 0 {
		return Task{}, &ledgererror.NotFoundError{Kind: "task", Key: fmt.Sprintf("%d", id)}
	}

	deleted := doc.Tasks[idx]
	doc.Tasks = append(doc.Tasks[:idx], doc.Tasks[idx+1:]...)

	if err := s.write(doc); err != nil {
		return Task{}, err
	}
	return deleted, nil
}

// ListFilter narrows List output. Empty fields match everything.
type ListFilter struct {
	Status   string
	Priority string
}

// List returns tasks matching the filter, priority first then ID.
func (s *Store) List(filter ListFilter) ([]Task, error) {
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Priority != "" {
		if err := validatePriority(filter.Priority); err != nil {
			return nil, err
		}
	}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(doc.Tasks))
	for _, task := range doc.Tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{}, nil
		}
		return nil, &ledgererror.StorageError{Op: "read", Path: s.path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ledgererror.StorageError{Op: "decode", Path: s.path, Corrupt: true, Err: err}
	}
	return &doc, nil
}

func (s *Store) write(doc *document) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &ledgererror.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &ledgererror.StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return &ledgererror.StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func findTask(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validatePriority(priority string) error {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	}
	return &ledgererror.ValidationError{Field: "priority", Reason: "must be one of P1, P2, P3"}
}

func validateStatus(status string) error {
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return nil
	}
	return &ledgererror.ValidationError{Field: "status", Reason: "must be one of TODO, IN_PROGRESS, DONE"}
}
