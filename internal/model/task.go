package model

import "github.com/google/uuid"

// Task is a single to-do item. Tasks live only for the duration of a login
// session and are never persisted.
//
// ID is a synthetic identifier assigned at creation; the UI still addresses
// edits by name, so two tasks may share a name (Duplicate produces exactly
// that) while remaining distinct entries.
type Task struct {
	ID          string
	Name        string
	Description string
	Deadline    string
	Categories  []string
}

// NewTask builds a task with a fresh identifier.
func NewTask(name, description, deadline string, categories []string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Deadline:    deadline,
		Categories:  append([]string(nil), categories...),
	}
}

// CopySuffix is appended to the name of a duplicated task.
const CopySuffix = " (Copy)"

// Clone returns a copy of the task with a new identifier and the copy suffix
// appended to its name. Name collisions are allowed.
func (t *Task) Clone() *Task {
	return &Task{
		ID:          uuid.NewString(),
		Name:        t.Name + CopySuffix,
		Description: t.Description,
		Deadline:    t.Deadline,
		Categories:  append([]string(nil), t.Categories...),
	}
}

// HasCategory reports whether the task is tagged with the given category.
func (t *Task) HasCategory(category string) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}
