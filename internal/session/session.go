// Package session owns all state that lives only while a user is logged in:
// the task list, the pinned and completed sets, and the current search and
// category filter. Exactly one session exists per chat. The chat's update
// loop does all mutation, but the report scheduler reads sessions from its
// own goroutine, so every accessor locks.
package session

import (
	"strings"
	"sync"

	"todolist/internal/model"
)

// MaxPinned caps how many tasks may be pinned at once.
const MaxPinned = 3

// PinResult tells the caller what TogglePin did. The limit case is a soft
// notice for the user, not an error.
type PinResult int

const (
	Pinned PinResult = iota
	Unpinned
	PinLimitReached
)

// Entry pairs a task with its presentation flags for rendering.
type Entry struct {
	Task   *model.Task
	Pinned bool
	Done   bool
}

// Session tracks one chat's signup/login lifecycle and its in-memory tasks.
type Session struct {
	mu sync.Mutex

	signedUp bool
	loggedIn bool
	username string

	searchTerm     string
	filterCategory string

	tasks     []*model.Task
	pinned    []string // task ids, most recently pinned first
	completed map[string]bool
}

func New() *Session {
	return &Session{completed: make(map[string]bool)}
}

// SignUp records a successful signup. The flag survives logout: a signed-up
// chat is sent to signin, never back to the signup form.
func (s *Session) SignUp(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedUp = true
	s.username = username
}

// SignIn records a successful signin.
func (s *Session) SignIn(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.username = username
}

// Logout clears the login and every piece of task-related state. Accounts
// are persistent; everything else belongs to the session that just ended.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.username = ""
	s.searchTerm = ""
	s.filterCategory = ""
	s.tasks = nil
	s.pinned = nil
	s.completed = make(map[string]bool)
}

func (s *Session) SignedUp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedUp
}

func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *Session) FilterCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterCategory
}

func (s *Session) SetFilterCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterCategory = category
}

// Add appends a task. Duplicate names are not checked.
func (s *Session) Add(task *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Edit replaces the first task whose name matches oldName, keeping its id
// and position, and returns the edited task. Returns nil if no task has
// that name.
func (s *Session) Edit(oldName string, updated *model.Task) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Name == oldName {
			t.Name = updated.Name
			t.Description = updated.Description
			t.Deadline = updated.Deadline
			t.Categories = append([]string(nil), updated.Categories...)
			return t
		}
	}
	return nil
}

// Delete removes the task and cascades it out of the pinned and completed
// sets so no dangling reference survives.
func (s *Session) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	delete(s.completed, id)
	for i, pinnedID := range s.pinned {
		if pinnedID == id {
			s.pinned = append(s.pinned[:i], s.pinned[i+1:]...)
			break
		}
	}
	return true
}

// Duplicate appends a clone of the task and returns it. The clone starts
// unpinned and not completed.
func (s *Session) Duplicate(id string) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	clone := s.tasks[idx].Clone()
	s.tasks = append(s.tasks, clone)
	return clone
}

// Get returns the task with the given id, or nil.
func (s *Session) Get(id string) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.tasks[idx]
	}
	return nil
}

// Tasks returns the task list in store order.
func (s *Session) Tasks() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Task(nil), s.tasks...)
}

// TogglePin pins an unpinned task or unpins a pinned one. Newly pinned
// tasks go to the front. The fourth pin is refused and leaves the set
// untouched.
func (s *Session) TogglePin(id string) PinResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pinnedID := range s.pinned {
		if pinnedID == id {
			s.pinned = append(s.pinned[:i], s.pinned[i+1:]...)
			return Unpinned
		}
	}
	if len(s.pinned) >= MaxPinned {
		return PinLimitReached
	}
	s.pinned = append([]string{id}, s.pinned...)
	return Pinned
}

func (s *Session) IsPinned(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPinned(id)
}

// ToggleDone flips the completed flag and reports the new state. Completion
// is presentation only; it never affects filtering or deletion.
func (s *Session) ToggleDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed[id] {
		delete(s.completed, id)
		return false
	}
	s.completed[id] = true
	return true
}

func (s *Session) IsDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[id]
}

// Filter applies the current search term and category to the task list,
// preserving store order. An empty term and category pass everything.
func (s *Session) Filter() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter()
}

// View builds the display order: pinned tasks first in pin order (exempt
// from search and filter, as the original list rendered them), then the
// filtered remainder.
func (s *Session) View() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []Entry
	for _, id := range s.pinned {
		if idx := s.indexOf(id); idx >= 0 {
			task := s.tasks[idx]
			entries = append(entries, Entry{Task: task, Pinned: true, Done: s.completed[task.ID]})
		}
	}
	for _, task := range s.filter() {
		if s.isPinned(task.ID) {
			continue
		}
		entries = append(entries, Entry{Task: task, Done: s.completed[task.ID]})
	}
	return entries
}

// Report copies everything the summary job needs in one critical section,
// so the scheduler goroutine never walks live session state.
func (s *Session) Report() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.tasks))
	for _, task := range s.tasks {
		entries = append(entries, Entry{
			Task:   task,
			Pinned: s.isPinned(task.ID),
			Done:   s.completed[task.ID],
		})
	}
	return entries
}

func (s *Session) filter() []*model.Task {
	var out []*model.Task
	term := strings.ToLower(s.searchTerm)
	for _, t := range s.tasks {
		if s.filterCategory != "" && !t.HasCategory(s.filterCategory) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(t.Name), term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Session) isPinned(id string) bool {
	for _, pinnedID := range s.pinned {
		if pinnedID == id {
			return true
		}
	}
	return false
}

func (s *Session) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
