package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// SessionState holds todo lists of a single user session.
// It's the mutable state behind SessionStore and lives as long as the session does.
type SessionState struct {
	mu       sync.Mutex
	lists    []TodoList
	lastID   int  // monotonic, never reused after deletes
	modified bool // set by the first successful mutation
}

// NewSessionState makes a state pre-populated with a copy of seed lists
func NewSessionState(seed []TodoList) *SessionState {
	res := &SessionState{lists: make([]TodoList, 0, len(seed))}
	for _, l := range seed {
		res.lists = append(res.lists, l.Clone())
		res.lastID = max(res.lastID, l.ID)
		for _, t := range l.Todos {
			res.lastID = max(res.lastID, t.ID)
		}
	}
	return res
}

// Modified reports whether any mutation succeeded on the state since it was made
func (st *SessionState) Modified() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.modified
}

func (st *SessionState) nextID() int {
	st.lastID++
	return st.lastID
}

// SessionStore implements Store over in-memory session state. Nothing here blocks on I/O,
// ctx is accepted for interface compatibility only.
type SessionStore struct {
	state *SessionState
	users map[string]string // username -> bcrypt hash
}

// NewSessionStore makes a store over the given session state.
// users maps user names to bcrypt password hashes and may be nil.
func NewSessionStore(state *SessionState, users map[string]string) *SessionStore {
	return &SessionStore{state: state, users: users}
}

// ListAllSorted returns copies of all lists, not-done first, each group by title
func (s *SessionStore) ListAllSorted(_ context.Context) ([]TodoList, error) {
	s.state.mu.Lock()
	lists := make([]TodoList, 0, len(s.state.lists))
	for _, l := range s.state.lists {
		lists = append(lists, l.Clone())
	}
	s.state.mu.Unlock()
	return SortLists(lists), nil
}

// GetList returns a copy of the list with its todos in insertion order
func (s *SessionStore) GetList(_ context.Context, listID int) (TodoList, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	l := s.findList(listID)
	if l == nil {
		return TodoList{}, fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	return l.Clone(), nil
}

// ListTodosSorted returns a sorted copy of the list's todos. The todos are taken from the
// passed list, as it was loaded by GetList.
func (s *SessionStore) ListTodosSorted(_ context.Context, list TodoList) ([]Todo, error) {
	res := make([]Todo, len(list.Todos))
	copy(res, list.Todos)
	return SortTodos(res), nil
}

// GetTodo returns a copy of the todo
func (s *SessionStore) GetTodo(_ context.Context, listID, todoID int) (Todo, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	t := s.findTodo(listID, todoID)
	if t == nil {
		return Todo{}, fmt.Errorf("todo %d in list %d: %w", todoID, listID, ErrNotFound)
	}
	return *t, nil
}

// ToggleTodoDone flips done flag of the todo
func (s *SessionStore) ToggleTodoDone(_ context.Context, listID, todoID int) (bool, error) {
	return s.mutate(func() result {
		t := s.findTodo(listID, todoID)
		if t == nil {
			return resultNotFound
		}
		t.Done = !t.Done
		return resultOK
	})
}

// DeleteTodo removes the todo from its list
func (s *SessionStore) DeleteTodo(_ context.Context, listID, todoID int) (bool, error) {
	return s.mutate(func() result {
		l := s.findList(listID)
		if l == nil {
			return resultNotFound
		}
		for i, t := range l.Todos {
			if t.ID == todoID {
				l.Todos = append(l.Todos[:i], l.Todos[i+1:]...)
				return resultOK
			}
		}
		return resultNotFound
	})
}

// MarkAllDone sets done flag on every todo of the list
func (s *SessionStore) MarkAllDone(_ context.Context, listID int) (bool, error) {
	return s.mutate(func() result {
		l := s.findList(listID)
		if l == nil {
			return resultNotFound
		}
		for i := range l.Todos {
			l.Todos[i].Done = true
		}
		return resultOK
	})
}

// CreateTodo appends a new not-done todo to the list
func (s *SessionStore) CreateTodo(_ context.Context, listID int, title string) (bool, error) {
	return s.mutate(func() result {
		l := s.findList(listID)
		if l == nil {
			return resultNotFound
		}
		l.Todos = append(l.Todos, Todo{ID: s.state.nextID(), Title: title})
		return resultOK
	})
}

// DeleteList removes the list together with its todos
func (s *SessionStore) DeleteList(_ context.Context, listID int) (bool, error) {
	return s.mutate(func() result {
		for i, l := range s.state.lists {
			if l.ID == listID {
				s.state.lists = append(s.state.lists[:i], s.state.lists[i+1:]...)
				return resultOK
			}
		}
		return resultNotFound
	})
}

// RenameList sets a new title, uniqueness is up to the caller
func (s *SessionStore) RenameList(_ context.Context, listID int, title string) (bool, error) {
	return s.mutate(func() result {
		l := s.findList(listID)
		if l == nil {
			return resultNotFound
		}
		l.Title = title
		return resultOK
	})
}

// TitleExists checks for a list with exactly the same title
func (s *SessionStore) TitleExists(_ context.Context, title string) (bool, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, l := range s.state.lists {
		if l.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// CreateList adds an empty list. There is no storage-level constraint here, so it never reports
// a conflict; callers check TitleExists first.
func (s *SessionStore) CreateList(_ context.Context, title string) (bool, error) {
	return s.mutate(func() result {
		s.state.lists = append(s.state.lists, TodoList{ID: s.state.nextID(), Title: title, Todos: []Todo{}})
		return resultOK
	})
}

// Authenticate checks the password against the configured account
func (s *SessionStore) Authenticate(_ context.Context, username, password string) (bool, error) {
	hash, ok := s.users[username]
	if !ok {
		return false, nil
	}
	return checkPassword(hash, password)
}

func (s *SessionStore) mutate(fn func() result) (bool, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	res := fn()
	if res == resultOK {
		s.state.modified = true
	}
	return res.ok(nil)
}

// findList returns a pointer into the live state, callers must hold the lock
func (s *SessionStore) findList(listID int) *TodoList {
	for i := range s.state.lists {
		if s.state.lists[i].ID == listID {
			return &s.state.lists[i]
		}
	}
	return nil
}

func (s *SessionStore) findTodo(listID, todoID int) *Todo {
	l := s.findList(listID)
	if l == nil {
		return nil
	}
	for i := range l.Todos {
		if l.Todos[i].ID == todoID {
			return &l.Todos[i]
		}
	}
	return nil
}

// checkPassword compares password with bcrypt hash. A mismatch is a plain false,
// a malformed hash is an error.
func checkPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare password hash: %w", err)
}
