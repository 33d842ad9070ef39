package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when the requested list or todo doesn't exist
var ErrNotFound = errors.New("not found")

//go:generate mockery --name Store --case snake --output mocks

// Store defines todo list storage operations used by the web layer.
// Mutations report success as a bool; false means the target is missing (or, for CreateList,
// that the title is taken). The error return is reserved for infrastructure failures.
type Store interface {
	ListAllSorted(ctx context.Context) ([]TodoList, error)
	GetList(ctx context.Context, listID int) (TodoList, error)
	ListTodosSorted(ctx context.Context, list TodoList) ([]Todo, error)
	GetTodo(ctx context.Context, listID, todoID int) (Todo, error)
	ToggleTodoDone(ctx context.Context, listID, todoID int) (bool, error)
	DeleteTodo(ctx context.Context, listID, todoID int) (bool, error)
	MarkAllDone(ctx context.Context, listID int) (bool, error)
	CreateTodo(ctx context.Context, listID int, title string) (bool, error)
	DeleteList(ctx context.Context, listID int) (bool, error)
	RenameList(ctx context.Context, listID int, title string) (bool, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	CreateList(ctx context.Context, title string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// Todo is a single task within a list
type Todo struct {
	ID    int    `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	Done  bool   `db:"done" json:"done"`
}

// TodoList is a named collection of todos
type TodoList struct {
	ID    int    `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	Todos []Todo `db:"-" json:"todos"`
}

// IsDone reports whether the list has at least one todo and all of them are done
func (l TodoList) IsDone() bool {
	if len(l.Todos) == 0 {
		return false
	}
	for _, t := range l.Todos {
		if !t.Done {
			return false
		}
	}
	return true
}

// HasUndone is the negation of IsDone, an empty list counts as having undone todos
func (l TodoList) HasUndone() bool {
	return !l.IsDone()
}

// DoneCount returns the number of done todos
func (l TodoList) DoneCount() int {
	res := 0
	for _, t := range l.Todos {
		if t.Done {
			res++
		}
	}
	return res
}

// Clone returns a deep copy of the list
func (l TodoList) Clone() TodoList {
	res := TodoList{ID: l.ID, Title: l.Title, Todos: make([]Todo, len(l.Todos))}
	copy(res.Todos, l.Todos)
	return res
}

// result is the outcome of a mutation before it's reduced to the bool of the Store contract.
// infrastructure failures are carried by error, not by result.
type result int

const (
	resultOK result = iota
	resultNotFound
	resultConflict
)

func (r result) String() string {
	switch r {
	case resultOK:
		return "ok"
	case resultNotFound:
		return "not-found"
	case resultConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// ok maps result and error to the Store contract
func (r result) ok(err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return r == resultOK, nil
}
