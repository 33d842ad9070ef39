package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite" // sqlite driver, also provides structured error codes
	sqlite3 "modernc.org/sqlite/lib"
)

// lower() folds ASCII only, so non-ASCII titles may order differently than in SessionStore
const (
	queryListTodos       = `SELECT id, title, done FROM todos WHERE todolist_id = ? ORDER BY id`
	queryListTodosSorted = `SELECT id, title, done FROM todos WHERE todolist_id = ? ORDER BY done ASC, lower(title) ASC, id ASC`
)

// SQLConfig defines SQLite store parameters
type SQLConfig struct {
	Path         string // database file
	MaxOpenConns int    // 0 keeps database/sql default
}

// SQLStore implements Store using SQLite. Rows are the source of truth, nothing is cached.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore opens the database and creates the schema if missing
func NewSQLStore(ctx context.Context, cfg SQLConfig) (*SQLStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sqlx.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// dsn adds per-connection pragmas, foreign keys have to be on for cascade deletes
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *SQLStore) initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS todolists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			done BOOLEAN NOT NULL DEFAULT 0,
			todolist_id INTEGER NOT NULL REFERENCES todolists(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_todolist_id ON todos(todolist_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// ListAllSorted loads all lists ordered by title with their todos, then moves done lists to the end.
// Todos are fetched with one query per list.
func (s *SQLStore) ListAllSorted(ctx context.Context) ([]TodoList, error) {
	lists := []TodoList{}
	// ASCII-only lower(), same as queryListTodosSorted
	if err := s.db.SelectContext(ctx, &lists, `SELECT id, title FROM todolists ORDER BY lower(title), id`); err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}

	for i := range lists {
		todos, err := s.selectTodos(ctx, queryListTodos, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Todos = todos
	}

	return PartitionLists(lists), nil
}

// GetList loads the list and its todos with two concurrent queries.
// The queries are independent, so the result is not a consistent snapshot.
func (s *SQLStore) GetList(ctx context.Context, listID int) (TodoList, error) {
	var (
		list              TodoList
		todos             []Todo
		listErr, todosErr error
	)

	gr := syncs.NewSizedGroup(2)
	gr.Go(func(context.Context) {
		listErr = s.db.GetContext(ctx, &list, `SELECT id, title FROM todolists WHERE id = ?`, listID)
	})
	gr.Go(func(context.Context) {
		todos, todosErr = s.selectTodos(ctx, queryListTodos, listID)
	})
	gr.Wait()

	if errors.Is(listErr, sql.ErrNoRows) {
		return TodoList{}, fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	if listErr != nil {
		return TodoList{}, fmt.Errorf("failed to get list %d: %w", listID, listErr)
	}
	if todosErr != nil {
		return TodoList{}, todosErr
	}

	list.Todos = todos
	return list, nil
}

// ListTodosSorted returns todos of the list ordered by the database, not-done first
func (s *SQLStore) ListTodosSorted(ctx context.Context, list TodoList) ([]Todo, error) {
	return s.selectTodos(ctx, queryListTodosSorted, list.ID)
}

// GetTodo returns the todo from the given list
func (s *SQLStore) GetTodo(ctx context.Context, listID, todoID int) (Todo, error) {
	var todo Todo
	err := s.db.GetContext(ctx, &todo, `SELECT id, title, done FROM todos WHERE todolist_id = ? AND id = ?`, listID, todoID)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, fmt.Errorf("todo %d in list %d: %w", todoID, listID, ErrNotFound)
	}
	if err != nil {
		return Todo{}, fmt.Errorf("failed to get todo %d: %w", todoID, err)
	}
	return todo, nil
}

// ToggleTodoDone flips done flag of the todo
func (s *SQLStore) ToggleTodoDone(ctx context.Context, listID, todoID int) (bool, error) {
	return s.exec(ctx, "toggle todo", `UPDATE todos SET done = NOT done WHERE todolist_id = ? AND id = ?`, listID, todoID)
}

// DeleteTodo removes the todo
func (s *SQLStore) DeleteTodo(ctx context.Context, listID, todoID int) (bool, error) {
	return s.exec(ctx, "delete todo", `DELETE FROM todos WHERE todolist_id = ? AND id = ?`, listID, todoID)
}

// MarkAllDone sets done flag on all todos of the list, false if no todo was updated
func (s *SQLStore) MarkAllDone(ctx context.Context, listID int) (bool, error) {
	return s.exec(ctx, "mark all done", `UPDATE todos SET done = 1 WHERE todolist_id = ?`, listID)
}

// CreateTodo adds a todo to the list. Selecting the list id in the insert turns a missing list
// into zero affected rows instead of a foreign key failure.
func (s *SQLStore) CreateTodo(ctx context.Context, listID int, title string) (bool, error) {
	return s.exec(ctx, "create todo", `INSERT INTO todos (title, todolist_id) SELECT ?, id FROM todolists WHERE id = ?`, title, listID)
}

// DeleteList removes the list, todos are removed by cascade
func (s *SQLStore) DeleteList(ctx context.Context, listID int) (bool, error) {
	return s.exec(ctx, "delete list", `DELETE FROM todolists WHERE id = ?`, listID)
}

// RenameList sets a new title. Uniqueness is expected to be checked by the caller.
func (s *SQLStore) RenameList(ctx context.Context, listID int, title string) (bool, error) {
	return s.exec(ctx, "rename list", `UPDATE todolists SET title = ? WHERE id = ?`, title, listID)
}

// TitleExists checks for a list with exactly the same title
func (s *SQLStore) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM todolists WHERE title = ?)`, title); err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return exists, nil
}

// CreateList adds an empty list. A duplicate title is reported as false, not as error.
func (s *SQLStore) CreateList(ctx context.Context, title string) (bool, error) {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO todolists (title) VALUES (?)`, title); err != nil {
		if isUniqueViolation(err) {
			log.Printf("[DEBUG] create list %q: %s", title, resultConflict)
			return resultConflict.ok(nil)
		}
		return false, fmt.Errorf("failed to create list %q: %w", title, err)
	}
	return resultOK.ok(nil)
}

// Authenticate checks the password against the stored bcrypt hash of the user
func (s *SQLStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := s.db.GetContext(ctx, &hash, `SELECT password FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return checkPassword(hash, password)
}

// UpsertUser stores the user with the given bcrypt password hash, replacing the old hash
func (s *SQLStore) UpsertUser(ctx context.Context, username, hash string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET password = excluded.password`, username, hash)
	if err != nil {
		return fmt.Errorf("failed to save user %q: %w", username, err)
	}
	return nil
}

// Seed inserts lists in a single transaction if the database has no lists yet.
// Ids of the passed lists and todos are ignored, the database assigns new ones.
func (s *SQLStore) Seed(ctx context.Context, lists []TodoList) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM todolists`); err != nil {
		return fmt.Errorf("failed to count lists: %w", err)
	}
	if count > 0 {
		log.Printf("[DEBUG] database has %d lists, seed skipped", count)
		return nil
	}

	for _, l := range lists {
		res, err := tx.ExecContext(ctx, `INSERT INTO todolists (title) VALUES (?)`, l.Title)
		if err != nil {
			return fmt.Errorf("failed to seed list %q: %w", l.Title, err)
		}
		listID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get id of list %q: %w", l.Title, err)
		}
		for _, t := range l.Todos {
			if _, err := tx.ExecContext(ctx, `INSERT INTO todos (title, done, todolist_id) VALUES (?, ?, ?)`,
				t.Title, t.Done, listID); err != nil {
				return fmt.Errorf("failed to seed todo %q: %w", t.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Printf("[INFO] seeded %d lists", len(lists))
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) selectTodos(ctx context.Context, query string, listID int) ([]Todo, error) {
	todos := []Todo{}
	if err := s.db.SelectContext(ctx, &todos, query, listID); err != nil {
		return nil, fmt.Errorf("failed to query todos of list %d: %w", listID, err)
	}
	return todos, nil
}

// exec runs a single statement, no affected rows means the target doesn't exist
func (s *SQLStore) exec(ctx context.Context, op, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to %s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows for %s: %w", op, err)
	}
	if n == 0 {
		log.Printf("[DEBUG] %s: %s", op, resultNotFound)
		return resultNotFound.ok(nil)
	}
	return resultOK.ok(nil)
}

// isUniqueViolation checks the driver's extended result code, error text is not reliable
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	default:
		return false
	}
}
