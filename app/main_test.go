package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/todos/app/store"
)

func Test_setupLogsWithLogsDisabled(t *testing.T) {
	opts.Log.Enabled = false
	assert.Equal(t, os.Stdout, setupLogs())
}

func Test_setupLogsToFile(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "todos.log")

	opts.Log.Enabled = true
	opts.Log.Filename = tmpfile
	opts.Log.MaxSize = 100
	opts.Log.MaxBackups = 7
	opts.Log.MaxAge = 0
	opts.Log.EnabledCompress = false
	defer func() {
		opts.Log.Enabled = false
		setupLogs()
	}()

	out := setupLogs()
	assert.IsType(t, &lumberjack.Logger{}, out)

	logger := out.(*lumberjack.Logger)
	assert.Equal(t, tmpfile, logger.Filename)
	assert.Equal(t, 100, logger.MaxSize)
	assert.Equal(t, 7, logger.MaxBackups)
	assert.Equal(t, 0, logger.MaxAge)
	assert.False(t, logger.Compress)
}

func Test_validateOpts(t *testing.T) {
	defer func() { opts.Auth.User, opts.Auth.Hash = "", "" }()

	tests := []struct {
		name    string
		user    string
		hash    string
		wantErr bool
	}{
		{"no auth", "", "", false},
		{"user with hash", "admin", "$2a$10$abc", false},
		{"user without hash", "admin", "", true},
		{"hash without user", "", "$2a$10$abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts.Auth.User, opts.Auth.Hash = tt.user, tt.hash
			err := validateOpts()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_makeStoresSession(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	opts.Backend = "session"
	opts.Auth.User, opts.Auth.Hash = "admin", string(hash)
	defer func() { opts.Auth.User, opts.Auth.Hash = "", "" }()

	stores, closeFn, err := makeStores(t.Context())
	require.NoError(t, err)
	defer closeFn()

	first := stores(store.NewSessionState(nil))
	second := stores(store.NewSessionState(nil))
	ok, err := first.CreateList(t.Context(), "mine")
	require.NoError(t, err)
	require.True(t, ok)
	exists, err := second.TitleExists(t.Context(), "mine")
	require.NoError(t, err)
	assert.False(t, exists, "each session has its own lists")

	ok, err = first.Authenticate(t.Context(), "admin", "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_makeStoresSQLite(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	opts.Backend = "sqlite"
	opts.SQLite.Path = filepath.Join(t.TempDir(), "todos.db")
	opts.SQLite.MaxConns = 2
	opts.Seed = true
	opts.Auth.User, opts.Auth.Hash = "admin", string(hash)
	defer func() {
		opts.Backend, opts.Seed = "session", false
		opts.Auth.User, opts.Auth.Hash = "", ""
	}()

	stores, closeFn, err := makeStores(t.Context())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	first := stores(store.NewSessionState(nil))
	second := stores(store.NewSessionState(nil))
	lists, err := second.ListAllSorted(t.Context())
	require.NoError(t, err)
	assert.Len(t, lists, 4, "seeded")

	ok, err := first.CreateList(t.Context(), "shared")
	require.NoError(t, err)
	require.True(t, ok)
	exists, err := second.TitleExists(t.Context(), "shared")
	require.NoError(t, err)
	assert.True(t, exists, "database shared by sessions")

	ok, err = second.Authenticate(t.Context(), "admin", "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_makeStoresBadBackend(t *testing.T) {
	opts.Backend = "redis"
	defer func() { opts.Backend = "session" }()
	_, _, err := makeStores(t.Context())
	assert.EqualError(t, err, `unknown backend "redis"`)
}

func Test_makeStoresBadPath(t *testing.T) {
	opts.Backend = "sqlite"
	opts.SQLite.Path = "/invalid/path/that/does/not/exist/todos.db"
	defer func() { opts.Backend = "session" }()
	_, _, err := makeStores(t.Context())
	assert.Error(t, err)
}
