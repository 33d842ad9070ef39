package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/todos/app/store"
)

func newSQLTestServer(t *testing.T, cfg Config) (*store.SQLStore, *httptest.Server) {
	t.Helper()
	sqlStore, err := store.NewSQLStore(t.Context(), store.SQLConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlStore.Close() })

	cfg.Stores = func(*store.SessionState) store.Store { return sqlStore }
	ts := httptest.NewServer(newTestServer(t, cfg).routes())
	t.Cleanup(ts.Close)
	return sqlStore, ts
}

func TestServer_IntegrationSQLite(t *testing.T) {
	sqlStore, ts := newSQLTestServer(t, Config{})
	require.NoError(t, sqlStore.Seed(t.Context(), store.SampleLists()))

	alice := newTestClient(t, ts, true)
	bob := newTestClient(t, ts, true)

	_, body := alice.get("/lists")
	assert.Less(t, strings.Index(body, "Work Todos"), strings.Index(body, "Home Todos"))

	resp, body := alice.post("/lists", url.Values{"todoListTitle": {"Groceries"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The todo list has been created.")

	// database is shared by all sessions
	resp, body = bob.post("/lists", url.Values{"todoListTitle": {"Groceries"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "The list title must be unique.")

	id := bob.listID("Groceries")
	base := listURL(id)
	alice.post(base+"/todos", url.Values{"todoTitle": {"Milk"}})
	_, body = bob.post(base+"/todos", url.Values{"todoTitle": {"eggs"}})
	assert.Less(t, strings.Index(body, "<h3>eggs</h3>"), strings.Index(body, "<h3>Milk</h3>"))

	milk := bob.todoID(id, "Milk")
	_, body = alice.post(fmt.Sprintf("%s/todos/%d/toggle", base, milk), nil)
	assert.Contains(t, body, "&#34;Milk&#34; marked done.")

	_, body = alice.post(base+"/complete_all", nil)
	assert.Contains(t, body, "All todos have been marked as done.")

	_, body = alice.post(base+"/destroy", nil)
	assert.Contains(t, body, "Todo list deleted.")

	resp, _ = bob.get(base)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_IntegrationSQLiteEmptyListCompleteAll(t *testing.T) {
	_, ts := newSQLTestServer(t, Config{})
	c := newTestClient(t, ts, false)

	c.post("/lists", url.Values{"todoListTitle": {"Empty"}})
	id := c.listID("Empty")

	resp, body := c.get(listURL(id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, `id="complete-all"`, "nothing to complete in empty list")

	resp, _ = c.post(listURL(id)+"/complete_all", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "no todo rows updated")
}

func TestServer_IntegrationSQLiteAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	sqlStore, ts := newSQLTestServer(t, Config{AuthUser: "admin"})
	require.NoError(t, sqlStore.UpsertUser(t.Context(), "admin", string(hash)))

	c := newTestClient(t, ts, false)
	resp, _ := c.post("/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.post("/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = c.get("/lists")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Run(t *testing.T) {
	srv := newTestServer(t, Config{Seed: true})

	// pick a free port
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/lists")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server didn't stop")
	}
}
