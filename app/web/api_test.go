package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_APILists(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, Config{Seed: true}).routes())
	defer ts.Close()
	c := newTestClient(t, ts, true)

	resp, body := c.get("/api/v1/lists")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var res APIListsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Len(t, res.Lists, 4)
	assert.Equal(t, "Additional Todos", res.Lists[0].Title)
	assert.NotNil(t, res.Lists[0].Todos)
	assert.Empty(t, res.Lists[0].Todos)

	home := res.Lists[3]
	assert.Equal(t, "Home Todos", home.Title)
	assert.True(t, home.Done)
	assert.Equal(t, 4, home.Total)
	assert.Equal(t, 4, home.DoneCount)
}

func TestServer_APIList(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, Config{}).routes())
	defer ts.Close()
	c := newTestClient(t, ts, true)

	c.post("/lists", url.Values{"todoListTitle": {"Groceries"}})
	id := c.listID("Groceries")
	c.post(listURL(id)+"/todos", url.Values{"todoTitle": {"Milk"}})
	c.post(listURL(id)+"/todos", url.Values{"todoTitle": {"eggs"}})

	resp, body := c.get("/api/v1/lists/" + strconv.Itoa(id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list APIList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Equal(t, id, list.ID)
	assert.False(t, list.Done)
	require.Len(t, list.Todos, 2)
	assert.Equal(t, "eggs", list.Todos[0].Title)
	assert.Equal(t, "Milk", list.Todos[1].Title)

	t.Run("missing list", func(t *testing.T) {
		resp, body := c.get("/api/v1/lists/999")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error":"list not found"}`, body)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, _ := c.get("/api/v1/lists/abc")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
