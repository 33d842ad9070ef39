package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionState(t *testing.T) {
	seed := SampleLists()
	state := NewSessionState(seed)
	assert.Equal(t, 12, state.lastID)

	seed[0].Todos[0].Title = "changed"
	seed[0].Title = "changed"
	st := NewSessionStore(state, nil)
	list, err := st.GetList(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Work Todos", list.Title, "state owns a copy of the seed")
	assert.Equal(t, "Get coffee", list.Todos[0].Title)

	empty := NewSessionState(nil)
	assert.Zero(t, empty.lastID)
	assert.Empty(t, empty.lists)
}

func TestSessionStore_IDsNotReused(t *testing.T) {
	st := NewSessionStore(NewSessionState(SampleLists()), nil)
	ctx := t.Context()

	ok, err := st.DeleteList(ctx, 11)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.CreateList(ctx, "fresh")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.CreateTodo(ctx, 10, "first")
	require.NoError(t, err)
	require.True(t, ok)

	lists, err := st.ListAllSorted(ctx)
	require.NoError(t, err)
	ids := map[string]int{}
	for _, l := range lists {
		ids[l.Title] = l.ID
	}
	assert.Equal(t, 13, ids["fresh"])

	list, err := st.GetList(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list.Todos, 1)
	assert.Equal(t, 14, list.Todos[0].ID)
}

func TestSessionStore_SeededOrder(t *testing.T) {
	st := NewSessionStore(NewSessionState(SampleLists()), nil)
	lists, err := st.ListAllSorted(t.Context())
	require.NoError(t, err)

	titles := make([]string, 0, len(lists))
	for _, l := range lists {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"Additional Todos", "social todos", "Work Todos", "Home Todos"}, titles)
}

func TestSessionStore_MarkAllDoneEmptyList(t *testing.T) {
	st := NewSessionStore(NewSessionState(SampleLists()), nil)
	ok, err := st.MarkAllDone(t.Context(), 10)
	require.NoError(t, err)
	assert.True(t, ok, "existing list is enough")
}

func TestSessionStore_ListTodosSortedUsesPassedList(t *testing.T) {
	st := NewSessionStore(NewSessionState(nil), nil)
	list := TodoList{ID: 1, Todos: []Todo{{ID: 1, Title: "b"}, {ID: 2, Title: "a", Done: true}, {ID: 3, Title: "C"}}}

	todos, err := st.ListTodosSorted(t.Context(), list)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "C", "a"}, todoTitles(todos))
	assert.Equal(t, "b", list.Todos[0].Title, "passed list is not reordered")
}

func TestSessionStore_SharedState(t *testing.T) {
	state := NewSessionState(nil)
	first := NewSessionStore(state, nil)
	second := NewSessionStore(state, nil)

	ok, err := first.CreateList(t.Context(), "shared")
	require.NoError(t, err)
	require.True(t, ok)

	exists, err := second.TitleExists(t.Context(), "shared")
	require.NoError(t, err)
	assert.True(t, exists, "stores over one state see the same lists")
}

func TestSessionStore_ConcurrentMutations(t *testing.T) {
	st := NewSessionStore(NewSessionState(nil), nil)
	ctx := t.Context()
	listID := mustCreateList(t, st, "busy")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.CreateTodo(ctx, listID, "todo")
			_, _ = st.ListAllSorted(ctx)
		}()
	}
	wg.Wait()

	list, err := st.GetList(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, list.Todos, 20)

	seen := map[int]bool{}
	for _, todo := range list.Todos {
		assert.False(t, seen[todo.ID], "duplicate id %d", todo.ID)
		seen[todo.ID] = true
	}
}

func TestCheckPassword(t *testing.T) {
	hash := testHash(t, "pass")

	ok, err := checkPassword(hash, "pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checkPassword(hash, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = checkPassword("garbage", "pass")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSessionState_Modified(t *testing.T) {
	state := NewSessionState(SampleLists())
	st := NewSessionStore(state, nil)
	assert.False(t, state.Modified(), "seeding is not a change")

	_, err := st.ListAllSorted(t.Context())
	require.NoError(t, err)
	ok, err := st.DeleteList(t.Context(), 999)
	require.NoError(t, err)
	require.False(t, ok)
	assert.False(t, state.Modified(), "reads and failed mutations leave state unmodified")

	ok, err = st.CreateList(t.Context(), "new")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, state.Modified())
}
