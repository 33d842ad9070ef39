package store

import (
	"sort"
	"strings"
)

// SortLists orders lists by case-insensitive title and moves done lists after the rest,
// keeping title order inside each group
func SortLists(lists []TodoList) []TodoList {
	sort.SliceStable(lists, func(i, j int) bool {
		return strings.ToLower(lists[i].Title) < strings.ToLower(lists[j].Title)
	})
	return PartitionLists(lists)
}

// PartitionLists returns not-done lists followed by done lists, preserving the relative order
// inside each group
func PartitionLists(lists []TodoList) []TodoList {
	undone := make([]TodoList, 0, len(lists))
	done := make([]TodoList, 0, len(lists))
	for _, l := range lists {
		if l.IsDone() {
			done = append(done, l)
			continue
		}
		undone = append(undone, l)
	}
	return append(undone, done...)
}

// SortTodos orders todos with not-done first, each group by case-insensitive title
func SortTodos(todos []Todo) []Todo {
	sort.SliceStable(todos, func(i, j int) bool {
		if todos[i].Done != todos[j].Done {
			return !todos[i].Done
		}
		return strings.ToLower(todos[i].Title) < strings.ToLower(todos[j].Title)
	})
	return todos
}
