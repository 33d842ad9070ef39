package store

// SampleLists returns a fresh copy of the lists used with --seed
func SampleLists() []TodoList {
	return []TodoList{
		{ID: 1, Title: "Work Todos", Todos: []Todo{
			{ID: 2, Title: "Get coffee", Done: true},
			{ID: 3, Title: "Chat with co-workers", Done: true},
			{ID: 4, Title: "Duck out of meeting"},
		}},
		{ID: 5, Title: "Home Todos", Todos: []Todo{
			{ID: 6, Title: "Feed the cats", Done: true},
			{ID: 7, Title: "Go to bed", Done: true},
			{ID: 8, Title: "Buy milk", Done: true},
			{ID: 9, Title: "Study for the exam", Done: true},
		}},
		{ID: 10, Title: "Additional Todos", Todos: []Todo{}},
		{ID: 11, Title: "social todos", Todos: []Todo{
			{ID: 12, Title: "Go to Libby's birthday party"},
		}},
	}
}
