package web

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/todos/app/store"
)

// APIList represents a todo list in JSON API response
type APIList struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	Done      bool         `json:"done"`
	Total     int          `json:"total"`
	DoneCount int          `json:"done_count"`
	Todos     []store.Todo `json:"todos"`
}

// APIListsResponse is the JSON response for /api/v1/lists
type APIListsResponse struct {
	Lists []APIList `json:"lists"`
}

func toAPIList(l store.TodoList, todos []store.Todo) APIList {
	if todos == nil {
		todos = []store.Todo{}
	}
	return APIList{
		ID:        l.ID,
		Title:     l.Title,
		Done:      l.IsDone(),
		Total:     len(l.Todos),
		DoneCount: l.DoneCount(),
		Todos:     todos,
	}
}

// handleAPILists returns all lists in page order, todos in insertion order
func (s *Server) handleAPILists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.storeFor(r).ListAllSorted(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to load lists: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load lists")
		return
	}

	resp := APIListsResponse{Lists: make([]APIList, 0, len(lists))}
	for _, l := range lists {
		resp.Lists = append(resp.Lists, toAPIList(l, l.Todos))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleAPIList returns a single list with todos sorted as on the list page
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "list not found")
		return
	}

	st := s.storeFor(r)
	list, err := st.GetList(r.Context(), listID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, "list not found")
			return
		}
		log.Printf("[ERROR] failed to get list %d: %v", listID, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load list")
		return
	}

	todos, err := st.ListTodosSorted(r.Context(), list)
	if err != nil {
		log.Printf("[ERROR] failed to sort todos of list %d: %v", listID, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load todos")
		return
	}

	s.writeJSON(w, http.StatusOK, toAPIList(list, todos))
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
