package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/todos/app/store"
	"github.com/umputun/todos/app/web/enums"
)

const msgUniqueTitle = "The list title must be unique."

// handleLists renders all lists, not done first
func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.storeFor(r).ListAllSorted(r.Context())
	if err != nil {
		s.serverError(w, "failed to load lists", err)
		return
	}

	data := s.newTemplateData(r)
	data.Lists = lists
	s.render(w, http.StatusOK, "lists.html", data)
}

// handleNewListForm renders empty form for a new list
func (s *Server) handleNewListForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "new-list.html", s.newTemplateData(r))
}

// handleCreateList validates the title and creates a list
func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	st, sess := s.storeFor(r), s.sessionFrom(r)
	title, problems := s.validator.checkTitle(r.FormValue("todoListTitle"), listTitleMessages)
	if len(problems) == 0 {
		exists, err := st.TitleExists(r.Context(), title)
		if err != nil {
			s.serverError(w, "failed to check list title", err)
			return
		}
		if exists {
			problems = append(problems, msgUniqueTitle)
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			sess.addFlash(enums.FlashKindError, p)
		}
		data := s.newTemplateData(r)
		data.FormTitle = r.FormValue("todoListTitle")
		s.render(w, http.StatusUnprocessableEntity, "new-list.html", data)
		return
	}

	created, err := st.CreateList(r.Context(), title)
	if err != nil {
		s.serverError(w, "failed to create list", err)
		return
	}
	if !created { // lost a race with another request creating the same title
		sess.addFlash(enums.FlashKindError, msgUniqueTitle)
		data := s.newTemplateData(r)
		data.FormTitle = r.FormValue("todoListTitle")
		s.render(w, http.StatusUnprocessableEntity, "new-list.html", data)
		return
	}

	sess.addFlash(enums.FlashKindSuccess, "The todo list has been created.")
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// handleList renders a single list with sorted todos
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	data, err := s.listPageData(r, listID)
	if err != nil {
		s.storeError(w, fmt.Sprintf("failed to load list %d", listID), err)
		return
	}
	s.render(w, http.StatusOK, "list.html", data)
}

// handleCreateTodo validates the title and adds a todo to the list
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	st, sess := s.storeFor(r), s.sessionFrom(r)

	title, problems := s.validator.checkTitle(r.FormValue("todoTitle"), todoTitleMessages)
	if len(problems) > 0 {
		for _, p := range problems {
			sess.addFlash(enums.FlashKindError, p)
		}
		data, err := s.listPageData(r, listID)
		if err != nil {
			s.storeError(w, fmt.Sprintf("failed to load list %d", listID), err)
			return
		}
		data.FormTitle = r.FormValue("todoTitle")
		s.render(w, http.StatusUnprocessableEntity, "list.html", data)
		return
	}

	created, err := st.CreateTodo(r.Context(), listID, title)
	if err != nil {
		s.serverError(w, "failed to create todo", err)
		return
	}
	if !created {
		notFound(w)
		return
	}
	sess.addFlash(enums.FlashKindSuccess, "The todo has been created.")
	http.Redirect(w, r, listURL(listID), http.StatusSeeOther)
}

// handleToggleTodo flips done flag of a todo, flash message reflects the new state
func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	listID, todoID, ok := pathTodoIDs(r)
	if !ok {
		notFound(w)
		return
	}
	st := s.storeFor(r)

	toggled, err := st.ToggleTodoDone(r.Context(), listID, todoID)
	if err != nil {
		s.serverError(w, "failed to toggle todo", err)
		return
	}
	if !toggled {
		notFound(w)
		return
	}

	todo, err := st.GetTodo(r.Context(), listID, todoID)
	if err != nil {
		s.storeError(w, fmt.Sprintf("failed to load todo %d", todoID), err)
		return
	}
	msg := fmt.Sprintf(`"%s" marked as NOT done!`, todo.Title)
	if todo.Done {
		msg = fmt.Sprintf(`"%s" marked done.`, todo.Title)
	}
	s.sessionFrom(r).addFlash(enums.FlashKindSuccess, msg)
	http.Redirect(w, r, listURL(listID), http.StatusSeeOther)
}

// handleDeleteTodo removes a todo
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	listID, todoID, ok := pathTodoIDs(r)
	if !ok {
		notFound(w)
		return
	}
	deleted, err := s.storeFor(r).DeleteTodo(r.Context(), listID, todoID)
	if err != nil {
		s.serverError(w, "failed to delete todo", err)
		return
	}
	if !deleted {
		notFound(w)
		return
	}
	s.sessionFrom(r).addFlash(enums.FlashKindSuccess, "The todo has been deleted.")
	http.Redirect(w, r, listURL(listID), http.StatusSeeOther)
}

// handleCompleteAll marks all todos of the list as done
func (s *Server) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	done, err := s.storeFor(r).MarkAllDone(r.Context(), listID)
	if err != nil {
		s.serverError(w, "failed to complete todos", err)
		return
	}
	if !done {
		notFound(w)
		return
	}
	s.sessionFrom(r).addFlash(enums.FlashKindSuccess, "All todos have been marked as done.")
	http.Redirect(w, r, listURL(listID), http.StatusSeeOther)
}

// handleEditListForm renders the edit form with current title
func (s *Server) handleEditListForm(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	list, err := s.storeFor(r).GetList(r.Context(), listID)
	if err != nil {
		s.storeError(w, fmt.Sprintf("failed to load list %d", listID), err)
		return
	}
	data := s.newTemplateData(r)
	data.List = list
	data.FormTitle = list.Title
	s.render(w, http.StatusOK, "edit-list.html", data)
}

// handleEditList validates and sets a new list title
func (s *Server) handleEditList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	st, sess := s.storeFor(r), s.sessionFrom(r)

	title, problems := s.validator.checkTitle(r.FormValue("todoListTitle"), listTitleMessages)
	if len(problems) == 0 {
		exists, err := st.TitleExists(r.Context(), title)
		if err != nil {
			s.serverError(w, "failed to check list title", err)
			return
		}
		if exists {
			problems = append(problems, msgUniqueTitle)
		}
	}

	if len(problems) > 0 {
		list, err := st.GetList(r.Context(), listID)
		if err != nil {
			s.storeError(w, fmt.Sprintf("failed to load list %d", listID), err)
			return
		}
		for _, p := range problems {
			sess.addFlash(enums.FlashKindError, p)
		}
		data := s.newTemplateData(r)
		data.List = list
		data.FormTitle = r.FormValue("todoListTitle")
		s.render(w, http.StatusUnprocessableEntity, "edit-list.html", data)
		return
	}

	renamed, err := st.RenameList(r.Context(), listID, title)
	if err != nil {
		s.serverError(w, "failed to rename list", err)
		return
	}
	if !renamed {
		notFound(w)
		return
	}
	sess.addFlash(enums.FlashKindSuccess, "Todo list updated.")
	http.Redirect(w, r, listURL(listID), http.StatusSeeOther)
}

// handleDeleteList removes the list with all its todos
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		notFound(w)
		return
	}
	deleted, err := s.storeFor(r).DeleteList(r.Context(), listID)
	if err != nil {
		s.serverError(w, "failed to delete list", err)
		return
	}
	if !deleted {
		notFound(w)
		return
	}
	s.sessionFrom(r).addFlash(enums.FlashKindSuccess, "Todo list deleted.")
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// handleThemeToggle toggles the theme
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	nextTheme := enums.ThemeDark
	if s.getTheme(r) == enums.ThemeDark {
		nextTheme = enums.ThemeLight
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    nextTheme.String(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	back := r.Header.Get("Referer")
	if back == "" {
		back = "/lists"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// listPageData loads the list and its sorted todos for the list page
func (s *Server) listPageData(r *http.Request, listID int) (TemplateData, error) {
	st := s.storeFor(r)
	list, err := st.GetList(r.Context(), listID)
	if err != nil {
		return TemplateData{}, err
	}
	todos, err := st.ListTodosSorted(r.Context(), list)
	if err != nil {
		return TemplateData{}, err
	}
	data := s.newTemplateData(r)
	data.List = list
	data.Todos = todos
	return data, nil
}

// storeError responds 404 for missing records and 500 for anything else
func (s *Server) storeError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		notFound(w)
		return
	}
	s.serverError(w, msg, err)
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	log.Printf("[ERROR] %s: %v", msg, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "Not found", http.StatusNotFound)
}

// pathID parses a positive numeric path value
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pathTodoIDs(r *http.Request) (listID, todoID int, ok bool) {
	if listID, ok = pathID(r, "id"); !ok {
		return 0, 0, false
	}
	if todoID, ok = pathID(r, "todoID"); !ok {
		return 0, 0, false
	}
	return listID, todoID, true
}

func listURL(listID int) string {
	return "/lists/" + strconv.Itoa(listID)
}
