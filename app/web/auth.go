package web

import (
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/todos/app/web/enums"
)

// handleLoginForm displays the login form
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	data := s.newTemplateData(r)
	data.LoginUser = s.authUser
	s.render(w, http.StatusOK, "login.html", data)
}

// handleLogin checks credentials against the current store and signs the session in
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username, password := strings.TrimSpace(r.FormValue("username")), r.FormValue("password")
	if username == "" || password == "" {
		s.renderLoginError(w, r, username, "Username and password are required")
		return
	}

	ok, err := s.storeFor(r).Authenticate(r.Context(), username, password)
	if err != nil {
		s.serverError(w, "failed to authenticate", err)
		return
	}
	if !ok {
		log.Printf("[WARN] failed login attempt for %q", username)
		s.renderLoginError(w, r, username, "Invalid username or password")
		return
	}

	sess := s.renewSession(w, r) // new token on sign in
	sess.setUser(username)
	sess.addFlash(enums.FlashKindInfo, "Welcome, "+username+"!")
	log.Printf("[INFO] user %q signed in", username)
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// handleLogout signs the session out, its lists stay with the session
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessionFrom(r).setUser("")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// renderLoginError renders the login form with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, username, errorMsg string) {
	data := s.newTemplateData(r)
	data.LoginUser = username
	data.Error = errorMsg
	s.render(w, http.StatusUnauthorized, "login.html", data)
}

// authMiddleware checks for a signed-in session or falls back to basic auth
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// skip auth for login page and static resources
		if r.URL.Path == "/login" || strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		sess := s.sessionFrom(r)
		if sess.getUser() != "" {
			next.ServeHTTP(w, r)
			return
		}

		// fallback to basic auth for API clients
		if username, password, ok := r.BasicAuth(); ok {
			valid, err := s.storeFor(r).Authenticate(r.Context(), username, password)
			if err != nil {
				log.Printf("[WARN] basic auth check failed: %v", err)
			}
			if valid {
				next.ServeHTTP(w, r)
				return
			}
		}

		// no valid auth, redirect to login
		if r.Header.Get("Accept") == "" || strings.Contains(r.Header.Get("Accept"), "text/html") {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="Todos"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}
