// Package web implements the web server for todos application
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	cache "github.com/go-pkgz/expirable-cache/v3"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/todos/app/store"
	"github.com/umputun/todos/app/web/enums"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// StoreFactory makes a store for a request, bound to the session state of the visitor.
// Backends not keeping data in session ignore the state.
type StoreFactory func(state *store.SessionState) store.Store

// Server represents the web server
type Server struct {
	stores         StoreFactory
	templates      map[string]*template.Template
	sessions       cache.Cache[string, *session] // token -> session
	sessionTTL     time.Duration
	seed           bool // new sessions start with sample lists
	authUser       string
	version        string
	validator      *formValidator
	csrfProtection *http.CrossOriginProtection // csrf protection for POST endpoints
	loginLimiter   *limiter.Limiter
}

// Config holds server configuration
type Config struct {
	Stores      StoreFactory  // required
	SessionTTL  time.Duration // session and cookie lifetime, defaults to 31 days
	MaxSessions int           // 0 for unlimited
	Seed        bool          // populate new sessions with sample lists
	AuthUser    string        // user required to sign in, empty to disable auth
	Version     string
}

// TemplateData holds data for templates
type TemplateData struct {
	Theme       enums.Theme
	Flashes     []flash
	AuthEnabled bool
	User        string
	Version     string
	MaxTitleLen int

	Lists     []store.TodoList // all lists page
	List      store.TodoList   // single list page
	Todos     []store.Todo     // sorted todos of List
	FormTitle string           // submitted title to show again after a failed validation
	LoginUser string
	Error     string
}

// newTemplateData creates a TemplateData with common fields populated from request.
// Pending flashes are taken from the session, so they are shown once.
func (s *Server) newTemplateData(r *http.Request) TemplateData {
	sess := s.sessionFrom(r)
	return TemplateData{
		Theme:       s.getTheme(r),
		Flashes:     sess.popFlashes(),
		AuthEnabled: s.authUser != "",
		User:        sess.getUser(),
		Version:     s.version,
		MaxTitleLen: maxTitleLen,
	}
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Stores == nil {
		return nil, fmt.Errorf("web server initialization failed: store factory is required")
	}

	sessionTTL := cfg.SessionTTL
	if sessionTTL == 0 {
		sessionTTL = 31 * 24 * time.Hour
	}

	sessions := cache.NewCache[string, *session]().WithTTL(sessionTTL)
	if cfg.MaxSessions > 0 {
		sessions = sessions.WithMaxKeys(cfg.MaxSessions)
	}

	lmt := tollbooth.NewLimiter(5, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessage("Too many login attempts, try again later")

	s := &Server{
		stores:         cfg.Stores,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		seed:           cfg.Seed,
		authUser:       cfg.AuthUser,
		version:        cfg.Version,
		validator:      newFormValidator(),
		csrfProtection: http.NewCrossOriginProtection(),
		loginLimiter:   lmt,
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web server initialization failed: failed to parse HTML templates: %w", err)
	}
	s.templates = templates

	return s, nil
}

// Run starts the web server
func (s *Server) Run(ctx context.Context, address string) error {
	go s.cleanupSessions(ctx)

	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// cleanupSessions drops expired sessions periodically, the cache only removes them on access
func (s *Server) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessions.DeleteExpired()
		}
	}
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("todos", "umputun", s.version),
		rest.Ping,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
		s.sessionMiddleware,
	)

	// must be added before any routes are defined
	if s.authUser != "" {
		log.Printf("[INFO] authentication enabled for user %q", s.authUser)
		router.Use(s.authMiddleware)
		router.HandleFunc("GET /login", s.handleLoginForm)
		router.With(s.csrfProtection.Handler, tollbooth.HTTPMiddleware(s.loginLimiter)).HandleFunc("POST /login", s.handleLogin)
		router.HandleFunc("GET /logout", s.handleLogout)
	}

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/lists", http.StatusFound)
	})

	router.Group().Route(func(lists *routegroup.Bundle) {
		lists.Use(rest.NoCache)
		lists.HandleFunc("GET /lists", s.handleLists)
		lists.HandleFunc("GET /lists/new", s.handleNewListForm)
		lists.HandleFunc("GET /lists/{id}", s.handleList)
		lists.HandleFunc("GET /lists/{id}/edit", s.handleEditListForm)

		post := lists.With(s.csrfProtection.Handler)
		post.HandleFunc("POST /lists", s.handleCreateList)
		post.HandleFunc("POST /lists/{id}/todos", s.handleCreateTodo)
		post.HandleFunc("POST /lists/{id}/todos/{todoID}/toggle", s.handleToggleTodo)
		post.HandleFunc("POST /lists/{id}/todos/{todoID}/destroy", s.handleDeleteTodo)
		post.HandleFunc("POST /lists/{id}/complete_all", s.handleCompleteAll)
		post.HandleFunc("POST /lists/{id}/edit", s.handleEditList)
		post.HandleFunc("POST /lists/{id}/destroy", s.handleDeleteList)
	})

	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.With(s.csrfProtection.Handler).HandleFunc("POST /theme", s.handleThemeToggle)
	})

	// JSON API for programmatic access
	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /lists", s.handleAPILists)
		api.HandleFunc("GET /lists/{id}", s.handleAPIList)
	})

	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("[ERROR] failed to create static file system: %v", err)
		router.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	} else {
		router.HandleFiles("/static/", http.FS(fsys))
	}

	return router
}

// render renders a page template with the given status
func (s *Server) render(w http.ResponseWriter, status int, page string, data TemplateData) {
	tmpl, ok := s.templates[page]
	if !ok {
		log.Printf("[WARN] template %s not found", page)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		log.Printf("[WARN] failed to execute template %s: %v", page, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// parseTemplates parses every page together with the base layout
func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"plural": plural,
	}

	pages, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, path := range pages {
		name := strings.TrimPrefix(path, "templates/")
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templatesFS, "templates/base.html", path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

func (s *Server) getTheme(r *http.Request) enums.Theme {
	cookie, err := r.Cookie("theme")
	if err != nil {
		return enums.ThemeLight
	}
	theme, err := enums.ParseTheme(cookie.Value)
	if err != nil {
		log.Printf("[WARN] invalid theme %q: %v", cookie.Value, err)
		return enums.ThemeLight
	}
	return theme
}

// plural picks singular or plural noun form for count
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
