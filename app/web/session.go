package web

import (
	"context"
	"net/http"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/todos/app/store"
	"github.com/umputun/todos/app/web/enums"
)

const sessionCookie = "todos-session"

type sessionCtxKey struct{}

// flash is a one-shot message shown on the next rendered page
type flash struct {
	Kind    enums.FlashKind
	Message string
}

// session keeps per-visitor state between requests
type session struct {
	state *store.SessionState // lists of the session backend, unused with sqlite

	mu      sync.Mutex
	token   string
	flashes []flash
	user    string // signed-in user, empty if not signed in
	dirty   bool   // has flashes or user worth keeping
	issued  bool   // registered in the session cache with the cookie sent, or retired
}

func (ss *session) addFlash(kind enums.FlashKind, msg string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.flashes = append(ss.flashes, flash{Kind: kind, Message: msg})
	ss.dirty = true
}

// popFlashes returns queued flashes and clears the queue
func (ss *session) popFlashes() []flash {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	res := ss.flashes
	ss.flashes = nil
	return res
}

func (ss *session) setUser(user string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.user = user
	ss.dirty = true
}

func (ss *session) getUser() string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.user
}

// sessionWriter issues a pending session right before the response header goes out
type sessionWriter struct {
	http.ResponseWriter
	issue func()
	once  sync.Once
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.once.Do(sw.issue)
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.once.Do(sw.issue)
	return sw.ResponseWriter.Write(b)
}

func (sw *sessionWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }

// sessionMiddleware attaches the visitor session to request context. A request without a known
// cookie gets a fresh session, which is registered and sent as a cookie only if the request
// stores something in it. Read-only anonymous traffic never takes a slot in the session cache.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		var sess *session
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if existing, ok := s.sessions.Get(cookie.Value); ok {
				sess = existing
				s.sessions.Set(cookie.Value, sess, 0) // sliding expiration
			}
		}
		if sess == nil {
			sess = s.newSession()
		}

		sw := &sessionWriter{ResponseWriter: w, issue: func() { s.issueSession(w, r, sess) }}
		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, sess)))
		sw.once.Do(sw.issue) // handler wrote nothing, headers are still open
	})
}

// newSession makes an unregistered session with its own state
func (s *Server) newSession() *session {
	var seed []store.TodoList
	if s.seed {
		seed = store.SampleLists()
	}
	return &session{token: uuid.NewString(), state: store.NewSessionState(seed)}
}

// issueSession registers a new session holding data and sets its cookie, no-op otherwise
func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, sess *session) {
	sess.mu.Lock()
	if sess.issued || (!sess.dirty && !sess.state.Modified()) {
		sess.mu.Unlock()
		return
	}
	sess.issued = true
	token := sess.token
	sess.mu.Unlock()

	s.sessions.Set(token, sess, 0)
	http.SetCookie(w, s.makeSessionCookie(r, token))
	log.Printf("[DEBUG] new session created, total %d", s.sessions.Len())
}

// renewSession moves everything of the request's session to a new token and retires the old one
func (s *Server) renewSession(w http.ResponseWriter, r *http.Request) *session {
	old := s.sessionFrom(r)
	old.mu.Lock()
	oldToken, wasIssued := old.token, old.issued
	renewed := &session{
		state:   old.state,
		token:   uuid.NewString(),
		flashes: old.flashes,
		user:    old.user,
		dirty:   true,
		issued:  true,
	}
	old.flashes, old.user = nil, ""
	old.issued = true // never issue the old token again
	old.mu.Unlock()

	if wasIssued {
		s.sessions.Invalidate(oldToken)
	}
	s.sessions.Set(renewed.token, renewed, 0)
	http.SetCookie(w, s.makeSessionCookie(r, renewed.token))
	return renewed
}

func (s *Server) makeSessionCookie(r *http.Request, token string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	}
}

// sessionFrom returns the session attached by sessionMiddleware.
// Requests that bypassed the middleware get a throwaway session.
func (s *Server) sessionFrom(r *http.Request) *session {
	if sess, ok := r.Context().Value(sessionCtxKey{}).(*session); ok {
		return sess
	}
	log.Printf("[WARN] no session in request context for %s", r.URL.Path)
	return &session{state: store.NewSessionState(nil)}
}

// storeFor returns the store bound to the request's session
func (s *Server) storeFor(r *http.Request) store.Store {
	return s.stores(s.sessionFrom(r).state)
}
