// Package web serves the dashboard over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/observability"
	"crypto-tracker/internal/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "tracker_session"

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Store      *session.Store
	Currencies []domain.Currency // selector entries; nil loads the embedded catalog
	Logger     *log.Logger
}

// Server renders pages for browser sessions held in a session store.
type Server struct {
	store      *session.Store
	currencies []domain.Currency
	pages      map[string]*template.Template
	logger     *log.Logger
	started    time.Time
}

// New parses the templates and creates a server.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	currencies := opts.Currencies
	if currencies == nil {
		var err error
		currencies, err = domain.Currencies()
		if err != nil {
			return nil, fmt.Errorf("load currencies: %w", err)
		}
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		store:      opts.Store,
		currencies: currencies,
		pages:      pages,
		logger:     logger,
		started:    time.Now(),
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"list", "detail", "error"} {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.instrument("list", s.handleList))
	mux.HandleFunc("GET /crypto/{id}", s.instrument("detail", s.handleDetail))
	mux.HandleFunc("GET /crypto/{$}", s.instrument("detail", s.handleDetail))

	mux.HandleFunc("POST /currency", s.instrument("currency", s.handleCurrency))
	mux.HandleFunc("POST /search", s.instrument("search", s.handleSearch))
	mux.HandleFunc("GET /suggest", s.instrument("suggest", s.handleSuggest))
	mux.HandleFunc("POST /suggest/pick", s.instrument("suggest_pick", s.handlePick))

	mux.HandleFunc("POST /login/open", s.instrument("login_open", s.handleLoginOpen))
	mux.HandleFunc("POST /login/close", s.instrument("login_close", s.handleLoginClose))
	mux.HandleFunc("POST /login", s.instrument("login", s.handleLogin))
	mux.HandleFunc("POST /logout", s.instrument("logout", s.handleLogout))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", observability.Handler())

	// Status endpoint
	mux.HandleFunc("GET /status", s.handleStatus)

	return mux
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status         string    `json:"status"`
	Uptime         string    `json:"uptime"`
	Started        time.Time `json:"started"`
	ActiveSessions int       `json:"active_sessions"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Status:         "running",
		Uptime:         time.Since(s.started).Round(time.Second).String(),
		Started:        s.started,
		ActiveSessions: s.store.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// sessionFor returns the caller's session, starting a new one when the cookie
// is missing, malformed or expired.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		sess, err := s.store.Get(r.Context(), c.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrInvalidInput) {
			return nil, err
		}
	}

	sess, err := s.store.Create(r.Context())
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records render count and latency for a route.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		observability.RecordPageRender(route, rec.status, time.Since(start).Seconds())
	}
}

// returnPath reads the "return" form value. Only same-site absolute paths are
// honored; anything else sends the browser home.
func returnPath(r *http.Request) string {
	p := r.FormValue("return")
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}
