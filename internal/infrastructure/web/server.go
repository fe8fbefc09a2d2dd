// Package web is the presentation layer: it maps browser requests onto the
// per-session controllers and renders their state as HTML.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffroster-web/internal/domain/repository"
	"staffroster-web/internal/usecase"
	"staffroster-web/pkg/logger"
	"staffroster-web/pkg/metrics"
	"staffroster-web/templates"
)

const sessionCookie = "staffroster_session"

// maxImportSize bounds the multipart upload buffer for Excel imports
const maxImportSize = 16 << 20

// sessionState bundles one session's controllers. The mutex serializes all
// handler access for the session, mirroring the single-UI-thread model the
// controllers assume.
type sessionState struct {
	mu     sync.Mutex
	roster *usecase.RosterController
	users  *usecase.UserDirectory
	today  *usecase.TodayView
}

// Server routes browser requests to the controllers
type Server struct {
	sessions   *usecase.SessionManager
	rosterRepo repository.RosterRepository
	userRepo   repository.UserRepository
	renderer   *templates.Renderer
	metrics    *metrics.Metrics
	logger     logger.Logger
	pageSize   int

	mu     sync.Mutex
	states map[string]*sessionState
}

// NewServer creates the web server
func NewServer(
	sessions *usecase.SessionManager,
	rosterRepo repository.RosterRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	pageSize int,
	logger logger.Logger,
) *Server {
	return &Server{
		sessions:   sessions,
		rosterRepo: rosterRepo,
		userRepo:   userRepo,
		renderer:   templates.NewRenderer(),
		metrics:    m,
		logger:     logger,
		pageSize:   pageSize,
		states:     make(map[string]*sessionState),
	}
}

// Router builds the HTTP route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("POST")

	r.HandleFunc("/", s.withSession(s.handleHome)).Methods("GET")
	r.HandleFunc("/page", s.withSession(s.handleHomePage)).Methods("POST")

	r.HandleFunc("/dashboard", s.withSession(s.handleDashboard)).Methods("GET")
	r.HandleFunc("/dashboard/sort", s.withSession(s.handleSort)).Methods("GET")
	r.HandleFunc("/dashboard/page", s.withSession(s.handleDashboardPage)).Methods("POST")
	r.HandleFunc("/dashboard/edit", s.withSession(s.handleEdit)).Methods("POST")
	r.HandleFunc("/dashboard/cancel", s.withSession(s.handleCancel)).Methods("POST")
	r.HandleFunc("/dashboard/save", s.withSession(s.handleSave)).Methods("POST")
	r.HandleFunc("/dashboard/add/open", s.withSession(s.handleAddOpen)).Methods("POST")
	r.HandleFunc("/dashboard/add/close", s.withSession(s.handleAddClose)).Methods("POST")
	r.HandleFunc("/dashboard/add", s.withSession(s.handleAdd)).Methods("POST")
	r.HandleFunc("/dashboard/delete", s.withSession(s.handleDeleteConfirm)).Methods("GET")
	r.HandleFunc("/dashboard/delete", s.withSession(s.handleDelete)).Methods("POST")
	r.HandleFunc("/dashboard/import", s.withSession(s.handleImport)).Methods("POST")
	r.HandleFunc("/dashboard/export", s.withSession(s.handleExport)).Methods("POST")

	r.HandleFunc("/users", s.withAdmin(s.handleUsers)).Methods("GET")
	r.HandleFunc("/users/page", s.withAdmin(s.handleUsersPage)).Methods("POST")
	r.HandleFunc("/users/edit", s.withAdmin(s.handleUsersEdit)).Methods("POST")
	r.HandleFunc("/users/cancel", s.withAdmin(s.handleUsersCancel)).Methods("POST")
	r.HandleFunc("/users/save", s.withAdmin(s.handleUsersSave)).Methods("POST")
	r.HandleFunc("/users/add/open", s.withAdmin(s.handleUsersAddOpen)).Methods("POST")
	r.HandleFunc("/users/add/close", s.withAdmin(s.handleUsersAddClose)).Methods("POST")
	r.HandleFunc("/users/add", s.withAdmin(s.handleUsersAdd)).Methods("POST")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	}).Methods("GET")

	return r
}

// requestCtx carries the resolved session and its controllers
type requestCtx struct {
	session sessionInfo
	state   *sessionState
}

type sessionInfo struct {
	id         string
	employeeID string
	isAdmin    bool
}

// withSession resolves the session cookie, locks the session state for the
// duration of the request and redirects to the login page when there is no
// live session
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *requestCtx)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, ok := s.resolve(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		rc.state.mu.Lock()
		defer rc.state.mu.Unlock()
		next(w, r, rc)
	}
}

// withAdmin additionally rejects non-admin sessions; the UI hides the links
// but the route refuses direct navigation too
func (s *Server) withAdmin(next func(http.ResponseWriter, *http.Request, *requestCtx)) http.HandlerFunc {
	return s.withSession(func(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
		if !rc.session.isAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, rc)
	})
}

func (s *Server) resolve(r *http.Request) (*requestCtx, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	session, ok := s.sessions.Get(cookie.Value)
	if !ok {
		s.sweepStates()
		return nil, false
	}

	s.mu.Lock()
	state, ok := s.states[session.ID]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	return &requestCtx{
		session: sessionInfo{id: session.ID, employeeID: session.EmployeeID, isAdmin: session.IsAdmin},
		state:   state,
	}, true
}

// sweepStates drops controller state for sessions the manager no longer
// knows. Logout removes its own state, but TTL expiry evicts only from the
// manager; without the sweep those sessionState entries would accumulate.
func (s *Server) sweepStates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.states {
		if _, ok := s.sessions.Get(id); !ok {
			delete(s.states, id)
			s.metrics.ActiveSessions.Dec()
		}
	}
}

// observe wraps one upstream operation with request/error/latency metrics
func (s *Server) observe(op string, fn func() error) error {
	s.metrics.UpstreamRequests.WithLabelValues(op).Inc()
	start := time.Now()
	err := fn()
	s.metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues(op).Inc()
	}
	return err
}
