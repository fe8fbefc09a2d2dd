package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/apierr"
	"staffroster-web/pkg/logger"
)

// ErrMissingCredentials is returned when either login field is empty
var ErrMissingCredentials = errors.New("Please enter both Employee ID and password.")

// SessionManager owns login state: it authenticates against the roster
// service, derives the admin flag, and keeps live sessions in memory.
type SessionManager struct {
	authRepo repository.AuthRepository
	logger   logger.Logger
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*entity.Session
}

// NewSessionManager creates a new session manager
func NewSessionManager(authRepo repository.AuthRepository, ttl time.Duration, logger logger.Logger) *SessionManager {
	return &SessionManager{
		authRepo: authRepo,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entity.Session),
	}
}

// Login authenticates the employee and, on success, immediately looks up the
// permission level. A failed permission lookup degrades to a non-admin
// session instead of failing the login.
func (m *SessionManager) Login(ctx context.Context, employeeID, password string) (*entity.Session, error) {
	if employeeID == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if err := m.authRepo.Login(ctx, employeeID, password); err != nil {
		if apierr.IsTransport(err) {
			return nil, errors.New(apierr.NetworkUnreachableMsg)
		}
		if msg := err.Error(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, errors.New("Invalid Employee ID or password.")
	}

	isAdmin := false
	perm, err := m.authRepo.Permission(ctx, employeeID)
	if err != nil {
		m.logger.Warn("Permission lookup failed, defaulting to Staff", "employeeID", employeeID, "error", err)
	} else {
		isAdmin = perm == entity.PermissionAdmin
	}

	now := m.now()
	session := &entity.Session{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		IsAdmin:    isAdmin,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info("Session created", "employeeID", employeeID, "isAdmin", isAdmin)
	return session, nil
}

// Get returns the live session for the given ID, evicting it when expired
func (m *SessionManager) Get(sessionID string) (*entity.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if session.Expired(m.now()) {
		delete(m.sessions, sessionID)
		return nil, false
	}
	return session, true
}

// Logout destroys the session synchronously; no server call is made
func (m *SessionManager) Logout(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; ok {
		delete(m.sessions, sessionID)
		m.logger.Info("Session destroyed", "sessionID", sessionID)
	}
}
