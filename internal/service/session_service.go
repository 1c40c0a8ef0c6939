package service

import (
	"context"
	"sync"
	"time"

	"document-viewer/internal/domain"
	"document-viewer/internal/viewer"

	"github.com/google/uuid"
)

// OpenRequest describes a viewer session to open.
type OpenRequest struct {
	DocumentID      string                   `json:"document_id"`
	SourceURI       string                   `json:"source_uri"`
	InitialLocation *domain.DocumentLocation `json:"initial_location,omitempty"`
	TotalUnits      int                      `json:"total_units,omitempty"`
	Viewport        *domain.Viewport         `json:"viewport,omitempty"`
	PageSize        *domain.PageSize         `json:"page_size,omitempty"`
	Arrangement     domain.PageArrangement   `json:"page_arrangement,omitempty"`
	FitMode         domain.FitMode           `json:"fit_mode,omitempty"`
}

// SessionServiceDeps wires a SessionService.
type SessionServiceDeps struct {
	Progress    domain.ProgressStore
	Bookmarks   domain.BookmarkStore
	Renderer    domain.Renderer
	Fallback    domain.FallbackResolver
	Settings    domain.ViewerSettings
	IdleTimeout time.Duration
	Logger      domain.Logger

	Scheduler  viewer.Scheduler
	Dispatcher viewer.Dispatcher
	Now        func() time.Time
	NewID      func() string
}

// SessionService owns the open viewer sessions of all users.
type SessionService struct {
	deps   SessionServiceDeps
	logger domain.Logger

	mu       sync.RWMutex
	sessions map[string]*viewer.Session
}

// fieldLogger is implemented by loggers that can bind fields.
type fieldLogger interface {
	With(fields ...interface{}) domain.Logger
}

// NewSessionService creates a new session service
func NewSessionService(deps SessionServiceDeps) *SessionService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Scheduler == nil {
		deps.Scheduler = viewer.SystemScheduler()
	}
	return &SessionService{
		deps:     deps,
		logger:   deps.Logger,
		sessions: make(map[string]*viewer.Session),
	}
}

// Open creates a session for p and starts loading the document.
func (s *SessionService) Open(p domain.Principal, req OpenRequest) (string, *viewer.Session, error) {
	if req.DocumentID == "" {
		return "", nil, &domain.ValidationError{Field: "document_id", Message: "is required"}
	}
	if req.Arrangement != "" && !req.Arrangement.Valid() {
		return "", nil, &domain.ValidationError{Field: "page_arrangement", Message: "unknown page arrangement"}
	}
	if req.FitMode != "" && !req.FitMode.Valid() {
		return "", nil, &domain.ValidationError{Field: "fit_mode", Message: "unknown fit mode"}
	}

	id := s.deps.NewID()
	logger := s.deps.Logger
	if fl, ok := logger.(fieldLogger); ok {
		logger = fl.With("session_id", id)
	}

	sess := viewer.NewSession(p, s.deps.Settings, viewer.SessionDeps{
		Progress:   s.deps.Progress,
		Bookmarks:  s.deps.Bookmarks,
		Renderer:   s.deps.Renderer,
		Fallback:   s.deps.Fallback,
		Scheduler:  s.deps.Scheduler,
		Dispatcher: s.deps.Dispatcher,
		Observer:   &sessionObserver{id: id, service: s, logger: logger},
		Logger:     logger,
		Now:        s.deps.Now,
	})

	ref := domain.DocumentRef{ID: req.DocumentID, SourceURI: req.SourceURI}
	if err := sess.Open(ref, req.InitialLocation); err != nil {
		return "", nil, err
	}
	if err := applyOpenMetrics(sess, req); err != nil {
		sess.Close()
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("Session opened", "session_id", id, "user_id", p.UserID, "document_id", req.DocumentID)
	return id, sess, nil
}

// applyOpenMetrics seeds layout inputs the host already knows at open.
func applyOpenMetrics(sess *viewer.Session, req OpenRequest) error {
	if req.Viewport != nil {
		if err := sess.Resize(*req.Viewport); err != nil {
			return err
		}
	}
	if req.PageSize != nil {
		if err := sess.SetPageSize(*req.PageSize); err != nil {
			return err
		}
	}
	if req.Arrangement != "" {
		if err := sess.SetArrangement(req.Arrangement); err != nil {
			return err
		}
	}
	if req.FitMode == domain.FitWidth || req.FitMode == domain.FitPage {
		if err := sess.SetFitMode(req.FitMode); err != nil {
			return err
		}
	}
	if req.TotalUnits > 0 {
		return sess.SetTotalUnits(req.TotalUnits)
	}
	return nil
}

// Get returns the session id if p owns it.
func (s *SessionService) Get(p domain.Principal, id string) (*viewer.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Owner().UserID != p.UserID {
		return nil, domain.ErrAccessDenied
	}
	return sess, nil
}

// Close closes and forgets session id.
func (s *SessionService) Close(p domain.Principal, id string) error {
	sess, err := s.Get(p, id)
	if err != nil {
		return err
	}
	s.remove(id, sess)
	return nil
}

// Count returns the number of open sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep closes sessions idle for longer than the idle timeout and returns
// how many were closed.
func (s *SessionService) Sweep() int {
	if s.deps.IdleTimeout <= 0 {
		return 0
	}
	cutoff := s.deps.Now().Add(-s.deps.IdleTimeout)

	s.mu.RLock()
	idle := make(map[string]*viewer.Session)
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			idle[id] = sess
		}
	}
	s.mu.RUnlock()

	for id, sess := range idle {
		s.logger.Info("Closing idle session", "session_id", id, "user_id", sess.Owner().UserID)
		s.remove(id, sess)
	}
	return len(idle)
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("Idle sweep finished", "closed", n, "open", s.Count())
			}
		}
	}
}

// Shutdown closes every session.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*viewer.Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.Close()
	}
	s.logger.Info("All sessions closed", "count", len(all))
}

func (s *SessionService) remove(id string, sess *viewer.Session) {
	s.mu.Lock()
	if cur, ok := s.sessions[id]; ok && cur == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	sess.Close()
}

// sessionObserver logs session events and drops sessions the reader
// closed with a gesture.
type sessionObserver struct {
	id      string
	service *SessionService
	logger  domain.Logger
}

func (o *sessionObserver) LoadStateChanged(st domain.LoadState) {
	o.logger.Debug("Load state changed", "state", st.String())
}

func (o *sessionObserver) LocationChanged(loc domain.DocumentLocation) {}

func (o *sessionObserver) FallbackRequested(url string) {
	o.logger.Info("Switched to fallback viewer", "url", url)
}

func (o *sessionObserver) RenderRequested(attempt int) {
	o.logger.Debug("Render requested", "attempt", attempt)
}

func (o *sessionObserver) CloseRequested() {
	o.service.mu.RLock()
	sess, ok := o.service.sessions[o.id]
	o.service.mu.RUnlock()
	if ok {
		o.service.remove(o.id, sess)
	}
}
