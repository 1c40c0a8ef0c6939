package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"document-viewer/internal/domain"
)

// Mock logger used by viewer package tests.
type mockLogger struct{}

func newMockLogger() domain.Logger { return &mockLogger{} }

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// manualScheduler never fires on its own; tests fire timers explicitly.
type manualScheduler struct {
	timers []*manualTimer
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{delay: d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *manualScheduler) last() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	return m.timers[len(m.timers)-1]
}

// fire runs the most recent active timer and reports whether one existed.
func (m *manualScheduler) fire() bool {
	t := m.last()
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.fired = true
	t.fn()
	return true
}

func syncDispatch(job func()) { job() }

type recordingProgressStore struct {
	mu        sync.Mutex
	saved     []domain.DocumentLocation
	favorites []bool
	stored    *domain.DocumentLocation
	saveErr   error
	loadErr   error
}

func (r *recordingProgressStore) Save(ctx context.Context, p domain.Principal, documentID string, loc domain.DocumentLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, loc)
	return r.saveErr
}

func (r *recordingProgressStore) Load(ctx context.Context, p domain.Principal, documentID string) (*domain.DocumentLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.stored, nil
}

func (r *recordingProgressStore) SaveFavorite(ctx context.Context, p domain.Principal, documentID string, favorite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = append(r.favorites, favorite)
	return r.saveErr
}

func (r *recordingProgressStore) saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

type recordingBookmarkStore struct {
	mu      sync.Mutex
	added   []domain.Bookmark
	removed []string
	listed  []*domain.Bookmark
	err     error
}

func (r *recordingBookmarkStore) Add(ctx context.Context, p domain.Principal, documentID string, b *domain.Bookmark) (*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, *b)
	return b, r.err
}

func (r *recordingBookmarkStore) Remove(ctx context.Context, p domain.Principal, bookmarkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, bookmarkID)
	return r.err
}

func (r *recordingBookmarkStore) List(ctx context.Context, p domain.Principal, documentID string) ([]*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listed, r.err
}

type recordingObserver struct {
	NopObserver
	states    []domain.LoadState
	locations []domain.DocumentLocation
	fallbacks []string
	renders   []int
	closes    int
}

func (o *recordingObserver) LoadStateChanged(st domain.LoadState) { o.states = append(o.states, st) }
func (o *recordingObserver) LocationChanged(loc domain.DocumentLocation) {
	o.locations = append(o.locations, loc)
}
func (o *recordingObserver) FallbackRequested(url string) { o.fallbacks = append(o.fallbacks, url) }
func (o *recordingObserver) RenderRequested(attempt int)  { o.renders = append(o.renders, attempt) }
func (o *recordingObserver) CloseRequested()              { o.closes++ }

var errRender = errors.New("render worker not ready")

type testRig struct {
	session   *Session
	scheduler *manualScheduler
	progress  *recordingProgressStore
	bookmarks *recordingBookmarkStore
	observer  *recordingObserver
}

func newTestRig() *testRig {
	rig := &testRig{
		scheduler: &manualScheduler{},
		progress:  &recordingProgressStore{},
		bookmarks: &recordingBookmarkStore{},
		observer:  &recordingObserver{},
	}
	ids := 0
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rig.session = NewSession(
		domain.Principal{UserID: "user-1", Token: "token"},
		domain.DefaultViewerSettings(),
		SessionDeps{
			Progress:   rig.progress,
			Bookmarks:  rig.bookmarks,
			Fallback:   NewURLFallbackResolver("https://viewer.example.com/view"),
			Scheduler:  rig.scheduler,
			Dispatcher: syncDispatch,
			Observer:   rig.observer,
			Logger:     newMockLogger(),
			Now: func() time.Time {
				now = now.Add(time.Second)
				return now
			},
			NewID: func() string {
				ids++
				return fmt.Sprintf("bm-%d", ids)
			},
		},
	)
	return rig
}

var testRef = domain.DocumentRef{ID: "doc-1", SourceURI: "https://files.example.com/statute.pdf"}

// openReady opens testRef, reports a successful render and sets the length.
func (r *testRig) openReady(total int) {
	_ = r.session.Open(testRef, nil)
	r.session.ReportLoadSuccess()
	if total > 0 {
		_ = r.session.SetTotalUnits(total)
	}
}
