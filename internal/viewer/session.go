package viewer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"document-viewer/internal/domain"

	"github.com/google/uuid"
)

// SessionPhase is the lifecycle of a session: Closed, Opening, Ready.
type SessionPhase string

const (
	PhaseClosed  SessionPhase = "closed"
	PhaseOpening SessionPhase = "opening"
	PhaseReady   SessionPhase = "ready"
)

const defaultStoreTimeout = 10 * time.Second

// Observer receives session notifications. Calls are made after the
// mutating operation has finished and the session lock is released, so an
// observer may call back into the session.
type Observer interface {
	LoadStateChanged(state domain.LoadState)
	LocationChanged(loc domain.DocumentLocation)
	FallbackRequested(url string)
	RenderRequested(attempt int)
	CloseRequested()
}

// NopObserver ignores every notification. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) LoadStateChanged(domain.LoadState)       {}
func (NopObserver) LocationChanged(domain.DocumentLocation) {}
func (NopObserver) FallbackRequested(string)                {}
func (NopObserver) RenderRequested(int)                     {}
func (NopObserver) CloseRequested()                         {}

// SessionDeps are the collaborators a session drives. Only Logger is
// required.
type SessionDeps struct {
	Progress   domain.ProgressStore
	Bookmarks  domain.BookmarkStore
	Renderer   domain.Renderer
	Fallback   domain.FallbackResolver
	Scheduler  Scheduler
	Dispatcher Dispatcher
	Observer   Observer
	Logger     domain.Logger
	Now        func() time.Time
	NewID      func() string
}

// Session is the state of one open document viewer: location, view,
// bookmarks and load recovery. Every public method runs as one atomic
// turn; timer and store callbacks are serialized through the same lock.
type Session struct {
	mu    sync.Mutex
	after []func()

	principal domain.Principal
	settings  domain.ViewerSettings
	layout    LayoutEngine
	gestures  *GestureRecognizer
	loader    *LoadController

	progress     domain.ProgressStore
	bookmarks    domain.BookmarkStore
	observer     Observer
	logger       domain.Logger
	dispatch     Dispatcher
	now          func() time.Time
	newID        func() string
	storeTimeout time.Duration

	phase          SessionPhase
	epoch          uint64
	ref            domain.DocumentRef
	location       domain.DocumentLocation
	pendingRestore *domain.DocumentLocation
	restored       bool
	touched        bool
	view           domain.ViewState
	viewport       domain.Viewport
	pageSize       domain.PageSize
	marks          []*domain.Bookmark
	favorite       bool
	pageFailures   map[int]int
	lastActive     time.Time
}

// NewSession creates a closed session for principal.
func NewSession(principal domain.Principal, settings domain.ViewerSettings, deps SessionDeps) *Session {
	s := &Session{
		principal:    principal,
		settings:     settings,
		layout:       NewLayoutEngine(settings),
		gestures:     NewGestureRecognizer(GestureConfig{SwipeThreshold: settings.SwipeThreshold, ZoomStep: settings.ZoomStep}),
		progress:     deps.Progress,
		bookmarks:    deps.Bookmarks,
		observer:     deps.Observer,
		logger:       deps.Logger,
		dispatch:     deps.Dispatcher,
		now:          deps.Now,
		newID:        deps.NewID,
		storeTimeout: defaultStoreTimeout,
		phase:        PhaseClosed,
		view:         defaultView(),
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.dispatch == nil {
		s.dispatch = goDispatch
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.lastActive = s.now()

	s.loader = NewLoadController(
		LoadConfig{MaxRetries: settings.MaxRetries, RetryDelay: settings.RetryDelay},
		deps.Renderer,
		deps.Fallback,
		deps.Scheduler,
		deps.Logger,
	)
	s.loader.dispatch = s.async
	s.loader.serialize = s.turn
	s.loader.onChange = s.loadStateChanged
	s.loader.onRenderRequest = func(attempt int) {
		s.queue(func() { s.observer.RenderRequested(attempt) })
	}
	return s
}

// Open resets the session and starts loading ref. initial, when given,
// takes precedence over stored progress.
func (s *Session) Open(ref domain.DocumentRef, initial *domain.DocumentLocation) error {
	if ref.ID == "" {
		return &domain.ValidationError{Field: "document_id", Message: "is required"}
	}
	if initial != nil && !initial.Valid() {
		return &domain.ValidationError{Field: "initial_location", Message: "page is outside the document"}
	}

	s.turn(func() {
		s.loader.Reset()
		s.epoch++
		s.ref = ref
		s.view = defaultView()
		s.location = domain.DocumentLocation{PageIndex: 1}
		s.pendingRestore = nil
		s.restored = false
		s.touched = false
		s.marks = nil
		s.favorite = false
		s.pageFailures = make(map[int]int)
		s.gestures.TouchCancel()
		s.gestures.SetAnimating(false)
		s.lastActive = s.now()

		if initial != nil {
			if initial.TotalUnits > 0 {
				s.location.TotalUnits = initial.TotalUnits
			}
			loc := *initial
			s.pendingRestore = &loc
			s.restored = true
		}

		s.phase = PhaseOpening
		s.logger.Info("Opening document", "document_id", ref.ID, "user_id", s.principal.UserID)
		s.loader.Load(ref)
	})
	return nil
}

// Close tears the session down. Pending retries are cancelled and late
// callbacks from earlier turns become no-ops.
func (s *Session) Close() {
	s.turn(func() {
		if s.phase == PhaseClosed {
			return
		}
		s.loader.Cancel()
		s.epoch++
		s.phase = PhaseClosed
		s.gestures.TouchCancel()
		s.logger.Info("Session closed", "document_id", s.ref.ID)
	})
}

// Navigate moves to target and persists the new location without waiting
// for the store. Out-of-range targets leave the location unchanged.
func (s *Session) Navigate(target NavTarget) (loc domain.DocumentLocation, err error) {
	s.turn(func() {
		loc, err = s.navigate(target)
	})
	return loc, err
}

// HandleInput runs a raw input event through the gesture recognizer and
// applies the resulting intent, if any.
func (s *Session) HandleInput(in InputEvent) (res InputResult, err error) {
	s.turn(func() {
		if s.phase == PhaseClosed {
			err = domain.ErrSessionClosed
			return
		}
		at := in.At
		if at.IsZero() {
			at = s.now()
		}

		var (
			ev domain.GestureEvent
			ok bool
		)
		switch in.Type {
		case InputTouchStart:
			s.gestures.TouchStart(in.X, in.Y)
		case InputTouchEnd:
			ev, ok = s.gestures.TouchEnd(in.X, in.Y, at)
		case InputTouchCancel:
			s.gestures.TouchCancel()
		case InputKey:
			ev, ok = s.gestures.Key(in.Key, at)
		case InputPinch:
			ev, ok = s.gestures.Pinch(in.StartDistance, in.EndDistance, s.view.Scale, at)
		default:
			err = &domain.ValidationError{Field: "type", Message: fmt.Sprintf("unknown input type %q", in.Type)}
			return
		}

		res.Location = s.location
		if !ok {
			return
		}
		res.Intent = &ev
		res.Location, err = s.navigate(WithGesture(ev))
	})
	return res, err
}

// SetAnimating forwards the host's page-transition flag. Navigation input
// arriving while it is set is dropped.
func (s *Session) SetAnimating(animating bool) {
	s.turn(func() {
		s.gestures.SetAnimating(animating)
	})
}

// SetFitMode switches how scale is derived. Leaving Custom recomputes the
// scale from the current viewport.
func (s *Session) SetFitMode(mode domain.FitMode) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		if !mode.Valid() {
			err = domain.ErrInvalidFitMode
			return
		}
		s.view.FitMode = mode
		s.recompute()
	})
	return err
}

// SetRotation sets an absolute rotation. The fit mode is kept.
func (s *Session) SetRotation(degrees int) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		err = s.rotateTo(degrees)
	})
	return err
}

// SetZoom changes scale by delta and switches to Custom fit.
func (s *Session) SetZoom(delta float64) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		s.setScale(s.view.Scale + delta)
	})
	return err
}

// SetScale sets an absolute scale and switches to Custom fit. A
// non-positive scale resets to fit width.
func (s *Session) SetScale(scale float64) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		s.zoomTo(scale)
	})
	return err
}

// SetArrangement toggles single or dual page display.
func (s *Session) SetArrangement(a domain.PageArrangement) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		if !a.Valid() {
			err = &domain.ValidationError{Field: "arrangement", Message: "must be single or dual"}
			return
		}
		s.view.PageArrangement = a
		s.recompute()
	})
	return err
}

// Resize records a new viewport. A resize during retry restarts loading.
func (s *Session) Resize(vp domain.Viewport) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		if vp.Width < 0 || vp.Height < 0 {
			err = domain.ErrInvalidMetrics
			return
		}
		changed := vp != s.viewport
		s.viewport = vp
		s.recompute()
		if changed {
			s.loader.InputChanged()
		}
	})
	return err
}

// SetPageSize records the native page size reported by the renderer.
func (s *Session) SetPageSize(size domain.PageSize) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		if size.Width <= 0 || size.Height <= 0 {
			err = domain.ErrInvalidMetrics
			return
		}
		s.pageSize = size
		s.recompute()
	})
	return err
}

// SetTotalUnits records the document length once indexing finishes. A
// held-back restored location is applied once it fits; a location past a
// shrunken end is clamped to the last page.
func (s *Session) SetTotalUnits(total int) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		if total < 0 {
			err = domain.ErrInvalidMetrics
			return
		}
		prev := s.location
		s.location.TotalUnits = total

		if s.pendingRestore != nil && total > 0 {
			pending := *s.pendingRestore
			s.pendingRestore = nil
			s.applyRestore(pending)
		}
		if total > 0 && s.location.PositionToken == "" && s.location.PageIndex > total {
			s.location.PageIndex = total
		}
		if s.location != prev {
			s.notifyLocation()
		}
	})
	return err
}

// AddBookmark bookmarks the current location and hands it to the store.
func (s *Session) AddBookmark(label string) (b domain.Bookmark, err error) {
	s.turn(func() {
		if err = s.checkReady(); err != nil {
			return
		}
		if label == "" {
			label = defaultBookmarkLabel(s.location)
		}
		mark := &domain.Bookmark{
			ID:         s.newID(),
			DocumentID: s.ref.ID,
			UserID:     s.principal.UserID,
			Location:   s.location,
			Label:      label,
			CreatedAt:  s.now(),
		}
		s.marks = append(s.marks, mark)
		b = *mark

		if s.bookmarks != nil {
			store, p, docID := s.bookmarks, s.principal, s.ref.ID
			s.persist("bookmark_add", func(ctx context.Context) error {
				_, err := store.Add(ctx, p, docID, &b)
				return err
			})
		}
	})
	return b, err
}

// RemoveBookmark deletes a bookmark of this session. It reports whether
// the bookmark existed.
func (s *Session) RemoveBookmark(id string) (removed bool) {
	s.turn(func() {
		if s.phase == PhaseClosed {
			return
		}
		for i, mark := range s.marks {
			if mark.ID != id {
				continue
			}
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			removed = true
			break
		}
		if removed && s.bookmarks != nil {
			store, p := s.bookmarks, s.principal
			s.persist("bookmark_remove", func(ctx context.Context) error {
				return store.Remove(ctx, p, id)
			})
		}
	})
	return removed
}

// SetFavorite flags the document as a favorite in the progress record.
func (s *Session) SetFavorite(favorite bool) (err error) {
	s.turn(func() {
		if err = s.checkOpen(); err != nil {
			return
		}
		s.favorite = favorite
		if s.progress != nil {
			store, p, docID := s.progress, s.principal, s.ref.ID
			s.persist("favorite_save", func(ctx context.Context) error {
				return store.SaveFavorite(ctx, p, docID, favorite)
			})
		}
	})
	return err
}

// ReportLoadSuccess is the host signal that the primary renderer shows
// the document.
func (s *Session) ReportLoadSuccess() (ok bool) {
	s.turn(func() {
		if s.phase != PhaseClosed {
			ok = s.loader.ReportSuccess()
		}
	})
	return ok
}

// ReportLoadFailure is the host signal that the primary renderer failed.
func (s *Session) ReportLoadFailure(cause error) (ok bool) {
	s.turn(func() {
		if s.phase != PhaseClosed {
			ok = s.loader.ReportFailure(cause)
		}
	})
	return ok
}

// ReportFallbackFailure is the host signal that the fallback embed failed.
func (s *Session) ReportFallbackFailure(cause error) (ok bool) {
	s.turn(func() {
		if s.phase != PhaseClosed {
			ok = s.loader.ReportFallbackFailure(cause)
		}
	})
	return ok
}

// RetryPrimary returns from the fallback viewer to the primary renderer.
func (s *Session) RetryPrimary() (ok bool) {
	s.turn(func() {
		if s.phase == PhaseClosed {
			return
		}
		if ok = s.loader.RetryPrimary(); ok {
			s.phase = PhaseOpening
		}
	})
	return ok
}

// ReportPageFailure records a failed render of a single page. It never
// touches the load state; it reports whether the host should retry the
// page.
func (s *Session) ReportPageFailure(page int) (retry bool) {
	s.turn(func() {
		if s.phase == PhaseClosed || page < 1 {
			return
		}
		s.pageFailures[page]++
		count := s.pageFailures[page]
		retry = count <= s.settings.MaxRetries
		s.logger.Warn("Page render failed", "document_id", s.ref.ID, "page", page, "failures", count, "retry", retry)
	})
	return retry
}

// Snapshot returns a copy of everything a UI renders from.
func (s *Session) Snapshot() (snap Snapshot) {
	s.turn(func() {
		snap = Snapshot{
			DocumentID:      s.ref.ID,
			SourceURI:       s.ref.SourceURI,
			Phase:           s.phase,
			Load:            s.loader.State(),
			Location:        s.location,
			Progress:        s.location.Progress(),
			View:            s.view,
			Viewport:        s.viewport,
			PageSize:        s.pageSize,
			FallbackURL:     s.loader.FallbackURL(),
			RenderRequested: s.loader.AwaitingRender(),
			Animating:       s.gestures.Animating(),
			Favorite:        s.favorite,
			Bookmarks:       make([]domain.Bookmark, 0, len(s.marks)),
		}
		if s.view.PageArrangement == domain.Dual && s.location.PageIndex > 0 {
			spread := Pair(s.location.PageIndex, s.location.TotalUnits)
			snap.Spread = &spread
		}
		for _, mark := range s.marks {
			snap.Bookmarks = append(snap.Bookmarks, *mark)
		}
	})
	return snap
}

// Location returns the current location.
func (s *Session) Location() (loc domain.DocumentLocation) {
	s.turn(func() { loc = s.location })
	return loc
}

// View returns the current view state.
func (s *Session) View() (v domain.ViewState) {
	s.turn(func() { v = s.view })
	return v
}

// LoadState returns the current load state.
func (s *Session) LoadState() (st domain.LoadState) {
	s.turn(func() { st = s.loader.State() })
	return st
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() (p SessionPhase) {
	s.turn(func() { p = s.phase })
	return p
}

// Owner returns the principal the session acts for.
func (s *Session) Owner() domain.Principal {
	return s.principal
}

// LastActive is the time of the most recent public call.
func (s *Session) LastActive() (t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// turn runs f atomically, then releases the lock and runs work queued by
// f: observer notifications and asynchronous jobs.
func (s *Session) turn(f func()) {
	s.mu.Lock()
	s.lastActive = s.now()
	f()
	queued := s.after
	s.after = nil
	s.mu.Unlock()

	for _, job := range queued {
		job()
	}
}

func (s *Session) queue(job func()) {
	s.after = append(s.after, job)
}

func (s *Session) async(job func()) {
	s.queue(func() { s.dispatch(job) })
}

// persist runs a best-effort store write. Failures are logged, never
// rolled back.
func (s *Session) persist(op string, write func(ctx context.Context) error) {
	docID, logger, timeout := s.ref.ID, s.logger, s.storeTimeout
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := write(ctx); err != nil {
			logger.Warn("Store write failed", "op", op, "document_id", docID, "error", err)
		}
	})
}

func (s *Session) checkOpen() error {
	if s.phase == PhaseClosed {
		return domain.ErrSessionClosed
	}
	return nil
}

func (s *Session) checkReady() error {
	switch s.phase {
	case PhaseClosed:
		return domain.ErrSessionClosed
	case PhaseReady:
		return nil
	}
	return domain.ErrNotReady
}

func (s *Session) navigate(target NavTarget) (domain.DocumentLocation, error) {
	if s.phase == PhaseClosed {
		return s.location, domain.ErrSessionClosed
	}

	if target.Gesture != nil && !target.Gesture.Navigational() {
		return s.location, s.applyViewGesture(*target.Gesture)
	}
	if err := s.checkReady(); err != nil {
		return s.location, err
	}

	if target.Token != "" {
		s.location.PositionToken = target.Token
		s.location.PageIndex = 0
		s.moved()
		return s.location, nil
	}

	page := target.Page
	if target.Gesture != nil {
		if s.location.PageIndex < 1 {
			return s.location, domain.ErrInvalidTarget
		}
		page = s.step(target.Gesture.Kind)
	} else if !target.hasPage {
		return s.location, domain.ErrInvalidTarget
	}

	total := s.location.TotalUnits
	if total == 0 || page < 1 || page > total {
		return s.location, domain.ErrOutOfRange
	}
	s.location.PageIndex = page
	s.location.PositionToken = ""
	s.moved()
	return s.location, nil
}

func (s *Session) step(kind domain.GestureKind) int {
	page, total := s.location.PageIndex, s.location.TotalUnits
	dual := s.view.PageArrangement == domain.Dual
	switch {
	case kind == domain.SwipeNext && dual:
		return NextSpreadStart(page, total)
	case kind == domain.SwipeNext:
		return page + 1
	case dual:
		return PrevSpreadStart(page, total)
	default:
		return page - 1
	}
}

// moved finishes a successful navigation: the restored location no longer
// applies, and exactly one progress write is issued.
func (s *Session) moved() {
	s.touched = true
	s.pendingRestore = nil
	s.notifyLocation()

	if s.progress == nil {
		return
	}
	store, p, docID, loc := s.progress, s.principal, s.ref.ID, s.location
	s.persist("progress_save", func(ctx context.Context) error {
		return store.Save(ctx, p, docID, loc)
	})
}

func (s *Session) notifyLocation() {
	loc := s.location
	s.queue(func() { s.observer.LocationChanged(loc) })
}

func (s *Session) applyViewGesture(ev domain.GestureEvent) error {
	switch ev.Kind {
	case domain.ZoomTo:
		s.zoomTo(ev.Scale)
	case domain.ZoomBy:
		s.setScale(s.view.Scale + ev.Delta)
	case domain.RotateBy:
		return s.rotateTo(s.view.RotationDegrees + ev.Degrees)
	case domain.Close:
		s.queue(s.observer.CloseRequested)
	default:
		return domain.ErrInvalidTarget
	}
	return nil
}

func (s *Session) zoomTo(scale float64) {
	if scale <= 0 {
		s.view.FitMode = domain.FitWidth
		s.recompute()
		return
	}
	s.setScale(scale)
}

func (s *Session) setScale(scale float64) {
	s.view.FitMode = domain.Custom
	s.view.Scale = s.layout.ClampScale(scale)
}

func (s *Session) rotateTo(degrees int) error {
	rotation, err := NormalizeRotation(degrees)
	if err != nil {
		return err
	}
	s.view.RotationDegrees = rotation
	s.recompute()
	return nil
}

// recompute derives the scale from current inputs. Unknown metrics keep
// the previous scale.
func (s *Session) recompute() {
	if s.view.FitMode == domain.Custom {
		return
	}
	scale, err := s.layout.FitScale(LayoutInput{
		Viewport:    s.viewport,
		Page:        s.pageSize,
		FitMode:     s.view.FitMode,
		Arrangement: s.view.PageArrangement,
		Rotation:    s.view.RotationDegrees,
	})
	if err != nil {
		s.logger.Debug("Layout metrics incomplete, keeping scale", "document_id", s.ref.ID, "error", err)
		return
	}
	s.view.Scale = scale
}

func (s *Session) loadStateChanged(prev, next domain.LoadState) {
	s.queue(func() { s.observer.LoadStateChanged(next) })

	if next.Phase == domain.LoadFallbackActive {
		url := s.loader.FallbackURL()
		s.queue(func() { s.observer.FallbackRequested(url) })
	}
	if next.Displayable() && s.phase == PhaseOpening {
		s.phase = PhaseReady
		s.ready()
	}
}

// ready runs when the document first becomes displayable: seed the
// layout, then restore the location and bookmarks.
func (s *Session) ready() {
	s.recompute()

	if s.pendingRestore != nil {
		pending := *s.pendingRestore
		s.pendingRestore = nil
		s.applyRestore(pending)
	}
	if !s.restored {
		s.restored = true
		s.fetchProgress()
	}
	s.fetchBookmarks()
}

func (s *Session) fetchProgress() {
	if s.progress == nil {
		return
	}
	epoch, store, p, docID, timeout := s.epoch, s.progress, s.principal, s.ref.ID, s.storeTimeout
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		loc, err := store.Load(ctx, p, docID)
		if err != nil {
			s.logger.Warn("Failed to load reading progress", "document_id", docID, "error", err)
			return
		}
		if loc == nil {
			return
		}
		s.turn(func() {
			if epoch != s.epoch || s.touched {
				return
			}
			s.applyRestore(*loc)
		})
	})
}

func (s *Session) fetchBookmarks() {
	if s.bookmarks == nil {
		return
	}
	epoch, store, p, docID, timeout := s.epoch, s.bookmarks, s.principal, s.ref.ID, s.storeTimeout
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		stored, err := store.List(ctx, p, docID)
		if err != nil {
			s.logger.Warn("Failed to load bookmarks", "document_id", docID, "error", err)
			return
		}
		s.turn(func() {
			if epoch != s.epoch {
				return
			}
			s.mergeBookmarks(stored)
		})
	})
}

func (s *Session) mergeBookmarks(stored []*domain.Bookmark) {
	seen := make(map[string]bool, len(s.marks))
	for _, mark := range s.marks {
		seen[mark.ID] = true
	}
	for _, mark := range stored {
		if mark == nil || seen[mark.ID] {
			continue
		}
		seen[mark.ID] = true
		s.marks = append(s.marks, mark)
	}
	sort.SliceStable(s.marks, func(i, j int) bool {
		return s.marks[i].CreatedAt.Before(s.marks[j].CreatedAt)
	})
}

// applyRestore moves to a stored location without writing it back. A page
// that cannot be validated yet is held until the length is known.
func (s *Session) applyRestore(loc domain.DocumentLocation) {
	if loc.PositionToken != "" {
		s.location.PositionToken = loc.PositionToken
		s.location.PageIndex = 0
		s.notifyLocation()
		return
	}
	if loc.PageIndex < 1 {
		return
	}
	total := s.location.TotalUnits
	if total == 0 {
		s.pendingRestore = &loc
		return
	}
	page := loc.PageIndex
	if page > total {
		page = total
	}
	if page == s.location.PageIndex && s.location.PositionToken == "" {
		return
	}
	s.location.PageIndex = page
	s.location.PositionToken = ""
	s.notifyLocation()
}

func defaultView() domain.ViewState {
	return domain.ViewState{
		Scale:           1,
		FitMode:         domain.FitWidth,
		PageArrangement: domain.Single,
	}
}

func defaultBookmarkLabel(loc domain.DocumentLocation) string {
	if loc.PageIndex > 0 {
		return fmt.Sprintf("Page %d", loc.PageIndex)
	}
	return "Bookmark"
}
