package viewer

import (
	"errors"
	"math"
	"testing"

	"document-viewer/internal/domain"
)

func TestSession_OpenBecomesReady(t *testing.T) {
	rig := newTestRig()
	s := rig.session

	if s.Phase() != PhaseClosed {
		t.Fatalf("expected new session to be closed, got %s", s.Phase())
	}
	if err := s.Open(domain.DocumentRef{}, nil); err == nil {
		t.Fatalf("expected validation error for missing document id")
	}

	if err := s.Open(testRef, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Phase() != PhaseOpening {
		t.Fatalf("expected opening, got %s", s.Phase())
	}
	if len(rig.observer.renders) != 1 || rig.observer.renders[0] != 0 {
		t.Fatalf("expected one render request for attempt 0, got %v", rig.observer.renders)
	}
	if _, err := s.Navigate(ToPage(1)); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady while opening, got %v", err)
	}

	s.ReportLoadSuccess()
	if s.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %s", s.Phase())
	}
}

func TestSession_NavigateToPage(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session

	for p := 1; p <= 10; p++ {
		loc, err := s.Navigate(ToPage(p))
		if err != nil {
			t.Fatalf("page %d: expected no error, got %v", p, err)
		}
		if loc.PageIndex != p {
			t.Fatalf("expected page %d, got %d", p, loc.PageIndex)
		}
	}
	if got := rig.progress.saves(); got != 10 {
		t.Fatalf("expected exactly one write per navigation, got %d", got)
	}
	if last := rig.progress.saved[9]; last.PageIndex != 10 || last.TotalUnits != 10 {
		t.Fatalf("unexpected last saved location %+v", last)
	}
}

func TestSession_NavigateOutOfRange(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	_, _ = s.Navigate(ToPage(4))

	for _, p := range []int{-1, 0, 11, 100} {
		loc, err := s.Navigate(ToPage(p))
		if !errors.Is(err, domain.ErrOutOfRange) {
			t.Fatalf("page %d: expected ErrOutOfRange, got %v", p, err)
		}
		if loc.PageIndex != 4 {
			t.Fatalf("expected location unchanged at 4, got %d", loc.PageIndex)
		}
	}
	if got := rig.progress.saves(); got != 1 {
		t.Fatalf("expected no writes for rejected navigation, got %d", got-1)
	}
}

func TestSession_UnknownLengthRejectsUntilIndexed(t *testing.T) {
	rig := newTestRig()
	rig.openReady(0)
	s := rig.session

	if _, err := s.Navigate(ToPage(3)); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange while length unknown, got %v", err)
	}
	if err := s.SetTotalUnits(10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	loc, err := s.Navigate(ToPage(3))
	if err != nil || loc.PageIndex != 3 {
		t.Fatalf("expected page 3 once indexed, got %+v %v", loc, err)
	}
}

func TestSession_NavigateToToken(t *testing.T) {
	rig := newTestRig()
	rig.openReady(0)
	s := rig.session

	loc, err := s.Navigate(ToLocation("epubcfi(/6/14!/4/2)"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loc.PositionToken != "epubcfi(/6/14!/4/2)" || loc.PageIndex != 0 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if _, err := s.Navigate(NavTarget{}); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for empty target, got %v", err)
	}
	if _, err := s.Navigate(WithGesture(domain.GestureEvent{Kind: domain.SwipeNext})); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("expected swipe on a token location to be invalid, got %v", err)
	}
}

func TestSession_DualArrangement(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	if err := s.SetArrangement(domain.Dual); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, _ = s.Navigate(ToPage(6))
	snap := s.Snapshot()
	if snap.Spread == nil || *snap.Spread != (domain.Spread{Left: 5, Right: 6}) {
		t.Fatalf("expected spread [5,6], got %+v", snap.Spread)
	}

	loc, err := s.Navigate(WithGesture(domain.GestureEvent{Kind: domain.SwipeNext}))
	if err != nil || loc.PageIndex != 7 {
		t.Fatalf("expected next spread to start at 7, got %+v %v", loc, err)
	}
	loc, _ = s.Navigate(WithGesture(domain.GestureEvent{Kind: domain.SwipePrev}))
	if loc.PageIndex != 5 {
		t.Fatalf("expected previous spread to start at 5, got %d", loc.PageIndex)
	}

	_, _ = s.Navigate(ToPage(10))
	if _, err := s.Navigate(WithGesture(domain.GestureEvent{Kind: domain.SwipeNext})); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange past the last spread, got %v", err)
	}
}

func TestSession_SwipeInput(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session

	_, _ = s.HandleInput(InputEvent{Type: InputTouchStart, X: 300, Y: 100})
	res, err := s.HandleInput(InputEvent{Type: InputTouchEnd, X: 240, Y: 105})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Intent == nil || res.Intent.Kind != domain.SwipeNext || res.Location.PageIndex != 2 {
		t.Fatalf("expected swipe to page 2, got %+v", res)
	}

	_, _ = s.HandleInput(InputEvent{Type: InputTouchStart, X: 300, Y: 100})
	res, _ = s.HandleInput(InputEvent{Type: InputTouchEnd, X: 240, Y: 170})
	if res.Intent != nil || res.Location.PageIndex != 2 {
		t.Fatalf("expected vertical scroll to be ignored, got %+v", res)
	}

	s.SetAnimating(true)
	res, _ = s.HandleInput(InputEvent{Type: InputKey, Key: KeyArrowRight})
	if res.Intent != nil || res.Location.PageIndex != 2 {
		t.Fatalf("expected key to be dropped while animating, got %+v", res)
	}
	s.SetAnimating(false)
	res, _ = s.HandleInput(InputEvent{Type: InputKey, Key: KeyArrowRight})
	if res.Location.PageIndex != 3 {
		t.Fatalf("expected page 3, got %d", res.Location.PageIndex)
	}

	if _, err := s.HandleInput(InputEvent{Type: "hover"}); err == nil {
		t.Fatalf("expected error for unknown input type")
	}

	_, _ = s.HandleInput(InputEvent{Type: InputKey, Key: KeyEscape})
	if rig.observer.closes != 1 {
		t.Fatalf("expected escape to request close, got %d", rig.observer.closes)
	}
}

func TestSession_FitModeIdempotent(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	_ = s.SetPageSize(domain.PageSize{Width: 800, Height: 1200})
	_ = s.Resize(domain.Viewport{Width: 1000, Height: 800})

	_ = s.SetFitMode(domain.FitWidth)
	first := s.View().Scale
	_ = s.SetFitMode(domain.FitWidth)
	if second := s.View().Scale; second != first {
		t.Fatalf("expected same scale twice, got %v and %v", first, second)
	}
	if err := s.SetFitMode("stretch"); !errors.Is(err, domain.ErrInvalidFitMode) {
		t.Fatalf("expected ErrInvalidFitMode, got %v", err)
	}
}

func TestSession_RotationThenFitWidth(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	_ = s.SetPageSize(domain.PageSize{Width: 800, Height: 1200})
	_ = s.Resize(domain.Viewport{Width: 1000, Height: 800})

	if err := s.SetRotation(90); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_ = s.SetFitMode(domain.FitWidth)
	view := s.View()
	if math.Abs(view.Scale-0.793) > 0.001 {
		t.Fatalf("expected scale ~0.793, got %v", view.Scale)
	}
	if view.FitMode != domain.FitWidth {
		t.Fatalf("expected rotation to keep the fit mode, got %s", view.FitMode)
	}
	if err := s.SetRotation(45); !errors.Is(err, domain.ErrInvalidRotation) {
		t.Fatalf("expected ErrInvalidRotation, got %v", err)
	}
}

func TestSession_ZoomSwitchesToCustom(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	_ = s.SetPageSize(domain.PageSize{Width: 800, Height: 1200})
	_ = s.Resize(domain.Viewport{Width: 1000, Height: 800})

	_ = s.SetFitMode(domain.FitPage)
	if s.View().FitMode != domain.FitPage {
		t.Fatalf("expected fit page")
	}
	_ = s.Resize(domain.Viewport{Width: 1200, Height: 900})
	if s.View().FitMode != domain.FitPage {
		t.Fatalf("expected resize not to switch to custom")
	}

	before := s.View().Scale
	_ = s.SetZoom(0.1)
	view := s.View()
	if view.FitMode != domain.Custom {
		t.Fatalf("expected custom after zoom, got %s", view.FitMode)
	}
	if math.Abs(view.Scale-(before+0.1)) > 1e-9 {
		t.Fatalf("expected scale %v, got %v", before+0.1, view.Scale)
	}

	_ = s.SetZoom(10)
	if got := s.View().Scale; got != 3.0 {
		t.Fatalf("expected scale clamped to 3, got %v", got)
	}
	_ = s.Resize(domain.Viewport{Width: 500, Height: 500})
	if got := s.View().Scale; got != 3.0 {
		t.Fatalf("expected custom scale to survive resize, got %v", got)
	}

	_, _ = s.HandleInput(InputEvent{Type: InputKey, Key: KeyResetZoom})
	if s.View().FitMode != domain.FitWidth {
		t.Fatalf("expected reset key to return to fit width")
	}
}

func TestSession_RestoresProgress(t *testing.T) {
	rig := newTestRig()
	rig.progress.stored = &domain.DocumentLocation{PageIndex: 7, TotalUnits: 10}
	_ = rig.session.Open(testRef, nil)
	_ = rig.session.SetTotalUnits(10)
	rig.session.ReportLoadSuccess()

	if got := rig.session.Location().PageIndex; got != 7 {
		t.Fatalf("expected restored page 7, got %d", got)
	}
	if got := rig.progress.saves(); got != 0 {
		t.Fatalf("expected restore not to write back, got %d writes", got)
	}
}

func TestSession_RestoreWaitsForLength(t *testing.T) {
	rig := newTestRig()
	rig.progress.stored = &domain.DocumentLocation{PageIndex: 42}
	rig.openReady(0)

	if got := rig.session.Location().PageIndex; got != 1 {
		t.Fatalf("expected page 1 while length unknown, got %d", got)
	}
	_ = rig.session.SetTotalUnits(50)
	if got := rig.session.Location().PageIndex; got != 42 {
		t.Fatalf("expected held restore to apply, got %d", got)
	}
}

func TestSession_InitialLocationWins(t *testing.T) {
	rig := newTestRig()
	rig.progress.stored = &domain.DocumentLocation{PageIndex: 7}
	_ = rig.session.Open(testRef, &domain.DocumentLocation{PageIndex: 3, TotalUnits: 10})
	rig.session.ReportLoadSuccess()

	if got := rig.session.Location(); got.PageIndex != 3 || got.TotalUnits != 10 {
		t.Fatalf("expected initial location page 3 of 10, got %+v", got)
	}

	if err := rig.session.Open(testRef, &domain.DocumentLocation{PageIndex: 11, TotalUnits: 10}); err == nil {
		t.Fatalf("expected invalid initial location to be rejected")
	}
}

func TestSession_InitialTokenWithUnknownLength(t *testing.T) {
	rig := newTestRig()
	rig.progress.stored = &domain.DocumentLocation{PageIndex: 7}
	_ = rig.session.Open(testRef, &domain.DocumentLocation{PositionToken: "epubcfi(/6/4)"})
	rig.session.ReportLoadSuccess()

	got := rig.session.Location()
	if got.PositionToken != "epubcfi(/6/4)" || got.PageIndex != 0 {
		t.Fatalf("expected initial token to be applied, got %+v", got)
	}
	if rig.session.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %s", rig.session.Phase())
	}
}

func TestSession_ReopenResetsView(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session
	_ = s.SetRotation(90)
	_ = s.SetArrangement(domain.Dual)
	_ = s.SetScale(2.5)
	_ = s.SetFavorite(true)

	if err := s.Open(testRef, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := domain.ViewState{Scale: 1, FitMode: domain.FitWidth, PageArrangement: domain.Single}
	if got := s.View(); got != want {
		t.Fatalf("expected view reset to %+v, got %+v", want, got)
	}
	if snap := s.Snapshot(); snap.Favorite {
		t.Fatalf("expected favorite cleared on reopen")
	}
}

func TestSession_ShrinkingLengthClamps(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	_, _ = rig.session.Navigate(ToPage(9))
	_ = rig.session.SetTotalUnits(5)
	if got := rig.session.Location().PageIndex; got != 5 {
		t.Fatalf("expected clamp to last page, got %d", got)
	}
}

func TestSession_StoreFailureDoesNotBlock(t *testing.T) {
	rig := newTestRig()
	rig.progress.saveErr = errors.New("connection refused")
	rig.progress.loadErr = errors.New("connection refused")
	rig.bookmarks.err = errors.New("connection refused")
	rig.openReady(10)

	loc, err := rig.session.Navigate(ToPage(4))
	if err != nil || loc.PageIndex != 4 {
		t.Fatalf("expected navigation despite store failure, got %+v %v", loc, err)
	}
	if _, err := rig.session.AddBookmark("intro"); err != nil {
		t.Fatalf("expected bookmark despite store failure, got %v", err)
	}
	if got := len(rig.session.Snapshot().Bookmarks); got != 1 {
		t.Fatalf("expected bookmark kept in memory, got %d", got)
	}
}

func TestSession_Bookmarks(t *testing.T) {
	rig := newTestRig()
	rig.bookmarks.listed = []*domain.Bookmark{{ID: "stored-1", DocumentID: "doc-1", Label: "Old"}}
	rig.openReady(10)
	s := rig.session
	_, _ = s.Navigate(ToPage(4))

	b, err := s.AddBookmark("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID != "bm-1" || b.Label != "Page 4" || b.Location.PageIndex != 4 || b.UserID != "user-1" {
		t.Fatalf("unexpected bookmark %+v", b)
	}
	if len(rig.bookmarks.added) != 1 {
		t.Fatalf("expected one store write, got %d", len(rig.bookmarks.added))
	}

	snap := s.Snapshot()
	if len(snap.Bookmarks) != 2 {
		t.Fatalf("expected stored and new bookmark, got %d", len(snap.Bookmarks))
	}

	if s.RemoveBookmark("missing") {
		t.Fatalf("expected unknown bookmark removal to fail")
	}
	if !s.RemoveBookmark("bm-1") {
		t.Fatalf("expected bookmark removal to succeed")
	}
	if len(rig.bookmarks.removed) != 1 || rig.bookmarks.removed[0] != "bm-1" {
		t.Fatalf("expected one remove write, got %v", rig.bookmarks.removed)
	}
}

func TestSession_FallbackMakesReady(t *testing.T) {
	rig := newTestRig()
	s := rig.session
	_ = s.Open(testRef, nil)

	for i := 0; i < 3; i++ {
		s.ReportLoadFailure(errRender)
		if s.Phase() != PhaseOpening {
			t.Fatalf("expected opening while retrying, got %s", s.Phase())
		}
		rig.scheduler.fire()
	}
	s.ReportLoadFailure(errRender)

	snap := s.Snapshot()
	if snap.Phase != PhaseReady || snap.Load != domain.FallbackActive() {
		t.Fatalf("expected ready on fallback, got %s %s", snap.Phase, snap.Load)
	}
	if len(rig.observer.fallbacks) != 1 || rig.observer.fallbacks[0] != snap.FallbackURL {
		t.Fatalf("expected host to be told about the fallback, got %v", rig.observer.fallbacks)
	}

	if !s.RetryPrimary() {
		t.Fatalf("expected retry primary to be accepted")
	}
	if s.Phase() != PhaseOpening || s.LoadState() != domain.Loading() {
		t.Fatalf("expected opening/loading after retry primary")
	}
}

func TestSession_CloseDuringRetry(t *testing.T) {
	rig := newTestRig()
	s := rig.session
	_ = s.Open(testRef, nil)
	s.ReportLoadFailure(errRender)
	pending := rig.scheduler.last()
	renders := len(rig.observer.renders)

	s.Close()
	if !pending.stopped {
		t.Fatalf("expected close to stop the retry timer")
	}

	pending.fn()
	if s.Phase() != PhaseClosed {
		t.Fatalf("expected session to stay closed, got %s", s.Phase())
	}
	if s.LoadState() != domain.Retrying(1) {
		t.Fatalf("expected load state untouched, got %s", s.LoadState())
	}
	if len(rig.observer.renders) != renders {
		t.Fatalf("expected no render request from a stale timer")
	}
	if _, err := s.Navigate(ToPage(1)); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_ResizeDuringRetryRestarts(t *testing.T) {
	rig := newTestRig()
	s := rig.session
	_ = s.Open(testRef, nil)
	s.ReportLoadFailure(errRender)

	_ = s.Resize(domain.Viewport{Width: 800, Height: 600})
	if s.LoadState() != domain.Loading() {
		t.Fatalf("expected resize to restart loading, got %s", s.LoadState())
	}
	if !rig.scheduler.timers[0].stopped {
		t.Fatalf("expected pending retry to be cancelled")
	}
}

func TestSession_PageFailureKeepsLoadState(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	s := rig.session

	for i := 0; i < 3; i++ {
		if !s.ReportPageFailure(4) {
			t.Fatalf("failure %d: expected page retry", i+1)
		}
	}
	if s.ReportPageFailure(4) {
		t.Fatalf("expected page retries to stop after max retries")
	}
	if s.LoadState() != domain.Loaded() {
		t.Fatalf("expected load state untouched, got %s", s.LoadState())
	}
}

func TestSession_Favorite(t *testing.T) {
	rig := newTestRig()
	rig.openReady(10)
	if err := rig.session.SetFavorite(true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rig.progress.favorites) != 1 || !rig.progress.favorites[0] {
		t.Fatalf("expected one favorite write, got %v", rig.progress.favorites)
	}
	if !rig.session.Snapshot().Favorite {
		t.Fatalf("expected snapshot to report favorite")
	}
}
