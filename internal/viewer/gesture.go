package viewer

import (
	"math"
	"time"

	"document-viewer/internal/domain"
)

// Key names understood by the recognizer.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyPageDown   = "PageDown"
	KeyPageUp     = "PageUp"
	KeySpace      = " "
	KeyPlus       = "+"
	KeyEquals     = "="
	KeyMinus      = "-"
	KeyEscape     = "Escape"
	KeyRotate     = "r"
	KeyResetZoom  = "0"
)

// GestureConfig tunes swipe detection and keyboard zoom.
type GestureConfig struct {
	SwipeThreshold float64
	ZoomStep       float64
}

type touchPoint struct {
	x, y float64
}

// GestureRecognizer turns raw pointer and keyboard input into navigation
// intents. It keeps only the start point of an in-progress touch and the
// host's animating flag.
type GestureRecognizer struct {
	cfg       GestureConfig
	start     *touchPoint
	animating bool
}

// NewGestureRecognizer creates a recognizer with the given tuning
func NewGestureRecognizer(cfg GestureConfig) *GestureRecognizer {
	return &GestureRecognizer{cfg: cfg}
}

// ClassifySwipe decides whether a touch displacement is a page turn.
// Only a horizontal-dominant move longer than threshold qualifies, so
// vertical scrolling never turns pages.
func ClassifySwipe(dx, dy, threshold float64) (domain.GestureKind, bool) {
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= threshold {
		return "", false
	}
	if dx > 0 {
		return domain.SwipePrev, true
	}
	return domain.SwipeNext, true
}

// SetAnimating records whether a page transition is in flight. While it
// is, navigation intents are dropped, not queued.
func (g *GestureRecognizer) SetAnimating(animating bool) {
	g.animating = animating
}

// Animating reports the host-signalled animation flag.
func (g *GestureRecognizer) Animating() bool {
	return g.animating
}

// TouchStart remembers where a touch began.
func (g *GestureRecognizer) TouchStart(x, y float64) {
	g.start = &touchPoint{x: x, y: y}
}

// TouchCancel forgets an in-progress touch.
func (g *GestureRecognizer) TouchCancel() {
	g.start = nil
}

// TouchEnd completes a touch and returns the swipe intent, if any.
func (g *GestureRecognizer) TouchEnd(x, y float64, at time.Time) (domain.GestureEvent, bool) {
	if g.start == nil {
		return domain.GestureEvent{}, false
	}
	dx, dy := x-g.start.x, y-g.start.y
	g.start = nil

	kind, ok := ClassifySwipe(dx, dy, g.cfg.SwipeThreshold)
	if !ok {
		return domain.GestureEvent{}, false
	}
	return g.emit(domain.GestureEvent{Kind: kind, SourceTimestamp: at})
}

// Pinch converts a two-finger distance change into an absolute zoom.
func (g *GestureRecognizer) Pinch(startDistance, endDistance, currentScale float64, at time.Time) (domain.GestureEvent, bool) {
	if startDistance <= 0 || endDistance <= 0 || currentScale <= 0 {
		return domain.GestureEvent{}, false
	}
	return g.emit(domain.GestureEvent{
		Kind:            domain.ZoomTo,
		Scale:           currentScale * endDistance / startDistance,
		SourceTimestamp: at,
	})
}

// Key maps a key press to an intent.
func (g *GestureRecognizer) Key(key string, at time.Time) (domain.GestureEvent, bool) {
	ev := domain.GestureEvent{SourceTimestamp: at}
	switch key {
	case KeyArrowRight, KeyPageDown, KeySpace:
		ev.Kind = domain.SwipeNext
	case KeyArrowLeft, KeyPageUp:
		ev.Kind = domain.SwipePrev
	case KeyPlus, KeyEquals:
		ev.Kind, ev.Delta = domain.ZoomBy, g.cfg.ZoomStep
	case KeyMinus:
		ev.Kind, ev.Delta = domain.ZoomBy, -g.cfg.ZoomStep
	case KeyRotate:
		ev.Kind, ev.Degrees = domain.RotateBy, 90
	case KeyResetZoom:
		// non-positive ZoomTo resets to fit width
		ev.Kind = domain.ZoomTo
	case KeyEscape:
		ev.Kind = domain.Close
	default:
		return domain.GestureEvent{}, false
	}
	return g.emit(ev)
}

func (g *GestureRecognizer) emit(ev domain.GestureEvent) (domain.GestureEvent, bool) {
	if g.animating && ev.Navigational() {
		return domain.GestureEvent{}, false
	}
	return ev, true
}
