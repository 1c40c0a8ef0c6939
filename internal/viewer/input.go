package viewer

import (
	"time"

	"document-viewer/internal/domain"
)

// NavTarget is where Navigate should go: a page, a position token, or a
// recognized gesture.
type NavTarget struct {
	Page    int
	Token   string
	Gesture *domain.GestureEvent

	hasPage bool
}

// ToPage targets a 1-based page index. Indexes below 1 are out of range.
func ToPage(page int) NavTarget { return NavTarget{Page: page, hasPage: true} }

// ToLocation targets a reflow position token.
func ToLocation(token string) NavTarget { return NavTarget{Token: token} }

// WithGesture targets whatever a gesture resolves to.
func WithGesture(ev domain.GestureEvent) NavTarget { return NavTarget{Gesture: &ev} }

// InputType names a raw input event.
type InputType string

const (
	InputTouchStart  InputType = "touch_start"
	InputTouchEnd    InputType = "touch_end"
	InputTouchCancel InputType = "touch_cancel"
	InputKey         InputType = "key"
	InputPinch       InputType = "pinch"
)

// InputEvent is raw pointer, touch or keyboard input from the host.
type InputEvent struct {
	Type          InputType `json:"type"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	Key           string    `json:"key,omitempty"`
	StartDistance float64   `json:"start_distance,omitempty"`
	EndDistance   float64   `json:"end_distance,omitempty"`
	At            time.Time `json:"at,omitempty"`
}

// InputResult reports the intent recognized from an input event, if any,
// and the location after applying it.
type InputResult struct {
	Intent   *domain.GestureEvent    `json:"intent,omitempty"`
	Location domain.DocumentLocation `json:"location"`
}

// Snapshot is a consistent copy of session state.
type Snapshot struct {
	DocumentID      string                  `json:"document_id"`
	SourceURI       string                  `json:"source_uri"`
	Phase           SessionPhase            `json:"phase"`
	Load            domain.LoadState        `json:"load"`
	Location        domain.DocumentLocation `json:"location"`
	Spread          *domain.Spread          `json:"spread,omitempty"`
	Progress        float32                 `json:"progress"`
	View            domain.ViewState        `json:"view"`
	Viewport        domain.Viewport         `json:"viewport"`
	PageSize        domain.PageSize         `json:"page_size"`
	FallbackURL     string                  `json:"fallback_url,omitempty"`
	RenderRequested bool                    `json:"render_requested"`
	Animating       bool                    `json:"animating"`
	Favorite        bool                    `json:"favorite"`
	Bookmarks       []domain.Bookmark       `json:"bookmarks"`
}
