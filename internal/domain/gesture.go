package domain

import "time"

// GestureKind is the discrete intent produced from raw input.
type GestureKind string

const (
	SwipeNext GestureKind = "swipe_next"
	SwipePrev GestureKind = "swipe_prev"
	ZoomTo    GestureKind = "zoom_to"
	ZoomBy    GestureKind = "zoom_by"
	RotateBy  GestureKind = "rotate_by"
	Close     GestureKind = "close"
)

// GestureEvent is consumed once by a session and never persisted.
type GestureEvent struct {
	Kind            GestureKind `json:"kind"`
	Scale           float64     `json:"scale,omitempty"`
	Delta           float64     `json:"delta,omitempty"`
	Degrees         int         `json:"degrees,omitempty"`
	SourceTimestamp time.Time   `json:"source_timestamp"`
}

// Navigational reports whether the event changes the location.
func (e GestureEvent) Navigational() bool {
	return e.Kind == SwipeNext || e.Kind == SwipePrev
}
