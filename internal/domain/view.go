package domain

// FitMode selects how the page scale is derived.
type FitMode string

const (
	FitWidth FitMode = "fit_width"
	FitPage  FitMode = "fit_page"
	Custom   FitMode = "custom"
)

// Valid reports whether m is a known fit mode.
func (m FitMode) Valid() bool {
	switch m {
	case FitWidth, FitPage, Custom:
		return true
	}
	return false
}

// PageArrangement selects single page or two-page spread display.
type PageArrangement string

const (
	Single PageArrangement = "single"
	Dual   PageArrangement = "dual"
)

// Valid reports whether a is a known arrangement.
func (a PageArrangement) Valid() bool {
	return a == Single || a == Dual
}

// ViewState holds presentation parameters, independent of location.
// When FitMode is not Custom, Scale is derived by the layout engine.
type ViewState struct {
	Scale           float64         `json:"scale"`
	RotationDegrees int             `json:"rotation_degrees"`
	FitMode         FitMode         `json:"fit_mode"`
	PageArrangement PageArrangement `json:"page_arrangement"`
}

// Viewport is the visible area available to the viewer, in layout units.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageSize is the native size of a page before scaling.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
