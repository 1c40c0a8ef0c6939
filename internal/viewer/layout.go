package viewer

import (
	"math"

	"document-viewer/internal/domain"
)

// LayoutEngine derives display scale and page spreads. It holds only
// tuning values; every method is a pure function of its arguments.
type LayoutEngine struct {
	Margin   float64
	MinScale float64
	MaxScale float64
}

// NewLayoutEngine creates a layout engine from viewer settings
func NewLayoutEngine(settings domain.ViewerSettings) LayoutEngine {
	return LayoutEngine{
		Margin:   settings.PageMargin,
		MinScale: settings.MinScale,
		MaxScale: settings.MaxScale,
	}
}

// LayoutInput is everything a fitted scale depends on.
type LayoutInput struct {
	Viewport    domain.Viewport
	Page        domain.PageSize
	FitMode     domain.FitMode
	Arrangement domain.PageArrangement
	Rotation    int
}

// FitScale computes the scale for FitWidth or FitPage. Custom has no
// derived scale and yields ErrInvalidFitMode.
func (e LayoutEngine) FitScale(in LayoutInput) (float64, error) {
	rotation, err := NormalizeRotation(in.Rotation)
	if err != nil {
		return 0, err
	}

	pageW, pageH := in.Page.Width, in.Page.Height
	if rotation == 90 || rotation == 270 {
		pageW, pageH = pageH, pageW
	}
	if pageW <= 0 || pageH <= 0 {
		return 0, domain.ErrInvalidMetrics
	}

	usableWidth := in.Viewport.Width - e.Margin
	if in.Arrangement == domain.Dual {
		usableWidth /= 2
	}
	usableHeight := in.Viewport.Height - e.Margin
	if usableWidth <= 0 {
		return 0, domain.ErrInvalidMetrics
	}

	widthScale := usableWidth / pageW

	switch in.FitMode {
	case domain.FitWidth:
		return e.ClampScale(widthScale), nil
	case domain.FitPage:
		if usableHeight <= 0 {
			return 0, domain.ErrInvalidMetrics
		}
		heightScale := usableHeight / pageH
		return e.ClampScale(math.Min(widthScale, heightScale)), nil
	}
	return 0, domain.ErrInvalidFitMode
}

// ClampScale bounds s to [MinScale, MaxScale].
func (e LayoutEngine) ClampScale(s float64) float64 {
	if s < e.MinScale {
		return e.MinScale
	}
	if s > e.MaxScale {
		return e.MaxScale
	}
	return s
}

// NormalizeRotation maps any multiple of 90 onto {0, 90, 180, 270}.
func NormalizeRotation(degrees int) (int, error) {
	if degrees%90 != 0 {
		return 0, domain.ErrInvalidRotation
	}
	r := degrees % 360
	if r < 0 {
		r += 360
	}
	return r, nil
}

// Pair returns the spread containing page: odd pages open a spread with
// the following page, even pages close one with the preceding page. The
// result is clipped to [1, total] when total is known.
func Pair(page, total int) domain.Spread {
	left, right := page, page+1
	if page%2 == 0 {
		left, right = page-1, page
	}
	if left < 1 {
		left = 1
	}
	if total > 0 {
		if right > total {
			right = 0
		}
		if left > total {
			left = total
		}
	}
	if right == left {
		right = 0
	}
	return domain.Spread{Left: left, Right: right}
}

// NextSpreadStart returns the first page of the spread after page's spread.
func NextSpreadStart(page, total int) int {
	s := Pair(page, total)
	last := s.Left
	if s.Right != 0 {
		last = s.Right
	}
	return last + 1
}

// PrevSpreadStart returns the first page of the spread before page's spread.
func PrevSpreadStart(page, total int) int {
	s := Pair(page, total)
	if s.Left <= 1 {
		return 0
	}
	return Pair(s.Left-1, total).Left
}
