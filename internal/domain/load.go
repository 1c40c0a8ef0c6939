package domain

import "fmt"

// LoadPhase tags the variant held by LoadState.
type LoadPhase string

const (
	LoadIdle           LoadPhase = "idle"
	LoadLoading        LoadPhase = "loading"
	LoadLoaded         LoadPhase = "loaded"
	LoadRetrying       LoadPhase = "retrying"
	LoadFallbackActive LoadPhase = "fallback_active"
	LoadFailed         LoadPhase = "failed"
)

// LoadState is the single source of truth for document loading.
// Attempt is meaningful only in LoadRetrying, Reason only in LoadFailed.
type LoadState struct {
	Phase   LoadPhase `json:"phase"`
	Attempt int       `json:"attempt,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

// Idle is the state before any load was requested.
func Idle() LoadState { return LoadState{Phase: LoadIdle} }

// Loading is the state while the primary renderer works on attempt 0.
func Loading() LoadState { return LoadState{Phase: LoadLoading} }

// Loaded is the state once the primary renderer shows the document.
func Loaded() LoadState { return LoadState{Phase: LoadLoaded} }

// FallbackActive is the state once the degraded viewer took over.
func FallbackActive() LoadState { return LoadState{Phase: LoadFallbackActive} }

// Retrying is the state after a primary failure, with attempt counting
// from 1.
func Retrying(attempt int) LoadState {
	return LoadState{Phase: LoadRetrying, Attempt: attempt}
}

// Failed is the terminal state when no renderer can show the document.
func Failed(reason string) LoadState {
	return LoadState{Phase: LoadFailed, Reason: reason}
}

// Displayable reports whether some renderer can show the document.
func (s LoadState) Displayable() bool {
	return s.Phase == LoadLoaded || s.Phase == LoadFallbackActive
}

func (s LoadState) String() string {
	switch s.Phase {
	case LoadRetrying:
		return fmt.Sprintf("%s(%d)", s.Phase, s.Attempt)
	case LoadFailed:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Reason)
	}
	return string(s.Phase)
}
