package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"document-viewer/internal/domain"
)

// validatedTokenTTL bounds how long a validated token is trusted without
// asking Supabase again. Viewer hosts call the API on every page turn.
const validatedTokenTTL = 30 * time.Second

type validatedTokenEntry struct {
	user      *domain.SupabaseUser
	expiresAt time.Time
}

type authService struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
	now            func() time.Time

	cacheMu sync.RWMutex
	cache   map[string]validatedTokenEntry
}

func NewAuthService(
	supabaseClient domain.SupabaseClient,
	logger domain.Logger,
) *authService {
	return &authService{
		supabaseClient: supabaseClient,
		logger:         logger,
		now:            time.Now,
		cache:          make(map[string]validatedTokenEntry),
	}
}

// ValidateToken validates a token with Supabase and returns the user
func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	now := s.now()
	s.cacheMu.RLock()
	entry, ok := s.cache[token]
	s.cacheMu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.user, nil
	}

	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Warn("Failed to validate token with Supabase", "error", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	s.cacheMu.Lock()
	for k, e := range s.cache {
		if !now.Before(e.expiresAt) {
			delete(s.cache, k)
		}
	}
	s.cache[token] = validatedTokenEntry{user: user, expiresAt: now.Add(validatedTokenTTL)}
	s.cacheMu.Unlock()

	return user, nil
}

// staticTokenAuthService accepts a fixed set of tokens. It backs local
// development when Supabase is not configured.
type staticTokenAuthService struct {
	users map[string]*domain.SupabaseUser
}

// NewStaticTokenAuthService parses "token:user_id" pairs separated by
// commas.
func NewStaticTokenAuthService(pairs string) *staticTokenAuthService {
	s := &staticTokenAuthService{users: make(map[string]*domain.SupabaseUser)}
	for _, pair := range strings.Split(pairs, ",") {
		token, userID, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || userID == "" {
			continue
		}
		s.users[token] = &domain.SupabaseUser{ID: userID}
	}
	return s
}

func (s *staticTokenAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}
