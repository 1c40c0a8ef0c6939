package domain

// AuthService validates bearer tokens.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
