package service

import (
	"errors"
	"testing"
	"time"

	"document-viewer/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// MockSupabaseClient for testing
type MockSupabaseClient struct {
	calls int
}

func NewMockSupabaseClient() *MockSupabaseClient {
	return &MockSupabaseClient{}
}

func (m *MockSupabaseClient) Initialize() error {
	return nil
}

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.calls++
	if token == "valid-token" {
		return &domain.SupabaseUser{
			ID:    "user-123",
			Email: "test@example.com",
		}, nil
	}
	if token == "invalid-token" {
		return nil, errors.New("invalid token")
	}
	return nil, errors.New("token validation failed")
}

func (m *MockSupabaseClient) DB() *supabase.Client {
	return nil
}

func (m *MockSupabaseClient) GetClientWithToken(token string) (*supabase.Client, error) {
	return nil, nil
}

func TestAuthService_ValidateToken(t *testing.T) {
	client := NewMockSupabaseClient()
	logger := NewMockLogger()

	service := NewAuthService(client, logger)

	user, err := service.ValidateToken("valid-token")
	if err != nil {
		t.Fatalf("Expected no error for valid token, got %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", user.ID)
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected user email 'test@example.com', got '%s'", user.Email)
	}

	_, err = service.ValidateToken("invalid-token")
	if err == nil {
		t.Fatal("Expected error for invalid token")
	}
	expectedError := "invalid token: invalid token"
	if err.Error() != expectedError {
		t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
	}

	if _, err = service.ValidateToken(""); err == nil {
		t.Error("Expected error for empty token")
	}
}

func TestAuthService_CachesValidatedTokens(t *testing.T) {
	client := NewMockSupabaseClient()
	service := NewAuthService(client, NewMockLogger())
	clock := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	service.now = clock.Now

	for i := 0; i < 3; i++ {
		if _, err := service.ValidateToken("valid-token"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if client.calls != 1 {
		t.Fatalf("Expected 1 Supabase call, got %d", client.calls)
	}

	clock.Advance(validatedTokenTTL + time.Second)
	_, _ = service.ValidateToken("valid-token")
	if client.calls != 2 {
		t.Fatalf("Expected expired entry to revalidate, got %d calls", client.calls)
	}
}

func TestStaticTokenAuthService(t *testing.T) {
	service := NewStaticTokenAuthService("dev-token:user-1, other:user-2,broken")

	user, err := service.ValidateToken("dev-token")
	if err != nil || user.ID != "user-1" {
		t.Fatalf("Expected user-1, got %+v %v", user, err)
	}
	if user, _ := service.ValidateToken("other"); user == nil || user.ID != "user-2" {
		t.Fatalf("Expected user-2, got %+v", user)
	}
	if _, err := service.ValidateToken("broken"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken, got %v", err)
	}
}
