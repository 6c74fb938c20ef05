package service

import (
	"context"
	"testing"
	"time"

	"product-admin/internal/domain"
	"product-admin/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	for key, token := range m.tokens {
		if time.Now().After(token.ExpiresAt) {
			delete(m.tokens, key)
			removed++
		}
	}
	return removed, nil
}

func newTestUserService() (UserService, *mockUserRepository, *mockRefreshTokenRepository) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	return NewUserService(userRepo, tokenRepo, "test-secret"), userRepo, tokenRepo
}

func TestProvisionEditor(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("ProvisionEditor failed: %v", err)
	}

	if user.Role != domain.RoleEditor {
		t.Errorf("Expected editor role, got %q", user.Role)
	}
	if user.Email != "wp-test@example.com" {
		t.Errorf("Unexpected email %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}

	// Provisioning again is idempotent and keeps the original account
	again, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "different-password")
	if err != nil {
		t.Fatalf("Second ProvisionEditor failed: %v", err)
	}
	if again.ID != user.ID {
		t.Error("Expected the existing account, got a new one")
	}
	if len(userRepo.users) != 1 {
		t.Errorf("Expected exactly one account, got %d", len(userRepo.users))
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "correct-password"); err != nil {
		t.Fatalf("ProvisionEditor failed: %v", err)
	}

	accessToken, refreshToken, user, err := svc.Login(ctx, "wp-test@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Error("Expected both tokens to be issued")
	}
	if user.Role != domain.RoleEditor {
		t.Errorf("Expected editor role, got %q", user.Role)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Error("Token user id does not match the account")
	}
	if claims.Role != domain.RoleEditor {
		t.Errorf("Token role %q does not match the account", claims.Role)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "correct-password"); err != nil {
		t.Fatalf("ProvisionEditor failed: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "wp-test@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "correct-password"); err != nil {
		t.Fatalf("ProvisionEditor failed: %v", err)
	}

	_, refreshToken, _, err := svc.Login(ctx, "wp-test@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newAccessToken, err := svc.RefreshToken(ctx, refreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if _, err := svc.ValidateToken(newAccessToken); err != nil {
		t.Errorf("Refreshed access token does not validate: %v", err)
	}

	// After logout the refresh token is dead
	if err := svc.Logout(ctx, refreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, refreshToken); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken after logout, got %v", err)
	}

	// Logging out an unknown token is not an error
	if err := svc.Logout(ctx, "never-issued"); err != nil {
		t.Errorf("Expected idempotent logout, got %v", err)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, _, tokenRepo := newTestUserService()
	ctx := context.Background()

	user, err := svc.ProvisionEditor(ctx, "wp-test@example.com", "correct-password")
	if err != nil {
		t.Fatalf("ProvisionEditor failed: %v", err)
	}

	tokenRepo.tokens["stale"] = &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	}

	if _, err := svc.RefreshToken(ctx, "stale"); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}
