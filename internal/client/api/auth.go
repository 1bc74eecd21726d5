package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vitalsync/internal/auth"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/cryptox"
)

// The demo account is the only one that can log in.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

var DemoUser = models.User{
	ID:       "user-1",
	Username: "demouser",
	Email:    DemoEmail,
	Name:     "Demo User",
	Avatar:   "https://i.pravatar.cc/150?u=demouser",
}

var demoHash = sync.OnceValues(func() ([]byte, error) {
	return cryptox.HashPassword([]byte(DemoPassword), 0)
})

// DemoToken is the token LoginUser hands out for the demo account under
// secret. It carries no time claims, so it never changes.
func DemoToken(secret []byte) (string, error) {
	return auth.GenerateToken(DemoUser, secret, 0)
}

func (m *MockClient) LoginUser(ctx context.Context, email, password string) (AuthResult, error) {
	if email != DemoEmail {
		return AuthResult{}, ErrInvalidCredentials
	}
	hash, err := demoHash()
	if err != nil {
		return AuthResult{}, fmt.Errorf("demo account: %w", err)
	}
	if err := cryptox.CheckPassword(hash, []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := m.request(ctx, "login", latencyLogin); err != nil {
		return AuthResult{}, err
	}

	token, err := DemoToken(m.opts.TokenSecret)
	if err != nil {
		return AuthResult{}, fmt.Errorf("login: %w", err)
	}
	return AuthResult{Token: token, User: DemoUser}, nil
}

func (m *MockClient) RegisterUser(ctx context.Context, username, email, password string) (AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return AuthResult{}, ErrMissingFields
	}
	if email == DemoEmail {
		return AuthResult{}, ErrEmailAlreadyRegistered
	}

	if err := m.request(ctx, "register", latencyRegister); err != nil {
		return AuthResult{}, err
	}

	u := models.User{
		ID:       "user-" + uuid.NewString(),
		Username: username,
		Email:    email,
		Name:     username,
	}
	token, err := auth.GenerateToken(u, m.opts.TokenSecret, 0)
	if err != nil {
		return AuthResult{}, fmt.Errorf("register: %w", err)
	}
	return AuthResult{Token: token, User: u}, nil
}

func (m *MockClient) LogoutUser(ctx context.Context) error {
	return m.request(ctx, "logout", latencyLogout)
}
