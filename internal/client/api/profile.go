package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitalsync/internal/auth"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

// whoami resolves the token to the stored profile, falling back to the
// identity carried in the token itself.
func (m *MockClient) whoami(token string) (models.User, error) {
	claims, err := auth.ParseToken(token, m.opts.TokenSecret)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	u := claims.User()

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[u.ID]; ok {
		return p, nil
	}
	return u, nil
}

func (m *MockClient) GetUserProfile(ctx context.Context, token string) (models.User, error) {
	u, err := m.whoami(token)
	if err != nil {
		return models.User{}, err
	}
	if err := m.request(ctx, "get profile", latencyProfileGet); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateUserProfile merges patch over the current profile and remembers the
// result for later calls with a token of the same user.
func (m *MockClient) UpdateUserProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error) {
	u, err := m.whoami(token)
	if err != nil {
		return models.User{}, err
	}
	if err := m.request(ctx, "update profile", latencyProfileUpdate); err != nil {
		return models.User{}, err
	}

	updated := u.Apply(patch)
	updated.ID = u.ID

	m.mu.Lock()
	m.profiles[u.ID] = updated
	m.mu.Unlock()
	return updated, nil
}
