package services

import (
	"context"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// ProfileService reads and edits the signed-in user's profile. The session
// user is replaced with whatever the API returns.
type ProfileService interface {
	Fetch(ctx context.Context) (models.User, error)
	Update(ctx context.Context, patch models.UserPatch) (models.User, error)
}

type profileService struct {
	api     api.Client
	session session.Manager
	notify  notify.Notifier
	log     logging.Logger
}

func NewProfileService(c api.Client, s session.Manager, n notify.Notifier, logger logging.Logger) ProfileService {
	return &profileService{api: c, session: s, notify: n, log: logger.With("module", "profile_service")}
}

func (p *profileService) Fetch(ctx context.Context) (models.User, error) {
	u, err := p.fetch(ctx)
	if err != nil {
		p.log.Error(ctx, "error fetching user profile", "error", err)
		p.notify.Notify(notify.Error("Profile Error", "Could not load user profile. Please try again."))
		return models.User{}, err
	}
	return u, nil
}

func (p *profileService) fetch(ctx context.Context) (models.User, error) {
	token, err := p.session.Token()
	if err != nil {
		return models.User{}, err
	}
	u, err := p.api.GetUserProfile(ctx, token)
	if err != nil {
		return models.User{}, err
	}
	if err := p.session.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (p *profileService) Update(ctx context.Context, patch models.UserPatch) (models.User, error) {
	u, err := p.update(ctx, patch)
	if err != nil {
		p.log.Error(ctx, "error updating profile", "error", err)
		p.notify.Notify(notify.Error("Update failed", "There was an error updating your profile. Please try again."))
		return models.User{}, err
	}
	p.notify.Notify(notify.Info("Profile updated", "Your profile information has been updated successfully."))
	return u, nil
}

func (p *profileService) update(ctx context.Context, patch models.UserPatch) (models.User, error) {
	token, err := p.session.Token()
	if err != nil {
		return models.User{}, err
	}
	u, err := p.api.UpdateUserProfile(ctx, token, patch)
	if err != nil {
		return models.User{}, err
	}
	if err := p.session.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
