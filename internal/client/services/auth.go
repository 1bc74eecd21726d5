package services

import (
	"context"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/common"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// AuthService drives the session from the login form and the logout button.
// Passwords are wiped once the call returns.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Register(ctx context.Context, username, email string, password []byte) (models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	session session.Manager
	notify  notify.Notifier
	log     logging.Logger
}

func NewAuthService(s session.Manager, n notify.Notifier, logger logging.Logger) AuthService {
	return &authService{session: s, notify: n, log: logger.With("module", "auth_service")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		a.notify.Notify(notify.Error("Authentication failed", err.Error()))
		return models.User{}, err
	}
	a.notify.Notify(notify.Info("Welcome back!", "You've successfully logged in."))
	return u, nil
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (models.User, error) {
	defer common.WipeByteArray(password)

	u, err := a.session.Register(ctx, username, email, string(password))
	if err != nil {
		a.log.Error(ctx, "registration failed", "error", err)
		a.notify.Notify(notify.Error("Authentication failed", err.Error()))
		return models.User{}, err
	}
	a.notify.Notify(notify.Info("Account created!", "Your account has been successfully created."))
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		a.notify.Notify(notify.Error("Logout failed", "Could not clear your session. Please try again."))
		return err
	}
	a.notify.Notify(notify.Info("Logged out", "You've been successfully logged out."))
	return nil
}
