package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/config"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/services"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/client/storage"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	store  preferences.Store

	session  session.Manager
	router   *router.Router
	auth     services.AuthService
	devices  services.DeviceService
	profile  services.ProfileService
	views    *views.Builder
	toasts   *notify.Buffer
	reader   *bufio.Reader
	out      io.Writer
	opts     views.Options
	route    router.Route
	loginFor string
}

// NewApp opens the preference database and assembles the client stack.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.PrefsPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	store := preferences.NewSQLiteStore(db)

	apiClient := api.NewMockClient(api.Options{
		LatencyScale: c.LatencyScale,
		FailureRate:  c.FailureRate,
		TokenSecret:  []byte(c.TokenSecret),
	}, logger)

	toasts := notify.NewBuffer(0)
	s := session.New(store, apiClient, logger)
	health := services.NewHealthService(apiClient, toasts, logger)
	devices := services.NewDeviceService(apiClient, toasts, logger)
	profile := services.NewProfileService(apiClient, s, toasts, logger)

	return &App{
		config:  c,
		log:     logger.With("module", "cli"),
		store:   store,
		session: s,
		router:  router.New(s),
		auth:    services.NewAuthService(s, toasts, logger),
		devices: devices,
		profile: profile,
		views:   views.NewBuilder(s, health, devices, profile),
		toasts:  toasts,
		reader:  bufio.NewReader(in),
		out:     out,
		opts:    views.Options{Period: models.PeriodDay, Metric: models.MetricHeartRate},
	}, nil
}

// Run bootstraps the session, shows the landing route and runs the REPL
// until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	fmt.Fprintln(a.out, "Welcome to VitalSync (type 'help' for commands)")

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.watchDiagnostics(watchCtx)

	if err := a.Go(ctx, string(router.RouteRoot)); err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
	a.flush()

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// watchDiagnostics queues swallowed session failures as toasts; the REPL
// goroutine prints them on its next flush, so a.out has a single writer.
func (a *App) watchDiagnostics(ctx context.Context) {
	for {
		select {
		case d := <-a.session.Diagnostics():
			a.toasts.Notify(diagnosticToast(d))
		case <-ctx.Done():
			return
		}
	}
}

func diagnosticToast(d session.Diagnostic) notify.Toast {
	return notify.Error("Warning", fmt.Sprintf("%s failed: %v", d.Op, d.Err))
}

func (a *App) isLoggedIn() bool {
	return a.session.Phase() == models.PhaseAuthenticated
}

func (a *App) status() string {
	st := a.session.Snapshot()
	who := "guest"
	if st.User != nil {
		who = st.User.Username
	}
	if a.route == "" {
		return fmt.Sprintf("(%s)", who)
	}
	return fmt.Sprintf("(%s %s)", who, a.route)
}

// flush prints the toasts raised since the last call.
func (a *App) flush() {
	for _, t := range a.toasts.Drain() {
		fmt.Fprintln(a.out, notify.Format(t))
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
