// Package server runs the web shell: it opens the preference database,
// assembles the client stack, starts the bootstrap check and serves the
// HTTP routes and the gRPC health endpoint until shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/services"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/client/storage"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
	"github.com/dmitrijs2005/vitalsync/internal/server/config"
	"github.com/dmitrijs2005/vitalsync/internal/server/httpapi"

	gs "github.com/dmitrijs2005/vitalsync/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   preferences.Store
	session *session.Session
	http    *httpapi.Server
	grpc    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
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

	hs := httpapi.NewServer(httpapi.Deps{
		Session: s,
		Router:  router.New(s),
		Views:   views.NewBuilder(s, health, devices, profile),
		Auth:    services.NewAuthService(s, toasts, logger),
		Devices: devices,
		Profile: profile,
		Toasts:  toasts,
	}, []byte(c.TokenSecret), c.RequestTimeout, logger)

	return &App{
		config:  c,
		logger:  logger.With("module", "app"),
		store:   store,
		session: s,
		http:    hs,
		grpc:    gs.NewGRPCServer(c.GRPCAddr, logger, s),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// startBootstrap resolves the session in the background; the routes answer
// with the loading placeholder until it is done.
func (app *App) startBootstrap(ctx context.Context) {
	phase := app.session.Bootstrap(ctx)
	app.logger.Info(ctx, "session resolved", "phase", phase.String())
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:        app.config.HTTPAddr,
		Handler:     app.http.Routes(),
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "error stopping HTTP server", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then waits for both servers to stop and closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	stopSignals := app.initSignalHandler(cancelFunc)
	defer stopSignals()

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startBootstrap(ctx)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "error closing preference store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
