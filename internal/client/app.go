package client

import (
	"context"
	"fmt"

	"github.com/salim-ai/salim-client/internal/banklink"
	"github.com/salim-ai/salim-client/internal/config"
	"github.com/salim-ai/salim-client/internal/gateway"
	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/internal/session"
	"github.com/salim-ai/salim-client/internal/store"
	"github.com/salim-ai/salim-client/internal/tui"
)

// App owns the assembled client: every component is constructed in NewApp,
// Run drives the process lifecycle.
type App struct {
	cfg     *config.ClientConfig
	logger  *logger.Logger
	session *session.Store
	job     *banklink.RefreshJob
	ui      *tui.TUI

	cancel context.CancelFunc
}

// NewApp builds the full component graph from configuration. The gateway
// and the session store need each other, so they are constructed first and
// bound afterwards.
func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New("client")

	storages, err := store.NewClientStorages(cfg.Storage, logger.New("store"))
	if err != nil {
		return nil, fmt.Errorf("open durable store: %w", err)
	}

	api, err := gateway.New(cfg.API, logger.New("gateway"))
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	sessionStore := session.NewStore(api, storages, logger.New("session"))
	api.BindSession(sessionStore)

	widget := banklink.NewHostedWidget()
	coordinator := banklink.NewCoordinator(api, widget, storages.BankLink, logger.New("banklink"))
	job := banklink.NewRefreshJob(coordinator)

	ctx, cancel := context.WithCancel(context.Background())
	ui := tui.New(ctx, sessionStore, api, coordinator, widget)

	return &App{
		cfg:     cfg,
		logger:  log,
		session: sessionStore,
		job:     job,
		ui:      ui,
		cancel:  cancel,
	}, nil
}

// Run blocks until the UI exits. The background bank-refresh job runs for
// the lifetime of the UI when an interval is configured.
func (a *App) Run() error {
	defer a.cancel()

	if a.cfg.App.Demo {
		a.session.EnterDemo()
	}

	if interval := a.cfg.Workers.BankRefreshInterval; interval > 0 {
		a.job.Start(context.Background(), interval)
		defer a.job.Stop()
	}

	a.logger.Info().
		Str("base_url", a.cfg.API.BaseURL).
		Bool("demo", a.cfg.App.Demo).
		Msg("starting client")

	if err := a.ui.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
