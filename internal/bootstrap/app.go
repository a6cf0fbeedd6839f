package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Vinothdevgit/voting-client/config"
	"github.com/Vinothdevgit/voting-client/internal/adapters/clock"
	"github.com/Vinothdevgit/voting-client/internal/adapters/electionapi"
	"github.com/Vinothdevgit/voting-client/internal/adapters/jwtrole"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
	"github.com/Vinothdevgit/voting-client/internal/ports"
	"github.com/Vinothdevgit/voting-client/internal/service"
)

// AppOptions groups the process-level inputs to New.
type AppOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Navigator receives route changes. Defaults to logging them.
	Navigator ports.Navigator
	// OnTick receives countdown updates while waiting. Optional.
	OnTick func(countdown.State)
	// Clock drives the countdown. Defaults to wall time.
	Clock ports.Clock
	// HTTPClient overrides the election server transport. Optional.
	HTTPClient *http.Client
}

// App is the fully wired voting client.
type App struct {
	Config     config.AppConfig
	Logger     *slog.Logger
	Decoder    *jwtrole.Decoder
	Sessions   *service.SessionStore
	Ballot     *service.BallotService
	Admin      *service.AdminService
	Waiting    *service.WaitingCoordinator
	Controller *service.Controller

	kv      SessionKV
	metrics *statsd.Client
}

// New wires configuration into adapters and services. The caller must Close
// the returned App.
func New(ctx context.Context, opts AppOptions) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	}
	var sink statsd.Sink
	if metrics != nil {
		sink = metrics
	}
	tel := service.Telemetry{Logger: logger, Metrics: sink}

	api, err := electionapi.NewClient(electionapi.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		UserAgent:  cfg.API.UserAgent,
		HTTPClient: opts.HTTPClient,
		Logger:     logger,
		Metrics:    sink,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("election api client: %w", err), metrics.Close())
	}

	decoder, err := jwtrole.New(jwtrole.Options{RoleClaim: cfg.Workflow.RoleClaim, Logger: logger})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("credential decoder: %w", err), metrics.Close())
	}

	kv, err := OpenSessionKV(ctx, cfg.Session, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("session store: %w", err), metrics.Close())
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	nav := opts.Navigator
	if nav == nil {
		nav = logNavigator(logger)
	}

	sessions := service.NewSessionStore(service.SessionStoreOptions{KV: kv.Store, Logger: logger})
	waiting := service.NewWaitingCoordinator(service.WaitingCoordinatorOptions{
		Clock:     clk,
		Seconds:   cfg.Workflow.WaitSeconds,
		Telemetry: tel,
	})

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Decoder:  decoder,
		Sessions: sessions,
		Ballot:   service.NewBallotService(service.BallotServiceOptions{API: api, Sessions: sessions, Telemetry: tel}),
		Admin:    service.NewAdminService(service.AdminServiceOptions{API: api, Sessions: sessions, Telemetry: tel}),
		Waiting:  waiting,
		kv:       kv,
		metrics:  metrics,
	}
	app.Controller = service.NewController(service.ControllerOptions{
		Flows: service.WorkflowFlows{
			Auth: service.NewAuthService(service.AuthServiceOptions{
				API: api, Sessions: sessions, Decoder: decoder, Telemetry: tel,
			}),
			Votes:   service.NewVoteSubmitter(service.VoteSubmitterOptions{API: api, Sessions: sessions, Telemetry: tel}),
			Waiting: waiting,
		},
		Sessions:  sessions,
		Navigator: nav,
		OnTick:    opts.OnTick,
		Telemetry: tel,
	})

	logger.Debug("voting client ready",
		"api", cfg.API.BaseURL,
		"session_backend", kv.Backend,
		"wait_seconds", waiting.Seconds(),
		"metrics", metrics.Enabled(),
	)
	return app, nil
}

// Close stops the workflow and releases the session backend and metrics.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Controller != nil {
		a.Controller.Close()
	}
	return errors.Join(a.kv.Close(), a.metrics.Close())
}
