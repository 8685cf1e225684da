package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cosmos/cosmos-sdk/telemetry"
	tmlog "github.com/tendermint/tendermint/libs/log"
	tmdb "github.com/tendermint/tm-db"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/feeder"
	"github.com/GPTx-global/guru-dataoracle/oracle/health"
	"github.com/GPTx-global/guru-dataoracle/oracle/log"
	"github.com/GPTx-global/guru-dataoracle/server"
)

const dbName = "application"

type Daemon struct {
	cfg    *config.Config
	logger tmlog.Logger

	app     *app.App
	metrics *telemetry.Metrics
	checker *health.Checker
	server  *server.Server
	feeder  *feeder.Feeder

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Oracle daemon instance with initialized components. On a
// fresh store the genesis file of the home directory is committed first.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg.Log.File {
		path, err := log.ResetLogger(cfg.Home, cfg.Log.Format, cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to reset logger: %w", err)
		}
		fmt.Fprintf(os.Stderr, "logging to %s\n", path)
	} else if err := log.InitLogger(cfg.Log.Format, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	d := &Daemon{
		cfg:    cfg,
		logger: log.Logger(),
	}
	d.ctx, d.cancel = context.WithCancel(ctx)

	var err error
	d.app, err = OpenApp(cfg, d.logger)
	if err != nil {
		return nil, err
	}

	if err := d.initChain(); err != nil {
		d.app.Close()
		return nil, err
	}

	if cfg.Telemetry.Enabled {
		d.metrics, err = telemetry.New(telemetry.Config{
			ServiceName:             app.Name,
			Enabled:                 true,
			PrometheusRetentionTime: cfg.Telemetry.RetentionTime,
			GlobalLabels:            [][]string{{"chain_id", cfg.Chain.ID}},
		})
		if err != nil {
			d.app.Close()
			return nil, fmt.Errorf("failed to init telemetry: %w", err)
		}
	}

	d.checker = health.NewChecker(cfg.Health.Interval)
	d.checker.AddCheck(health.NewFuncCheck("store", func(context.Context) error {
		if !d.app.Initialized() {
			return errors.New("genesis not committed")
		}
		return nil
	}))

	if cfg.Feeder.Enabled {
		d.feeder = feeder.New(
			feeder.NewAppSubmitter(d.app, cfg.Feeder.Provider),
			d.logger,
			feeder.Options{Workers: cfg.Feeder.Workers},
		)
		for _, job := range cfg.Feeder.Jobs {
			if err := d.feeder.AddJob(feeder.NewJob(job)); err != nil {
				d.app.Close()
				return nil, fmt.Errorf("invalid feeder job for oracle %d: %w", job.OracleID, err)
			}
		}
		d.checker.AddCheck(d.feeder)
	}

	d.server = server.New(cfg.API, cfg.Chain.ID, d.app, d.checker, d.metrics, d.logger)
	return d, nil
}

// OpenApp opens the configured database and loads the registry from it.
func OpenApp(cfg *config.Config, logger tmlog.Logger) (*app.App, error) {
	db, err := tmdb.NewDB(dbName, tmdb.BackendType(cfg.Store.Backend), cfg.DBDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Store.Backend, err)
	}

	a, err := app.New(db, logger, app.Options{ChainID: cfg.Chain.ID, Pruning: cfg.Store.Pruning})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create app: %w", err)
	}
	return a, nil
}

func (d *Daemon) initChain() error {
	if d.app.Initialized() {
		log.Infof("Loaded store at height %d", d.app.Height())
		return nil
	}

	genesis, err := ReadGenesisFile(d.cfg.GenesisFile())
	if err != nil {
		return fmt.Errorf("store is empty and genesis cannot be loaded (run init first): %w", err)
	}
	if err := d.app.InitChain(*genesis); err != nil {
		return fmt.Errorf("failed to init chain: %w", err)
	}

	log.Infof("Committed genesis of %s, owner %s", d.cfg.Chain.ID, genesis.Owner)
	return nil
}

// Start serves the API and starts the health checker and the feeder.
func (d *Daemon) Start() error {
	if err := d.server.Start(); err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	go d.checker.Start(d.ctx)

	if d.feeder != nil {
		d.feeder.Start(d.ctx)
	}

	log.Infof("oracled started on %s at height %d", d.server.Addr(), d.app.Height())
	return nil
}

// Stop gracefully shuts down all daemon components in reverse start order.
func (d *Daemon) Stop() {
	if d.feeder != nil {
		d.feeder.Stop()
	}

	if err := d.server.Shutdown(); err != nil {
		log.Errorf("%v", err)
	}

	d.cancel()

	if err := d.app.Close(); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
	log.Infof("oracled stopped")
}

func (d *Daemon) App() *app.App {
	return d.app
}

// Addr returns the address the API server listens on.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}
