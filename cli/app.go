package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"invest-sim/config"
	"invest-sim/domain"
	"invest-sim/logger"
	"invest-sim/repository"
	"invest-sim/service"
)

// App is the wired service graph shared by every command.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Service *service.ScenarioService

	closers []io.Closer
}

func openApp(opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	app := &App{Config: cfg, Logger: log}

	kv, err := app.openKeyValueStore(cfg.Storage)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	store := repository.NewScenarioStore(kv, cfg.Storage.Key, log.Named("store"))
	if _, err := store.LoadAll(); err != nil {
		// Se sigue con la colección vacía
		log.Warn("could not load saved scenarios, starting empty",
			zap.Bool("corrupt", errors.Is(err, domain.ErrCorruptData)),
			zap.Error(err))
	}

	formatter, err := service.NewMoneyFormatter(cfg.Format.Locale, cfg.Format.Currency)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Service = service.NewScenarioService(store, formatter, log.Named("scenarios"))
	return app, nil
}

func (a *App) openKeyValueStore(cfg config.StorageConfig) (repository.KeyValueStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	case config.DriverRedis:
		kv, err := repository.NewRedisStore(repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, kv)
		return kv, nil
	case config.DriverSQLite:
		kv, err := repository.OpenSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, kv)
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// Close releases storage handles and flushes the logger.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.Logger.Warn("close storage", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}
