package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pongpong/internal/balls"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/storage"
)

// env holds what every game command needs: logger, live settings,
// the session database and the ball registry.
type env struct {
	logger   *log.Logger
	settings *config.Store
	db       *storage.Store
	balls    *balls.Registry
	points   *storage.PointLog
	ballID   string

	logFile *os.File
	cancel  context.CancelFunc
}

// newEnv sets up the shared collaborators. fallback receives logs when
// --log-file is not given.
func newEnv(fallback io.Writer) (*env, error) {
	e := &env{}

	out := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		e.logFile = f
		out = f
	}
	e.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pongpong",
	})
	if flagDebug {
		e.logger.SetLevel(log.DebugLevel)
	}

	settings, err := config.Load(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}
	if verr := settings.Validate(); verr != nil {
		e.logger.Warn("Settings normalized", "error", verr)
	}
	e.settings = config.NewStore(settings)
	e.watch()

	// Continue without storage - the game still works, minus custom balls and the point log.
	db, err := storage.Open(flagDBPath)
	if err != nil {
		e.logger.Warn("could not open session database", "error", err)
	} else {
		e.db = db
		e.balls = balls.New(db, e.logger)
		e.points = db.PointLog(uuid.NewString())
	}

	if flagBall != "" {
		if e.balls == nil {
			e.close()
			return nil, fmt.Errorf("--ball needs the session database")
		}
		id, err := e.balls.AddFile(flagBall)
		if err != nil {
			e.close()
			return nil, err
		}
		e.balls.SetActive(id)
		e.ballID = id
	}

	return e, nil
}

// watch reloads the settings file on change. Only an existing file can be
// watched; without one the embedded defaults stay in place.
func (e *env) watch() {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath(config.SettingsFile)
	}
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := config.Watch(ctx, path, e.settings, e.logger); err != nil {
		cancel()
		e.logger.Warn("settings will not reload", "error", err)
		return
	}
	e.cancel = cancel
	e.logger.Debug("watching settings", "path", path)
}

// runtimeConfig returns the runtime config from the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func (e *env) close() {
	if e.cancel != nil {
		e.cancel()
	}
	if e.db != nil {
		e.db.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
