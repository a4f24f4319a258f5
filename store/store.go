// Package store opens the payroll.Store selected by configuration.
package store

import (
	"fmt"

	"github.com/warp/payroll/config"
	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/payroll"
	"github.com/warp/payroll/store/file"
	"github.com/warp/payroll/store/memory"
	"github.com/warp/payroll/store/sqlite"
)

// CleanupFunc releases whatever Open acquired.
type CleanupFunc func() error

func noCleanup() error { return nil }

// Open returns the store for cfg.Backend and a cleanup func that is never nil.
func Open(cfg *config.Config, log *logging.Logger) (payroll.Store, CleanupFunc, error) {
	log = log.WithComponent(logging.ComponentStorage)

	switch cfg.Backend {
	case config.BackendFile, "":
		log.Info("Using flat file store", logging.FieldPath, cfg.FilePath)
		return file.New(cfg.FilePath), noCleanup, nil

	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		log.Info("Using SQLite store", logging.FieldPath, cfg.SQLitePath)
		return s, s.Close, nil

	case config.BackendMemory:
		log.Info("Using in-memory store; records are lost on exit")
		return memory.New(), noCleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}
