package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll/config"
	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/store"
	"github.com/warp/payroll/store/file"
	"github.com/warp/payroll/store/memory"
	"github.com/warp/payroll/store/sqlite"
)

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		FilePath:   filepath.Join(dir, "payroll.txt"),
		SQLitePath: filepath.Join(dir, "payroll.db"),
	}

	tests := []struct {
		backend string
		check   func(t *testing.T, s any)
	}{
		{"", func(t *testing.T, s any) { assert.IsType(t, &file.Store{}, s) }},
		{config.BackendFile, func(t *testing.T, s any) { assert.IsType(t, &file.Store{}, s) }},
		{config.BackendMemory, func(t *testing.T, s any) { assert.IsType(t, &memory.Store{}, s) }},
		{config.BackendSQLite, func(t *testing.T, s any) { assert.IsType(t, &sqlite.Store{}, s) }},
	}

	for _, tt := range tests {
		t.Run("backend="+tt.backend, func(t *testing.T) {
			cfg.Backend = tt.backend
			s, cleanup, err := store.Open(cfg, logging.Nop())
			require.NoError(t, err)
			require.NotNil(t, cleanup)
			t.Cleanup(func() { cleanup() })
			tt.check(t, s)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := store.Open(&config.Config{Backend: "postgres"}, logging.Nop())

	assert.ErrorContains(t, err, "unsupported backend")
}
