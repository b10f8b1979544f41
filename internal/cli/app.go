package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/memstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/ui"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	opt    Options
	cfg    *config.Config
	logger *log.Logger
	slot   store.Slot

	closers []io.Closer
}

var flagKeys = map[string]string{
	"storage":   "storage.backend",
	"data-dir":  "storage.dir",
	"theme":     "ui.theme",
	"log-level": "log.level",
}

// setup loads config (file < env < flags), then builds the logger and slot.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	l := config.NewLoader()
	for name, key := range flagKeys {
		if err := l.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return runtimeErr(err)
		}
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := l.LoadConfig(path)
	if err != nil {
		return runtimeErr(fmt.Errorf("config: %w", err))
	}
	if off, _ := cmd.Flags().GetBool("no-celebrate"); off {
		cfg.UI.Celebrate = false
	}
	a.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	a.logger = logging.New(a.opt.Stderr, cfg.Log.Level)

	slot, err := a.openSlot()
	if err != nil {
		return runtimeErr(err)
	}
	a.slot = slot
	a.logger.Debug("slot ready", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
	return nil
}

func (a *app) openSlot() (store.Slot, error) {
	if a.opt.Slot != nil {
		return a.opt.Slot, nil
	}
	st := a.cfg.Storage
	switch st.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(sqlitePath(st.Dir), st.Key)
		if err != nil {
			return nil, fmt.Errorf("open sqlite slot: %w", err)
		}
		a.closers = append(a.closers, s)
		return s, nil
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		return jsonstore.NewInDir(st.Dir), nil
	}
}

func sqlitePath(dir string) string {
	return filepath.Join(dir, sqlitestore.DefaultFileName)
}

// newStore hydrates a store over the slot with the given celebrator.
func (a *app) newStore(c store.Celebrator) *store.Store {
	s := store.New(a.slot, store.WithCelebrator(c), store.WithLogger(a.logger))
	s.Hydrate()
	return s
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
