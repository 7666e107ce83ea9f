package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskmini/internal/host"
	"github.com/sandeepkv93/taskmini/internal/logging"
	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/storage"
	"github.com/sandeepkv93/taskmini/internal/update"
	"github.com/spf13/cobra"
)

func defaultConfigHint() string {
	return update.DefaultConfigPath()
}

// resolveConfig layers defaults, the config file, TASKMINI_* variables and
// finally any flags the user actually set.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (update.RuntimeConfig, error) {
	path := opts.configPath
	required := path != ""
	if path == "" {
		path = update.DefaultConfigPath()
	}
	cfg, err := update.LoadConfigFile(path, update.DefaultRuntimeConfig(), required)
	if err != nil {
		return cfg, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	if flags.Changed("user") {
		cfg.UserID = strings.TrimSpace(opts.user)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noHostDialogs {
		cfg.HostDialogs = false
	}
	return cfg, nil
}

// session is everything a command needs to read or mutate the task list.
type session struct {
	cfg    update.RuntimeConfig
	logger *log.Logger
	bridge host.Bridge
	repo   *storage.TaskRepository
	tasks  []model.Task

	closers []io.Closer
}

func openSession(ctx context.Context, cfg update.RuntimeConfig, ephemeral bool, interactive bool) (*session, error) {
	logOpts := logging.DefaultOptions()
	logOpts.Level = logging.ParseLevel(cfg.LogLevel)
	logOpts.Path = cfg.LogFile
	logger, logCloser, err := logging.Open(logOpts)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	var kv storage.KV
	if ephemeral {
		kv = storage.NewMemoryKV()
	} else {
		sqlite, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.closers = append(s.closers, sqlite)
		kv = sqlite
	}

	s.bridge = host.Bridge{Identity: host.IdentityFromID(cfg.UserID)}
	if interactive {
		if cfg.Haptics {
			s.bridge.Haptics = host.NewBellHaptics(os.Stderr)
		}
		if cfg.HostDialogs {
			if dialogs := host.DetectDialogs(); dialogs != nil {
				s.bridge.Dialogs = dialogs
			}
		}
	}
	s.bridge = s.bridge.Normalize()

	key := storage.KeyFor(s.bridge.UserKey())
	repo, err := storage.NewTaskRepository(kv, key, logger)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.repo = repo
	s.tasks = repo.Load(ctx)
	logger.Debug("session opened", "key", key, "ephemeral", ephemeral, "tasks", len(s.tasks))
	return s, nil
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "taskmini: close: %v\n", err)
		}
	}
	s.closers = nil
}
