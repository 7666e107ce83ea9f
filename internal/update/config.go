package update

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/taskmini/internal/donation"
)

type RuntimeConfig struct {
	DBPath          string `toml:"db_path"`
	UserID          string `toml:"user_id"`
	ToastSeconds    int    `toml:"toast_seconds"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	HostDialogs     bool   `toml:"host_dialogs"`
	Haptics         bool   `toml:"haptics"`
	DonationAmounts []int  `toml:"donation_amounts"`
	Currency        string `toml:"currency"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := defaultStateDir()
	return RuntimeConfig{
		DBPath:          filepath.Join(dir, "taskmini.db"),
		ToastSeconds:    3,
		LogLevel:        "info",
		LogFile:         filepath.Join(dir, "taskmini.log"),
		HostDialogs:     true,
		Haptics:         true,
		DonationAmounts: append([]int(nil), donation.DefaultAmounts...),
		Currency:        donation.DefaultCurrency,
	}
}

// DefaultConfigPath is where LoadConfigFile looks when no path is given.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".taskmini.toml"
	}
	return filepath.Join(dir, "taskmini", "config.toml")
}

func defaultStateDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, "taskmini")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".taskmini"
	}
	return filepath.Join(home, ".local", "state", "taskmini")
}

// LoadConfigFile overlays a TOML file on base. A missing file is not an error
// unless required is set.
func LoadConfigFile(path string, base RuntimeConfig, required bool) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKMINI_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("TASKMINI_USER_ID"); ok {
		cfg.UserID = strings.TrimSpace(v)
	}
	if v, ok := getEnvInt("TASKMINI_TOAST_SECONDS"); ok && v > 0 {
		cfg.ToastSeconds = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKMINI_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("TASKMINI_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvBool("TASKMINI_HOST_DIALOGS"); ok {
		cfg.HostDialogs = v
	}
	if v, ok := getEnvBool("TASKMINI_HAPTICS"); ok {
		cfg.Haptics = v
	}
	if v, ok := getEnvIntList("TASKMINI_DONATION_AMOUNTS"); ok {
		cfg.DonationAmounts = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func getEnvIntList(name string) ([]int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, false
	}
	out := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
