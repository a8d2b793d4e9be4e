package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName           = "horizons"
	ConfigFileName    = "config.json"
	ProxiesFileName   = "proxies.txt"
	SnapshotFileName  = "jobs.json"
	DefaultServeAddr  = ":8000"
	DefaultSchedule   = "0 */6 * * *"
	DefaultTimeoutSec = 90
)

// Config contains run and serve defaults. The snapshot path defaults to
// jobs.json inside the config dir so repeated runs find their own data.
type Config struct {
	SnapshotPath string   `json:"snapshot_path"`
	MergePolicy  string   `json:"merge_policy"`
	Sources      []string `json:"sources"`
	TimeoutSec   int      `json:"timeout_sec"`
	Concurrency  int      `json:"concurrency"`
	ServeAddr    string   `json:"serve_addr"`
	RemoteURL    string   `json:"remote_url"`
	Schedule     string   `json:"schedule"`
	Headless     bool     `json:"headless"`
}

func DefaultConfig() Config {
	return Config{
		SnapshotPath: envString("HORIZONS_SNAPSHOT", ""),
		MergePolicy:  envString("HORIZONS_MERGE_POLICY", "replace"),
		Sources:      splitCSV(envString("HORIZONS_SOURCES", "")),
		TimeoutSec:   envInt("HORIZONS_TIMEOUT_SEC", DefaultTimeoutSec),
		Concurrency:  envInt("HORIZONS_CONCURRENCY", 4),
		ServeAddr:    envString("HORIZONS_SERVE_ADDR", DefaultServeAddr),
		RemoteURL:    envString("HORIZONS_REMOTE_URL", ""),
		Schedule:     envString("HORIZONS_SCHEDULE", DefaultSchedule),
		Headless:     envBool("HORIZONS_HEADLESS", true),
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// ResolveSnapshotPath resolves the effective snapshot location: the
// configured path when set, otherwise jobs.json in the config dir.
func (c Config) ResolveSnapshotPath() (string, error) {
	if strings.TrimSpace(c.SnapshotPath) != "" {
		return c.SnapshotPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SnapshotFileName), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("HORIZONS_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
