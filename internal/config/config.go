package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used unless BOSSWATCH_CONFIG overrides it.
const DefaultPath = "bosswatch.yaml"

// Config is the top-level application configuration.
type Config struct {
	// DataFile is the JSON event catalog loaded at startup.
	DataFile string `yaml:"data_file"`

	// DBPath is the sqlite database holding the catalog and activation set.
	DBPath string `yaml:"db_path"`

	// LogFile receives structured logs; the TUI owns the terminal.
	LogFile string `yaml:"log_file"`

	// TickSeconds is the fixed poll interval.
	TickSeconds int `yaml:"tick_seconds"`

	// WindowSeconds is the arming-window width per threshold.
	WindowSeconds int `yaml:"window_seconds"`

	// RetentionMinutes bounds ledger memory. Normalize clamps it to at least
	// the largest threshold plus the window, so keys outlive their windows.
	RetentionMinutes int `yaml:"retention_minutes"`

	// DailyReset clears the whole ledger at local midnight when true.
	// Age-based pruning runs regardless.
	DailyReset bool `yaml:"daily_reset"`

	// Thresholds are the selectable "minutes before spawn" options.
	Thresholds []int `yaml:"thresholds"`

	// DesktopNotifications toggles the notify-send/osascript sink.
	DesktopNotifications bool `yaml:"desktop_notifications"`

	// Debug lowers the log level.
	Debug bool `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:             "boss_data.json",
		DBPath:               "bosswatch.db",
		LogFile:              "bosswatch.log",
		TickSeconds:          15,
		WindowSeconds:        30,
		RetentionMinutes:     45,
		DailyReset:           false,
		Thresholds:           []int{1, 3, 5, 10, 15, 30},
		DesktopNotifications: true,
	}
}

// Normalize fills zero values with defaults so partially-filled configs from
// older versions keep working.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.TickSeconds <= 0 {
		c.TickSeconds = def.TickSeconds
	}
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = def.WindowSeconds
	}
	if len(c.Thresholds) == 0 {
		c.Thresholds = append([]int(nil), def.Thresholds...)
	}
	// Retention must cover the largest threshold's full arming window.
	floor := maxInt(c.Thresholds) + (c.WindowSeconds+59)/60
	if c.RetentionMinutes < floor {
		c.RetentionMinutes = floor
	}
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionMinutes) * time.Minute
}

// Path resolves the config file location, honoring BOSSWATCH_CONFIG.
func Path() string {
	if p := os.Getenv("BOSSWATCH_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML config at path. A missing file is first-run: the
// default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically via a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".bosswatch-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func maxInt(values []int) int {
	out := 0
	for _, v := range values {
		if v > out {
			out = v
		}
	}
	return out
}
