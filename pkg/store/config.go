package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the kiosk configuration, read from .kiosk.yaml and KIOSK_*
// environment variables.
type Config struct {
	APIURL     string
	APITimeout time.Duration

	StorePath string
	LogPath   string
	LogLevel  string

	IdleTimeout   time.Duration
	NightStart    int
	NightEnd      int
	CheckInterval time.Duration

	RefreshInterval time.Duration
	MaxFailures     int
	CompleteDelay   time.Duration

	Hold           time.Duration
	Deadzone       float64
	SwipeThreshold float64

	CellWidth  float64
	CellHeight float64

	ShowCompleted bool

	v *viper.Viper
}

// NewViper returns a viper instance with the kiosk defaults and search
// paths. Commands bind their flags to it before LoadConfig reads it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.url", "http://localhost:5000")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("store.path", "~/.kiosk.db")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("power.idle_timeout", "30s")
	v.SetDefault("power.night_start", 23)
	v.SetDefault("power.night_end", 5)
	v.SetDefault("power.check_interval", "30s")
	v.SetDefault("refresh.interval", "30s")
	v.SetDefault("refresh.max_failures", 3)
	v.SetDefault("refresh.complete_delay", "350ms")
	v.SetDefault("gesture.hold", "500ms")
	v.SetDefault("gesture.deadzone", 8)
	v.SetDefault("gesture.swipe_threshold", 100)
	v.SetDefault("input.cell_width", 10)
	v.SetDefault("input.cell_height", 20)
	v.SetDefault("display.show_completed", false)

	v.SetConfigName(".kiosk") // .yaml is implicit
	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("KIOSK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// LoadConfig reads the config file, if any, from the default search path.
func LoadConfig() (*Config, error) {
	return ReadConfig(NewViper())
}

// ReadConfig reads v's config file, if any, and decodes it. A missing file
// is not an error.
func ReadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	storePath, err := homedir.Expand(v.GetString("store.path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand store.path: %w", err)
	}
	logPath, err := homedir.Expand(v.GetString("log.path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log.path: %w", err)
	}
	c := &Config{
		APIURL:          v.GetString("api.url"),
		APITimeout:      v.GetDuration("api.timeout"),
		StorePath:       storePath,
		LogPath:         logPath,
		LogLevel:        v.GetString("log.level"),
		IdleTimeout:     v.GetDuration("power.idle_timeout"),
		NightStart:      v.GetInt("power.night_start"),
		NightEnd:        v.GetInt("power.night_end"),
		CheckInterval:   v.GetDuration("power.check_interval"),
		RefreshInterval: v.GetDuration("refresh.interval"),
		MaxFailures:     v.GetInt("refresh.max_failures"),
		CompleteDelay:   v.GetDuration("refresh.complete_delay"),
		Hold:            v.GetDuration("gesture.hold"),
		Deadzone:        v.GetFloat64("gesture.deadzone"),
		SwipeThreshold:  v.GetFloat64("gesture.swipe_threshold"),
		CellWidth:       v.GetFloat64("input.cell_width"),
		CellHeight:      v.GetFloat64("input.cell_height"),
		ShowCompleted:   v.GetBool("display.show_completed"),
		v:               v,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// BasePath is the diskv directory for the order record.
func (c *Config) BasePath() string {
	return c.StorePath
}

// Validate rejects settings the kiosk cannot run with.
func (c *Config) Validate() error {
	var errs []string
	if c.APIURL == "" {
		errs = append(errs, "api.url is required")
	}
	for _, h := range []struct {
		key  string
		hour int
	}{{"power.night_start", c.NightStart}, {"power.night_end", c.NightEnd}} {
		if h.hour < 0 || h.hour > 23 {
			errs = append(errs, fmt.Sprintf("%s must be within 0..23, got %d", h.key, h.hour))
		}
	}
	for _, d := range []struct {
		key string
		d   time.Duration
	}{
		{"api.timeout", c.APITimeout},
		{"power.idle_timeout", c.IdleTimeout},
		{"power.check_interval", c.CheckInterval},
		{"refresh.interval", c.RefreshInterval},
		{"refresh.complete_delay", c.CompleteDelay},
		{"gesture.hold", c.Hold},
	} {
		if d.d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive", d.key))
		}
	}
	if c.MaxFailures < 1 {
		errs = append(errs, "refresh.max_failures must be at least 1")
	}
	if c.Deadzone <= 0 || c.SwipeThreshold <= 0 {
		errs = append(errs, "gesture thresholds must be positive")
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		errs = append(errs, "input cell size must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("store: invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// OnChange watches the config file and calls fn with the re-read config
// after every valid edit. Invalid edits are passed to onErr and otherwise
// ignored. fn runs on the watcher goroutine.
func (c *Config) OnChange(fn func(*Config), onErr func(error)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	c.v.OnConfigChange(func(fsnotify.Event) {
		next, err := decode(c.v)
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		fn(next)
	})
	c.v.WatchConfig()
}
