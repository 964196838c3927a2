package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/sift/internal/pathutil"
	"github.com/Paintersrp/sift/internal/query"
)

type BackendConfig struct {
	URL     string        `yaml:"url"     json:"url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

type SearchConfig struct {
	Hybrid           *bool    `yaml:"hybrid"             json:"hybrid"`
	Alpha            *float64 `yaml:"alpha"              json:"alpha"`
	ResubmitOnAccept bool     `yaml:"resubmit_on_accept" json:"resubmit_on_accept"`
}

type SuggestConfig struct {
	Debounce       time.Duration `yaml:"debounce"         json:"debounce"`
	MinQueryLength *int          `yaml:"min_query_length" json:"min_query_length"`
	CacheSize      *int          `yaml:"cache_size"       json:"cache_size"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file"  json:"file"`
}

type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"`
}

type Config struct {
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Search  SearchConfig  `yaml:"search"  json:"search"`
	Suggest SuggestConfig `yaml:"suggest" json:"suggest"`
	Log     LogConfig     `yaml:"log"     json:"log"`
	UI      UIConfig      `yaml:"ui"      json:"ui"`

	home string `yaml:"-"`
}

const (
	DefaultBackendURL     = "http://127.0.0.1:5000"
	DefaultTimeout        = 10 * time.Second
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinQueryLength = 2
	DefaultCacheSize      = 128
	DefaultLogLevel       = "info"
	DefaultTheme          = "auto"
)

var ValidThemes = map[string]bool{
	"auto":  true,
	"dark":  true,
	"light": true,
}

// Default returns a config with every field populated.
func Default() *Config {
	cfg := &Config{}
	cfg.ensureDefaults()
	return cfg
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.home = home
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	cfg.Backend.URL = strings.TrimSpace(cfg.Backend.URL)
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = DefaultBackendURL
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = DefaultTimeout
	}
	if cfg.Search.Hybrid == nil {
		hybrid := true
		cfg.Search.Hybrid = &hybrid
	}
	if cfg.Search.Alpha == nil {
		alpha := query.DefaultBlendWeight
		cfg.Search.Alpha = &alpha
	}
	if cfg.Suggest.Debounce == 0 {
		cfg.Suggest.Debounce = DefaultDebounce
	}
	if cfg.Suggest.MinQueryLength == nil {
		n := DefaultMinQueryLength
		cfg.Suggest.MinQueryLength = &n
	}
	if cfg.Suggest.CacheSize == nil {
		n := DefaultCacheSize
		cfg.Suggest.CacheSize = &n
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.UI.Theme = strings.ToLower(strings.TrimSpace(cfg.UI.Theme))
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = DefaultTheme
	}
}

func (cfg *Config) Validate() error {
	if err := ValidateBackendURL(cfg.Backend.URL); err != nil {
		return err
	}
	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("invalid backend timeout: %s", cfg.Backend.Timeout)
	}
	if cfg.Search.Alpha != nil {
		if err := ValidateAlpha(*cfg.Search.Alpha); err != nil {
			return err
		}
	}
	if cfg.Suggest.Debounce < 0 {
		return fmt.Errorf("invalid suggest debounce: %s", cfg.Suggest.Debounce)
	}
	if cfg.Suggest.MinQueryLength != nil && *cfg.Suggest.MinQueryLength < 0 {
		return fmt.Errorf("invalid min_query_length: %d", *cfg.Suggest.MinQueryLength)
	}
	if cfg.Suggest.CacheSize != nil && *cfg.Suggest.CacheSize < 0 {
		return fmt.Errorf("invalid cache_size: %d", *cfg.Suggest.CacheSize)
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %q", cfg.Log.Level)
	}
	if _, ok := ValidThemes[cfg.UI.Theme]; !ok {
		return fmt.Errorf(
			"invalid theme: %q. Please choose from 'auto', 'dark', or 'light'",
			cfg.UI.Theme,
		)
	}
	return nil
}

func ValidateBackendURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend url %q: missing host", raw)
	}
	return nil
}

func ValidateAlpha(alpha float64) error {
	if !query.ValidWeight(alpha) {
		return fmt.Errorf(
			"invalid alpha: %v. Must be between %v and %v",
			alpha,
			query.MinBlendWeight,
			query.MaxBlendWeight,
		)
	}
	return nil
}

// ApplyOverrides copies flag values bound through viper over the file values.
func (cfg *Config) ApplyOverrides() error {
	if viper.IsSet("backend") {
		if v := strings.TrimSpace(viper.GetString("backend")); v != "" {
			cfg.Backend.URL = v
		}
	}
	if viper.IsSet("alpha") {
		alpha := viper.GetFloat64("alpha")
		cfg.Search.Alpha = &alpha
	}
	if viper.IsSet("log-level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(viper.GetString("log-level")))
	}
	cfg.ensureDefaults()
	return cfg.Validate()
}

func (cfg *Config) HybridEnabled() bool {
	if cfg.Search.Hybrid == nil {
		return true
	}
	return *cfg.Search.Hybrid
}

// BlendWeight is the configured alpha. Validate keeps it in range.
func (cfg *Config) BlendWeight() float64 {
	if cfg.Search.Alpha == nil {
		return query.DefaultBlendWeight
	}
	return *cfg.Search.Alpha
}

func (cfg *Config) MinQueryLength() int {
	if cfg.Suggest.MinQueryLength == nil {
		return DefaultMinQueryLength
	}
	return *cfg.Suggest.MinQueryLength
}

func (cfg *Config) CacheSize() int {
	if cfg.Suggest.CacheSize == nil {
		return DefaultCacheSize
	}
	return *cfg.Suggest.CacheSize
}

func (cfg *Config) LogPath() string {
	if cfg.Log.File != "" {
		return pathutil.ExpandHome(cfg.Log.File, cfg.home)
	}
	if cfg.home == "" {
		return ""
	}
	return GetLogPath(cfg.home)
}

func (cfg *Config) SetHome(home string) {
	cfg.home = home
}

func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if configPath == "" {
		return fmt.Errorf("unable to resolve config path")
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
