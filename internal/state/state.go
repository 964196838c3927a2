package state

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/config"
	"github.com/Paintersrp/sift/internal/constants"
	"github.com/Paintersrp/sift/internal/controller"
	"github.com/Paintersrp/sift/internal/logging"
)

// LogTarget picks where the state's logger writes.
type LogTarget int

const (
	// LogToStderr suits one-shot commands, which print results on stdout.
	LogToStderr LogTarget = iota
	// LogToFile is required while bubbletea owns the terminal.
	LogToFile
)

type State struct {
	Config  *config.Config
	Home    string
	Logger  *log.Logger
	Backend *backend.Client
	Watcher *ConfigWatcher

	logCloser io.Closer
}

func NewState(target LogTarget) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStateWithHome(home, target)
}

// NewStateWithHome builds the state from the config under home.
func NewStateWithHome(home string, target LogTarget) (*State, error) {
	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	st := &State{Config: cfg, Home: home}

	switch target {
	case LogToFile:
		logger, closer, err := logging.File(cfg.LogPath(), constants.AppName, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		st.Logger, st.logCloser = logger, closer
	default:
		st.Logger = logging.Stderr(constants.AppName, cfg.Log.Level)
	}

	st.Backend = NewBackend(cfg, st.Logger)
	return st, nil
}

// NewBackend builds the HTTP client described by cfg.
func NewBackend(cfg *config.Config, logger *log.Logger) *backend.Client {
	return backend.NewClient(
		cfg.Backend.URL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(logger.WithPrefix("backend")),
		backend.WithSuggestionCache(cfg.CacheSize()),
	)
}

// ControllerOptions maps the config onto the interaction controller.
func (s *State) ControllerOptions() controller.Options {
	return ControllerOptions(s.Config, s.Logger)
}

func ControllerOptions(cfg *config.Config, logger *log.Logger) controller.Options {
	opts := controller.DefaultOptions()
	opts.Debounce = cfg.Suggest.Debounce
	opts.MinQueryLength = cfg.MinQueryLength()
	opts.Hybrid = cfg.HybridEnabled()
	opts.BlendWeight = cfg.BlendWeight()
	opts.ResubmitOnAccept = cfg.Search.ResubmitOnAccept
	if logger != nil {
		opts.Logger = logger.WithPrefix("controller")
	}
	return opts
}

// NewController wires a controller to the state's backend.
func (s *State) NewController() *controller.Controller {
	return controller.New(s.Backend, s.ControllerOptions())
}

// WatchConfig starts watching the config file. The watcher closes with the
// state.
func (s *State) WatchConfig() (*ConfigWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}
	w, err := NewConfigWatcher(s.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to watch config: %w", err)
	}
	s.Watcher = w
	return w, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

// LoadConfig creates the config file when missing, loads it, and applies flag
// and environment overrides bound through viper.
func LoadConfig(home string) (*config.Config, error) {
	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Close releases the watcher and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.logCloser != nil {
		if err := s.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logCloser = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
