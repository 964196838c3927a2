package state

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/sift/internal/config"
	"github.com/Paintersrp/sift/internal/pathutil"
)

// ConfigReloadedMsg carries the config re-read after the file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type ConfigWatcherErrMsg struct {
	Err error
}

// Editors often write a file in several steps; events inside this window
// collapse into one reload.
const reloadSettle = 150 * time.Millisecond

type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	home    string
	path    string
	done    chan struct{}
	once    sync.Once
	settle  time.Duration
}

// NewConfigWatcher watches the directory holding the config file, which
// survives editors that replace the file instead of writing in place.
func NewConfigWatcher(home string) (*ConfigWatcher, error) {
	if home == "" {
		return nil, errors.New("home directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path := pathutil.NormalizePath(config.GetConfigPath(home))
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &ConfigWatcher{
		watcher: w,
		home:    home,
		path:    path,
		done:    make(chan struct{}),
		settle:  reloadSettle,
	}, nil
}

// Next blocks until the config file changes and returns the reloaded config.
// Callers re-issue it after every message to keep watching.
func (w *ConfigWatcher) Next() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				if !w.waitQuiet() {
					return nil
				}

				cfg, err := config.Load(w.home)
				if err != nil {
					return ConfigWatcherErrMsg{Err: err}
				}
				if err := cfg.ApplyOverrides(); err != nil {
					return ConfigWatcherErrMsg{Err: err}
				}
				return ConfigReloadedMsg{Config: cfg}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return ConfigWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

// waitQuiet drains events until none arrive for the settle window. It
// returns false when the watcher closes meanwhile.
func (w *ConfigWatcher) waitQuiet() bool {
	timer := time.NewTimer(w.settle)
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return false
		case <-timer.C:
			return true
		case _, ok := <-w.watcher.Events:
			if !ok {
				return false
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.settle)
		}
	}
}

func (w *ConfigWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return pathutil.SameFile(event.Name, w.path)
}

func (w *ConfigWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}
