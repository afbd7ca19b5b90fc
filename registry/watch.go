package registry

import (
	"fmt"

	"github.com/MobRulesGames/fsnotify"
	"github.com/caffeine-storm/shipyard/logging"
)

// Watcher reports writes to a set of files and directories.
type Watcher struct {
	fs *fsnotify.Watcher
}

func Watch(paths ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("couldn't start watcher: %w", err)
	}
	for _, path := range paths {
		if err := fs.Watch(path); err != nil {
			fs.Close()
			return nil, fmt.Errorf("couldn't watch %q: %w", path, err)
		}
	}
	return &Watcher{fs: fs}, nil
}

// Run calls onChange with the name of each created or modified file until
// the watcher is closed.
func (w *Watcher) Run(onChange func(path string)) {
	for {
		select {
		case ev, ok := <-w.fs.Event:
			if !ok {
				return
			}
			if ev.IsModify() || ev.IsCreate() {
				logging.Debug("watch: changed", "path", ev.Name)
				onChange(ev.Name)
			}

		case err, ok := <-w.fs.Error:
			if !ok {
				return
			}
			logging.Warn("watch: error", "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
