package compact

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// WatchConfig configures watch mode.
type WatchConfig struct {
	Root       string
	IgnoreDirs []string

	// Debounce is the quiet period before OnChange fires; zero means
	// the default 500ms.
	Debounce time.Duration

	// OnChange is invoked after each debounced batch of source
	// changes. A failing rerun must not stop the watcher, so OnChange
	// returns nothing; the callback reports its own errors.
	OnChange func()
}

// Watch re-runs the pipeline whenever a source file under root
// changes. It blocks until ctx is cancelled. Pruned directories are
// not watched at all; directories created while watching are added on
// the fly.
func Watch(ctx context.Context, cfg WatchConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = defaultDebounce
	}

	pruned := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, name := range cfg.IgnoreDirs {
		pruned[name] = true
	}

	dirs, err := collectWatchDirs(cfg.Root, pruned)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch to see files
			// created inside them later.
			if event.Op.Has(fsnotify.Create) {
				if sub, err := collectWatchDirs(event.Name, pruned); err == nil {
					for _, dir := range sub {
						_ = watcher.Add(dir)
					}
				}
			}
			if filepath.Ext(event.Name) != sourceExt {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			cfg.OnChange()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are not fatal; the next event or rerun
			// picks up the current state.
		}
	}
}

// collectWatchDirs lists root and every non-pruned descendant
// directory. A non-directory root yields nothing.
func collectWatchDirs(root string, pruned map[string]bool) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && pruned[d.Name()] {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
