package levels

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the catalog whenever a level file anywhere under l.Root is
// written, created, removed or renamed, and hands the new catalog to
// onChange. Directories created while watching are watched as well. It
// blocks until ctx is cancelled. Reload failures are logged and the previous
// catalog stays in effect.
func (l *Loader) Watch(ctx context.Context, onChange func([]Level)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levels: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirs(watcher, l.Root); err != nil {
		return err
	}

	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Info("watching level directory", "dir", l.Root)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event.Op) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addDirs(watcher, event.Name); err != nil {
					logger.Warn("cannot watch new directory", "dir", event.Name, "err", err)
				}
			} else if !IsLevelFile(event.Name) {
				continue
			}
			logger.Debug("level file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			levels, err := l.Catalog()
			if err != nil {
				logger.Warn("level reload failed", "err", err)
				continue
			}
			logger.Info("levels reloaded", "count", len(levels))
			onChange(levels)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("level watcher error", "err", err)
		}
	}
}

// addDirs adds root and every directory below it to the watcher.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
	if err != nil {
		return fmt.Errorf("levels: cannot watch %s: %w", root, err)
	}
	return nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
