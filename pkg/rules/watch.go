package rules

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn every time the file at path changes, until ctx is done.
// Errors from fn are logged and do not stop the watch.
func Watch(ctx context.Context, path string, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warnf("failed to close file watcher: %v", err)
		}
	}()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	logger.Infof("watching %s for changes", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// React to write, create, rename, and remove events (editors often use atomic writes)
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
				continue
			}
			logger.Debugf("%s changed (event: %s)", event.Name, event.Op.String())

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Small delay to ensure the new file is fully written
				time.Sleep(200 * time.Millisecond)

				if _, err := os.Stat(path); os.IsNotExist(err) {
					logger.Warnf("%s was removed and not replaced, skipping", path)
					continue
				}

				// Re-add the file in case it was replaced
				if err := watcher.Add(path); err != nil {
					logger.Warnf("failed to re-add %s to watcher: %v", path, err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}

			if err := fn(); err != nil {
				logger.Errorf("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("file watcher error: %v", err)
		}
	}
}
