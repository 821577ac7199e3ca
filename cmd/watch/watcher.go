package watch

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/LegacyCodeHQ/headerscan/depgraph"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// rescanLoop reruns a scan whenever a watched directory changes and
// publishes the file list when it differs from the last one.
type rescanLoop struct {
	watcher  *fsnotify.Watcher
	scan     func() (depgraph.ScanResult, error)
	publish  func(files []string)
	logger   *log.Logger
	debounce time.Duration
	watched  map[string]bool
	last     []string
}

// newRescanLoop runs the initial scan, publishes it and starts watching the
// search directories and the directory of every discovered file. An
// initial scan error is returned; later scan errors are only logged.
func newRescanLoop(scan func() (depgraph.ScanResult, error), publish func([]string), logger *log.Logger) (*rescanLoop, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	l := &rescanLoop{
		watcher:  watcher,
		scan:     scan,
		publish:  publish,
		logger:   diag.OrDiscard(logger),
		debounce: debounceInterval,
		watched:  make(map[string]bool),
	}

	result, err := scan()
	if err != nil {
		watcher.Close()
		return nil, err
	}
	l.last = result.Files
	publish(result.Files)
	l.watchDirs(result)

	return l, nil
}

func (l *rescanLoop) close() error {
	return l.watcher.Close()
}

// run blocks until ctx is done or the watcher is closed.
func (l *rescanLoop) run(ctx context.Context) error {
	var debounceTimer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-l.watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantChange(event) {
				continue
			}

			l.logger.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(l.debounce)
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			l.rescan()

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("Watcher error", "err", err)
		}
	}
}

func (l *rescanLoop) rescan() {
	result, err := l.scan()
	if err != nil {
		l.logger.Error("Rescan failed", "err", err)
		return
	}

	l.watchDirs(result)
	if slices.Equal(result.Files, l.last) {
		return
	}
	l.last = result.Files
	l.publish(result.Files)
}

func (l *rescanLoop) watchDirs(result depgraph.ScanResult) {
	for _, dir := range watchDirsFor(result) {
		if l.watched[dir] {
			continue
		}
		if err := l.watcher.Add(dir); err != nil {
			l.logger.Debug("Cannot watch directory", "dir", dir, "err", err)
			continue
		}
		l.watched[dir] = true
	}
}

// watchDirsFor returns the native directories whose changes can alter the result.
func watchDirsFor(result depgraph.ScanResult) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range result.SearchDirectories {
		add(filepath.FromSlash(dir))
	}
	for _, file := range result.Files {
		add(filepath.Join(filepath.FromSlash(result.Root), filepath.FromSlash(path.Dir(file))))
	}
	return dirs
}

func isRelevantChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
