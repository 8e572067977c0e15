package file

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CorpusWatcher = (*Watcher)(nil)

// debounce coalesces editor write bursts into one reload.
const debounce = 500 * time.Millisecond

// Watcher observes the knowledge-base directory and signals changes so the
// index can be rebuilt and swapped atomically.
type Watcher struct {
	dataDir string
}

// NewWatcher creates a watcher for the given data directory. An empty
// directory means the embedded corpus is in use, which never changes.
func NewWatcher(dataDir string) *Watcher {
	return &Watcher{dataDir: dataDir}
}

// Watch invokes onChange after knowledge files are modified, debounced.
// It blocks until ctx is cancelled. With the embedded corpus there is
// nothing to watch and Watch just waits for cancellation.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	if w.dataDir == "" {
		<-ctx.Done()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dataDir); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("corpus watcher: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("corpus watcher: %v", err)

		case <-fire:
			onChange()
		}
	}
}
