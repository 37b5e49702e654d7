// Package watch ingests files from a directory as they appear or change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

const defaultDebounce = 2 * time.Second

// Config controls what a Watcher watches and how it reports results.
type Config struct {
	// Dir is the directory to watch. It must exist.
	Dir string

	// OwnerID scopes ingested documents. Empty means "default".
	OwnerID string

	// Debounce is how long after the last write to a file the watcher
	// waits before ingesting it. Editors often write a file several
	// times in quick succession; only the settled version is ingested.
	Debounce time.Duration

	// OnIngest is called after each ingestion attempt, successful or
	// not. It may be nil.
	OnIngest func(filename string, chunks int, err error)
}

// Watcher ingests every file in a directory, then keeps ingesting
// files as they are created or modified. Events are debounced per
// file so a burst of writes produces a single ingestion.
type Watcher struct {
	ingest driving.IngestService
	cfg    Config
	fw     *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
	ripe   chan string

	closeOnce sync.Once
}

// New creates a Watcher over cfg.Dir. The directory must already
// exist; nothing is ingested until Run is called.
func New(ingest driving.IngestService, cfg Config) (*Watcher, error) {
	if ingest == nil {
		return nil, errors.New("watch: ingest service is required")
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", cfg.Dir)
	}

	if cfg.OwnerID == "" {
		cfg.OwnerID = "default"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(cfg.Dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		ingest: ingest,
		cfg:    cfg,
		fw:     fw,
		timers: make(map[string]*time.Timer),
		ripe:   make(chan string, 16),
	}, nil
}

// Run ingests the files already present in the directory, then blocks
// processing filesystem events until ctx is cancelled or the
// underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.scan(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case path := <-w.ripe:
			w.ingestFile(ctx, path)

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// Close stops the watcher and cancels any pending ingestions.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()
		err = w.fw.Close()
	})
	return err
}

// scan ingests the regular files already present in the directory.
func (w *Watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.cfg.Dir, entry.Name()))
	}
	return nil
}

// handleEvent schedules an ingestion for created or modified files.
// Removals cancel any pending ingestion for the file; directories,
// hidden files and chmod-only events are ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return
		}
		w.schedule(event.Name)

	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.cancel(event.Name)
	}
}

// schedule (re)starts the debounce timer for path. The file is
// ingested once the timer fires without another write resetting it.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.cfg.Debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case w.ripe <- path:
		default:
			logger.Warn("watch: dropping event for %s, ingestion backlog full", path)
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	logger.Debug("watch: ingesting %s", path)

	doc, err := w.ingest.IngestFile(ctx, w.cfg.OwnerID, path)
	if w.cfg.OnIngest == nil {
		return
	}
	if err != nil {
		w.cfg.OnIngest(filepath.Base(path), 0, err)
		return
	}
	w.cfg.OnIngest(doc.Filename, doc.ChunkCount, nil)
}

// isHidden reports whether name is a dotfile. The special entries "."
// and ".." are not considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
