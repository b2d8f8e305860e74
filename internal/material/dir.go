package material

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/deckforge/internal/document"
)

// DirLibrary is a Library backed by *.json catalog files in a directory.
// Each file holds a JSON array of materials. File changes trigger a full
// reload of the catalog.
type DirLibrary struct {
	*Library

	dir     string
	watcher *fsnotify.Watcher
	errs    chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// OpenDir loads the catalog from dir and starts watching it for changes.
func OpenDir(dir string) (*DirLibrary, error) {
	lib := &DirLibrary{
		Library: NewLibrary(),
		dir:     dir,
		errs:    make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	if err := lib.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	lib.watcher = watcher

	lib.wg.Add(1)
	go lib.loop()
	return lib, nil
}

// Errors returns reload errors from the watch loop. The channel is
// buffered; unread errors beyond the buffer are dropped.
func (l *DirLibrary) Errors() <-chan error { return l.errs }

// Close stops watching. The catalog remains usable with its last state.
func (l *DirLibrary) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closeCh)
		if l.watcher != nil {
			err = l.watcher.Close()
		}
		l.wg.Wait()
	})
	return err
}

func (l *DirLibrary) loop() {
	defer l.wg.Done()
	for {
		select {
		case <-l.closeCh:
			return
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := l.reload(); err != nil {
				l.report(err)
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.report(err)
		}
	}
}

func (l *DirLibrary) report(err error) {
	select {
	case l.errs <- err:
	default:
	}
}

// reload re-reads every catalog file and swaps the catalog wholesale, so
// a half-written file never leaves a partially updated library.
func (l *DirLibrary) reload() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("reading material dir %s: %w", l.dir, err)
	}

	materials := make(map[string]*document.Material)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var batch []*document.Material
		if err := json.Unmarshal(data, &batch); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, m := range batch {
			if m == nil || m.ID == "" {
				return fmt.Errorf("%s: %w", path, ErrInvalidMaterial)
			}
			materials[m.ID] = m
		}
	}

	l.replaceAll(materials)
	return nil
}
