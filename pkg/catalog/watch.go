package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/language"
)

// ReloadFunc receives a catalog that was reloaded after its file changed.
type ReloadFunc func(*Catalog)

// Watcher reloads a catalog file when it changes on disk. A file that no
// longer validates is logged and ignored; the previous catalog stays in use.
type Watcher struct {
	path     string
	locale   language.Tag
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches the directory of filename, so editors that save by
// renaming a temp file over the catalog are still noticed.
func NewWatcher(filename string, locale language.Tag, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", filename)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create catalog watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	return &Watcher{
		path:     abs,
		locale:   locale,
		onReload: onReload,
		watcher:  fw,
		debounce: 250 * time.Millisecond,
	}, nil
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends watching. Pending reloads are dropped.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debugf("Catalog %s changed (%s)", event.Name, event.Op)
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Catalog watcher error: %v", err)
		}
	}
}

// schedule coalesces bursts of events into one reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path, w.locale)
	if err != nil {
		log.Errorf("Catalog reload failed, keeping previous catalog: %v", err)
		return
	}
	log.Infof("Reloaded catalog %s: %d groups, %d symbols", w.path, c.Len(), c.SymbolCount())
	w.onReload(c)
}
