package debug

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a script must go unmodified before it runs. Editors
// often write a file several times per save.
const settle = 100 * time.Millisecond

// scriptWatcher collects changed tengo scripts under a set of directories.
// The fsnotify goroutine only records changes; Debug.Update takes the ones
// that have settled and runs them on the frame goroutine.
type scriptWatcher struct {
	fs   *fsnotify.Watcher
	done sync.WaitGroup
	now  func() time.Time

	mu      sync.Mutex
	changed map[string]time.Time
	errs    []error
}

func watchScripts(dirs ...string) (*scriptWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &scriptWatcher{fs: fw, now: time.Now, changed: make(map[string]time.Time)}
	w.done.Add(1)
	go w.record()
	return w, nil
}

// record runs until the fsnotify watcher is closed.
func (w *scriptWatcher) record() {
	defer w.done.Done()
	events, errs := w.fs.Events, w.fs.Errors
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isScript(ev.Name) {
				continue
			}
			w.mu.Lock()
			w.changed[ev.Name] = w.now()
			w.mu.Unlock()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.mu.Lock()
			w.errs = append(w.errs, err)
			w.mu.Unlock()
		}
	}
}

// take removes and returns, sorted, every script untouched for the settle
// window, along with any watcher errors seen since the last call.
func (w *scriptWatcher) take() ([]string, []error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	var ready []string
	for path, at := range w.changed {
		if now.Sub(at) >= settle {
			ready = append(ready, path)
			delete(w.changed, path)
		}
	}
	sort.Strings(ready)

	errs := w.errs
	w.errs = nil
	return ready, errs
}

func (w *scriptWatcher) close() error {
	err := w.fs.Close()
	w.done.Wait()
	return err
}

func isScript(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
