// Package debug exposes named actions that developer tooling can trigger:
// a button panel, tengo scripts, or tests. Everything is a no-op when the
// debug surface is inactive.
package debug

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/milk9111/experience/logging"
)

var ErrUnknownAction = errors.New("debug: unknown action")

// Action is a named control bound to live state.
type Action struct {
	Folder string
	Name   string
	Fn     func()
}

// Debug is the registry of actions plus the optional script console.
type Debug struct {
	Active bool

	actions map[string]Action
	order   []string
	log     *zap.Logger
	console *Console
	watcher *scriptWatcher
}

// New creates a debug surface. An inactive one ignores every call.
func New(active bool, log *zap.Logger) *Debug {
	d := &Debug{Active: active, actions: make(map[string]Action), log: logging.Or(log)}
	d.console = newConsole(d)
	return d
}

// AddAction registers fn under name, replacing any action with the same
// name.
func (d *Debug) AddAction(folder, name string, fn func()) {
	if d == nil || !d.Active || name == "" || fn == nil {
		return
	}
	if _, ok := d.actions[name]; !ok {
		d.order = append(d.order, name)
	}
	d.actions[name] = Action{Folder: folder, Name: name, Fn: fn}
}

// RemoveFolder drops every action in folder.
func (d *Debug) RemoveFolder(folder string) {
	if d == nil {
		return
	}
	kept := d.order[:0]
	for _, name := range d.order {
		if d.actions[name].Folder == folder {
			delete(d.actions, name)
			continue
		}
		kept = append(kept, name)
	}
	d.order = kept
}

// Invoke runs the named action.
func (d *Debug) Invoke(name string) error {
	if d == nil || !d.Active {
		return nil
	}
	a, ok := d.actions[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	d.log.Debug("debug action", zap.String("folder", a.Folder), zap.String("action", name))
	a.Fn()
	return nil
}

// Actions lists actions in registration order.
func (d *Debug) Actions() []Action {
	if d == nil {
		return nil
	}
	out := make([]Action, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.actions[name])
	}
	return out
}

// Folders lists folder names, sorted.
func (d *Debug) Folders() []string {
	seen := map[string]struct{}{}
	for _, a := range d.Actions() {
		seen[a.Folder] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Console returns the script console.
func (d *Debug) Console() *Console {
	if d == nil {
		return nil
	}
	return d.console
}

// Watch runs scripts in dirs whenever they change. Changes are applied by
// Update on the caller's goroutine.
func (d *Debug) Watch(dirs ...string) error {
	if d == nil || !d.Active {
		return nil
	}
	w, err := watchScripts(dirs...)
	if err != nil {
		return fmt.Errorf("debug: watch %v: %w", dirs, err)
	}
	if d.watcher != nil {
		_ = d.watcher.close()
	}
	d.watcher = w
	return nil
}

// Update runs, in path order, every watched script that has settled since
// the last call.
func (d *Debug) Update() {
	if d == nil || d.watcher == nil {
		return
	}
	paths, errs := d.watcher.take()
	for _, err := range errs {
		d.log.Warn("debug watcher error", zap.Error(err))
	}
	for _, path := range paths {
		if err := d.console.RunFile(path); err != nil {
			d.log.Warn("debug script failed", zap.String("path", path), zap.Error(err))
		}
	}
}

// Dispose stops the watcher and drops every action.
func (d *Debug) Dispose() {
	if d == nil {
		return
	}
	if d.watcher != nil {
		_ = d.watcher.close()
		d.watcher = nil
	}
	d.actions = make(map[string]Action)
	d.order = nil
}
