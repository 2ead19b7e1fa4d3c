package lsp

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dhamidi/cmdline/cmdline"
	"github.com/dhamidi/cmdline/definition"
)

// DefinitionWatcher reloads a definition file whenever it changes on disk.
// The parent directory is watched so that editors replacing the file by
// rename are noticed too.
type DefinitionWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	onChange func(root *cmdline.Command)
	onError  func(err error)

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopOnce sync.Once
	stopErr  error
}

func NewDefinitionWatcher(path string, onChange func(root *cmdline.Command), onError func(err error)) (*DefinitionWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve definition path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &DefinitionWatcher{
		path:     abs,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Start begins watching. It does nothing once the watcher runs or was stopped.
func (w *DefinitionWatcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.run()
}

// Stop releases the watcher and waits for a started loop to exit. Later calls
// return the first call's error.
func (w *DefinitionWatcher) Stop() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		started := w.started
		w.mu.Unlock()

		close(w.stopCh)
		w.stopErr = w.watcher.Close()
		if started {
			<-w.doneCh
		}
	})
	return w.stopErr
}

func (w *DefinitionWatcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *DefinitionWatcher) reload() {
	root, err := definition.Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	w.onChange(root)
}
