package theme

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/go-quill/quill/pkg/env"
	quillerrors "github.com/go-quill/quill/pkg/errors"
)

// Watcher reloads a theme override file whenever it changes on disk.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the override file at path. Each time the file is
// written, the overrides are reloaded on top of base and the resulting
// environment is passed to onChange. onChange is called from a background
// goroutine; callers typically forward it to their event loop.
//
// The containing directory is watched rather than the file itself so that
// editors which replace the file by rename keep triggering reloads.
func Watch(base env.Env, path string, onChange func(env.Env)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}
	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.run(base, filepath.Clean(path), onChange)
	return w, nil
}

func (w *Watcher) run(base env.Env, path string, onChange func(env.Env)) {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			loaded, err := Load(base, path)
			if err != nil {
				quillerrors.Report(&quillerrors.FrameworkError{
					Op:   "theme.Watch",
					Kind: quillerrors.KindConfig,
					Err:  err,
				})
				continue
			}
			onChange(loaded)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			quillerrors.Report(&quillerrors.FrameworkError{
				Op:   "theme.Watch",
				Kind: quillerrors.KindConfig,
				Err:  err,
			})
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. It is safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
