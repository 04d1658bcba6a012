package shader

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

// Watcher reports edits to the files of a Pair. It watches the parent
// directories so that editors which save by rename are still seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]bool
	changes chan struct{}
	done    chan struct{}
	log     *zap.Logger
}

// Watch starts watching both files of p.
func Watch(p Pair, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	w := &Watcher{
		fs:      fw,
		files:   make(map[string]bool),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}

	dirs := make(map[string]bool)
	for _, path := range []string{p.Vertex, p.Fragment} {
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "resolve %s", path)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}

	go w.run()
	return w, nil
}

// Changes delivers one value per settled burst of edits. The channel holds
// at most one pending notification.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("shader file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watcher error", zap.Error(err))
		}
	}
}
