package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/glprogram"
)

// settle is how long watchFiles waits for a burst of events to end.
const settle = 100 * time.Millisecond

// watchFiles probes again after the manifest or any stage file changes,
// until ctx is done. Probing stays on the calling goroutine.
func watchFiles(ctx context.Context, p *prober, manifestPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Directories are watched so editors that replace files still trigger.
	watched := make(map[string]bool)
	watch := func() {
		for _, f := range p.files {
			dir := filepath.Dir(f)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				glprogram.Logger().Warn("glprobe: cannot watch", "dir", dir, "err", err)
				continue
			}
			watched[dir] = true
		}
	}
	relevant := func(name string) bool {
		for _, f := range p.files {
			if filepath.Clean(f) == filepath.Clean(name) {
				return true
			}
		}
		return false
	}
	watch()

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !relevant(event.Name) {
				continue
			}
			glprogram.Logger().Debug("glprobe: change", "file", event.Name, "op", event.Op)
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			glprogram.Logger().Warn("glprobe: watcher", "err", err)
		case <-timer.C:
			p.probe(manifestPath)
			watch()
		}
	}
}
