/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/chainguard-dev/clog"
	"github.com/fsnotify/fsnotify"
)

// Watch calls onReload with a freshly loaded catalog every time the file at
// path is written or recreated. A file that cannot be read is retried
// briefly before the failure is passed to onReload. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, path string, onReload func(*Catalog, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// The directory is watched rather than the file so that editors
	// replacing the file are noticed.
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	log := clog.FromContext(ctx).With("path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("Catalog changed", "op", event.Op.String())
			c, err := loadWithRetry(ctx, defaultRetry, path)
			if ctx.Err() != nil {
				return nil
			}
			onReload(c, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Catalog watcher error", "error", err)
		}
	}
}

// Live holds the latest good catalog loaded from a file.
type Live struct {
	path    string
	current atomic.Pointer[Catalog]
}

// OpenLive loads the catalog at path.
func OpenLive(ctx context.Context, path string) (*Live, error) {
	c, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	l := &Live{path: path}
	l.current.Store(c)
	return l, nil
}

// Catalog returns the current catalog.
func (l *Live) Catalog() *Catalog { return l.current.Load() }

// Watch reloads the catalog whenever its file changes, until ctx is done.
// A catalog that fails to load is logged and the previous one is kept.
func (l *Live) Watch(ctx context.Context) error {
	return Watch(ctx, l.path, func(c *Catalog, err error) {
		if err != nil {
			clog.FromContext(ctx).With("path", l.path).Error("Reloading catalog failed, keeping previous", "error", err)
			return
		}
		l.current.Store(c)
	})
}
