/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
)

// retryConfig bounds how long a reload waits for a catalog file to become
// readable. Editors that truncate before writing produce change events for
// files that are momentarily empty.
type retryConfig struct {
	maxRetries  int
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

var defaultRetry = retryConfig{
	maxRetries:  4,
	baseBackoff: 25 * time.Millisecond,
	maxBackoff:  400 * time.Millisecond,
}

// loadWithRetry loads the catalog at path, retrying with exponential
// backoff while the file cannot be read or decoded. Compile errors are
// returned at once since rereading the same text cannot fix them.
func loadWithRetry(ctx context.Context, cfg retryConfig, path string) (*Catalog, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		f, err := ReadFile(path)
		if err == nil {
			return New(ctx, f)
		}
		lastErr = err
		if attempt >= cfg.maxRetries {
			break
		}

		backoff := min(cfg.baseBackoff<<attempt, cfg.maxBackoff)
		clog.FromContext(ctx).With("path", path).
			With("attempt", attempt+1).
			With("backoff", backoff).
			Debug("Catalog unreadable, retrying", "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("loading %s failed after %d retries: %w", path, cfg.maxRetries, lastErr)
}
