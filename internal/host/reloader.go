// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/labdeck/internal/dom"
)

// =============================================================================
// DASHBOARD FILE RELOADER
// =============================================================================

// Defaults for the reload pipeline. The limiter allows short editor-save
// bursts but caps sustained reload churn at two passes per second.
const (
	DefaultDebounce  = 200 * time.Millisecond
	defaultRateLimit = rate.Limit(2)
	defaultRateBurst = 5
	tickInterval     = 50 * time.Millisecond
)

// Reloader watches the dashboard HTML file and feeds content changes into
// a live document. When the file changes, the new snapshot is parsed and
// any card that exists in the snapshot but not in the live document is
// appended to the live container. The observation loop picks the
// additions up from there like any other mutation; the reloader never
// decorates anything itself.
//
// The file's parent directory is watched rather than the file, because
// most editors save via rename-replace and a watch on the old inode goes
// stale after the first save.
type Reloader struct {
	doc       *dom.Document
	path      string
	cardSel   string
	targetSel string

	watcher  *fsnotify.Watcher
	limiter  *rate.Limiter
	debounce time.Duration

	mu      sync.Mutex
	changed time.Time
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Options tunes a Reloader. Zero values select defaults.
type Options struct {
	// Debounce is how long the file must stay quiet before a reload.
	Debounce time.Duration

	// Limit and Burst configure the reload rate limiter.
	Limit rate.Limit
	Burst int
}

// NewReloader creates a reloader that syncs cards matching cardSel from
// the file at path into the live element matched by targetSel.
func NewReloader(doc *dom.Document, path, cardSel, targetSel string, opts Options) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultRateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultRateBurst
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Reloader{
		doc:       doc,
		path:      filepath.Clean(path),
		cardSel:   cardSel,
		targetSel: targetSel,
		watcher:   watcher,
		limiter:   rate.NewLimiter(opts.Limit, opts.Burst),
		debounce:  opts.Debounce,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Watch starts the event and flush goroutines.
func (r *Reloader) Watch() error {
	if err := r.watcher.Add(filepath.Dir(r.path)); err != nil {
		return err
	}

	go r.processEvents()
	go r.processPending()

	return nil
}

// processEvents marks the file pending on every relevant event. Actual
// reloads happen in processPending once the file goes quiet.
func (r *Reloader) processEvents() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("host: watcher goroutine panicked: %v", rec)
		}
	}()

	for {
		select {
		case <-r.ctx.Done():
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				r.mu.Lock()
				r.changed = time.Now()
				r.pending = true
				r.mu.Unlock()
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("host: watch error: %v", err)
		}
	}
}

// processPending flushes the pending change once the debounce window has
// elapsed without further events.
func (r *Reloader) processPending() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			r.mu.Lock()
			due := r.pending && time.Since(r.changed) >= r.debounce
			if due {
				r.pending = false
			}
			r.mu.Unlock()

			if due {
				r.reload()
			}
		}
	}
}

// reload parses the current file contents and syncs new cards into the
// live document. Gated by the rate limiter; a denied pass is re-queued
// so the change is applied once the limiter recovers.
func (r *Reloader) reload() {
	if !r.limiter.Allow() {
		r.mu.Lock()
		r.changed = time.Now()
		r.pending = true
		r.mu.Unlock()
		return
	}

	snapshot, err := dom.ParseFile(r.path)
	if err != nil {
		log.Printf("host: reload %s: %v", r.path, err)
		return
	}
	if n := r.sync(snapshot); n > 0 {
		log.Printf("host: synced %d new cards from %s", n, filepath.Base(r.path))
	}
}

// sync appends snapshot cards missing from the live document and returns
// how many were added. Cards are matched by id; cards without an id are
// skipped because they cannot be deduplicated across reloads.
func (r *Reloader) sync(snapshot *dom.Document) int {
	target := r.doc.Query(r.targetSel)
	if target == nil {
		return 0
	}

	live := make(map[string]bool)
	for _, el := range r.doc.QueryAll(r.cardSel) {
		if id := el.ID(); id != "" {
			live[id] = true
		}
	}

	added := 0
	for _, el := range snapshot.QueryAll(r.cardSel) {
		id := el.ID()
		if id == "" || live[id] {
			continue
		}
		target.AppendChild(el.Clone())
		added++
	}
	return added
}

// Close stops the goroutines and releases the watcher.
func (r *Reloader) Close() error {
	r.cancel()
	return r.watcher.Close()
}
