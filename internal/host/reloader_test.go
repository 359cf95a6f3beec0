// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/labdeck/internal/dom"
)

const livePage = `<body>
  <div id="app">
    <main id="cards">
      <div class="research-card" id="card-a">Alpha</div>
    </main>
  </div>
</body>`

func writeDashboard(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dashboard.html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestReloader(t *testing.T, doc *dom.Document, path string) *Reloader {
	t.Helper()
	rl, err := NewReloader(doc, path, ".research-card", "#cards", Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rl.Close() })
	return rl
}

func TestSync_AppendsOnlyNewCards(t *testing.T) {
	doc, err := dom.ParseString(livePage)
	if err != nil {
		t.Fatal(err)
	}
	path := writeDashboard(t, t.TempDir(), `<body>
		<main id="cards">
			<div class="research-card" id="card-a">Alpha</div>
			<div class="research-card" id="card-b">Beta</div>
		</main>
	</body>`)

	rl := newTestReloader(t, doc, path)
	rl.reload()

	cards := doc.QueryAll(".research-card")
	if len(cards) != 2 {
		t.Fatalf("live cards = %d, want 2", len(cards))
	}
	if doc.Query("#card-b") == nil {
		t.Fatal("new card not synced")
	}

	// A second pass over the same snapshot adds nothing.
	rl.reload()
	if got := len(doc.QueryAll(".research-card")); got != 2 {
		t.Fatalf("cards after repeat reload = %d, want 2", got)
	}
}

func TestSync_SkipsCardsWithoutID(t *testing.T) {
	doc, err := dom.ParseString(livePage)
	if err != nil {
		t.Fatal(err)
	}
	path := writeDashboard(t, t.TempDir(),
		`<body><main id="cards"><div class="research-card">anonymous</div></main></body>`)

	rl := newTestReloader(t, doc, path)
	rl.reload()

	if got := len(doc.QueryAll(".research-card")); got != 1 {
		t.Fatalf("cards = %d, want 1 (anonymous card must not sync)", got)
	}
}

func TestSync_MissingTargetIsNoOp(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="app"></div></body>`)
	if err != nil {
		t.Fatal(err)
	}
	path := writeDashboard(t, t.TempDir(),
		`<body><main id="cards"><div class="research-card" id="card-x">X</div></main></body>`)

	rl := newTestReloader(t, doc, path)
	rl.reload()

	if got := len(doc.QueryAll(".research-card")); got != 0 {
		t.Fatalf("cards = %d, want 0 without a sync target", got)
	}
}

func TestReload_MissingFileLoggedNotFatal(t *testing.T) {
	doc, err := dom.ParseString(livePage)
	if err != nil {
		t.Fatal(err)
	}
	rl := newTestReloader(t, doc, filepath.Join(t.TempDir(), "gone.html"))
	rl.reload()

	if got := len(doc.QueryAll(".research-card")); got != 1 {
		t.Fatalf("cards = %d, want 1", got)
	}
}

func TestReload_RateLimitedPassRequeues(t *testing.T) {
	doc, err := dom.ParseString(livePage)
	if err != nil {
		t.Fatal(err)
	}
	path := writeDashboard(t, t.TempDir(), `<body>
		<main id="cards"><div class="research-card" id="card-b">Beta</div></main>
	</body>`)

	rl, err := NewReloader(doc, path, ".research-card", "#cards", Options{
		Limit: rate.Every(time.Hour),
		Burst: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer rl.Close()

	rl.reload() // consumes the single burst token
	if doc.Query("#card-b") == nil {
		t.Fatal("first reload should pass")
	}

	rl.reload() // denied
	rl.mu.Lock()
	requeued := rl.pending
	rl.mu.Unlock()
	if !requeued {
		t.Fatal("denied reload was not re-queued")
	}
}

func TestWatch_PicksUpFileChange(t *testing.T) {
	doc, err := dom.ParseString(livePage)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeDashboard(t, dir, livePage)

	rl, err := NewReloader(doc, path, ".research-card", "#cards", Options{
		Debounce: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer rl.Close()

	// The sync happens on the reloader's goroutine; observe the mutation
	// instead of polling the tree, which is not safe to read mid-append.
	added := make(chan struct{}, 1)
	cancel := doc.Observe(nil, func(dom.MutationRecord) {
		select {
		case added <- struct{}{}:
		default:
		}
	})
	defer cancel()

	if err := rl.Watch(); err != nil {
		t.Fatal(err)
	}

	writeDashboard(t, dir, `<body>
		<main id="cards">
			<div class="research-card" id="card-a">Alpha</div>
			<div class="research-card" id="card-c">Gamma</div>
		</main>
	</body>`)

	select {
	case <-added:
	case <-time.After(3 * time.Second):
		t.Fatal("file change never reached the live document")
	}
	if doc.Query("#card-c") == nil {
		t.Fatal("synced mutation was not the new card")
	}
}
