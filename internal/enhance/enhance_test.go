// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enhance

import (
	"testing"
	"time"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/util"
)

const page = `<body><div id="app">
  <div class="research-card" id="card-a">Alpha</div>
  <div class="research-card" id="card-b">Beta</div>
</div></body>`

func newEngine(t *testing.T, reducedMotion bool) (*Engine, *util.FakeClock, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	fc := util.NewFakeClock(time.Unix(0, 0))
	eng := NewEngine(fc, ".research-card", reducedMotion, func() string { return "☀️" })
	return eng, fc, doc
}

func progressChild(t *testing.T, el *dom.Element) *dom.Element {
	t.Helper()
	p := el.ChildWithClass(ProgressClass)
	if p == nil {
		t.Fatal("no progress child")
	}
	return p
}

func TestRescan_DecoratesAllCandidates(t *testing.T) {
	eng, _, doc := newEngine(t, false)

	if got := eng.Rescan(doc); got != 2 {
		t.Fatalf("decorated %d, want 2", got)
	}

	for _, id := range []string{"#card-a", "#card-b"} {
		card := doc.Query(id)
		marker := card.ChildWithClass(MarkerClass)
		if marker == nil {
			t.Fatalf("%s has no marker child", id)
		}
		if marker.Text() != "☀️" {
			t.Errorf("%s marker text = %q", id, marker.Text())
		}
		if marker.ID() == "" {
			t.Errorf("%s marker has no id", id)
		}
		p := progressChild(t, card)
		if p.Attr("style") != "position:absolute" {
			t.Errorf("%s progress style = %q", id, p.Attr("style"))
		}
	}
}

func TestRescan_Idempotent(t *testing.T) {
	eng, _, doc := newEngine(t, false)

	eng.Rescan(doc)
	if got := eng.Rescan(doc); got != 0 {
		t.Fatalf("second pass decorated %d, want 0", got)
	}

	// Exactly one marker and one progress child per candidate.
	for _, id := range []string{"#card-a", "#card-b"} {
		card := doc.Query(id)
		markers, progresses := 0, 0
		for _, c := range card.Children() {
			if c.HasClass(MarkerClass) {
				markers++
			}
			if c.HasClass(ProgressClass) {
				progresses++
			}
		}
		if markers != 1 || progresses != 1 {
			t.Errorf("%s has %d markers and %d progress children", id, markers, progresses)
		}
	}
}

func TestRescan_EmptyDocument(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="app"></div></body>`)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(util.NewFakeClock(time.Unix(0, 0)), ".research-card", false, nil)

	if got := eng.Rescan(doc); got != 0 {
		t.Errorf("decorated %d in empty document", got)
	}
}

func TestAnimation_Sequence(t *testing.T) {
	eng, fc, doc := newEngine(t, false)
	eng.Rescan(doc)

	p := progressChild(t, doc.Query("#card-a"))
	if p.Attr("data-progress") != "0" {
		t.Fatalf("initial progress = %q, want 0", p.Attr("data-progress"))
	}

	// Before the 50ms delay nothing moves.
	fc.Advance(40 * time.Millisecond)
	if p.Attr("data-progress") != "0" {
		t.Error("progress moved before delay elapsed")
	}

	// Past the delay the fill target is set.
	fc.Advance(20 * time.Millisecond)
	if p.Attr("data-progress") != "100" {
		t.Errorf("progress = %q after delay, want 100", p.Attr("data-progress"))
	}
	if p.HasAttr("data-settled") {
		t.Error("settled before fill duration elapsed")
	}

	// After the fill duration the decoration settles.
	fc.Advance(600 * time.Millisecond)
	if p.Attr("data-settled") != "true" {
		t.Error("progress never settled")
	}
}

func TestReducedMotion_ImmediateFinalState(t *testing.T) {
	eng, fc, doc := newEngine(t, true)
	eng.Rescan(doc)

	p := progressChild(t, doc.Query("#card-a"))
	if p.Attr("data-progress") != "100" || p.Attr("data-settled") != "true" {
		t.Errorf("reduced motion state = progress %q settled %q",
			p.Attr("data-progress"), p.Attr("data-settled"))
	}
	if fc.Pending() != 0 {
		t.Error("reduced motion should schedule no timers")
	}
}

func TestFinalStatesEquivalent(t *testing.T) {
	animated, fc, docA := newEngine(t, false)
	animated.Rescan(docA)
	fc.Advance(time.Second)

	reduced, _, docB := newEngine(t, true)
	reduced.Rescan(docB)

	pa := progressChild(t, docA.Query("#card-a"))
	pb := progressChild(t, docB.Query("#card-a"))

	if pa.Attr("data-progress") != pb.Attr("data-progress") ||
		pa.Attr("data-settled") != pb.Attr("data-settled") {
		t.Errorf("final states differ: animated %q/%q vs reduced %q/%q",
			pa.Attr("data-progress"), pa.Attr("data-settled"),
			pb.Attr("data-progress"), pb.Attr("data-settled"))
	}
}

func TestEnhance_IndependentDecoration(t *testing.T) {
	eng, _, doc := newEngine(t, true)

	// Decorating one candidate leaves the other untouched.
	eng.Enhance([]*dom.Element{doc.Query("#card-a")})

	if doc.Query("#card-a").ChildWithClass(MarkerClass) == nil {
		t.Error("card-a not decorated")
	}
	if doc.Query("#card-b").ChildWithClass(MarkerClass) != nil {
		t.Error("card-b decorated without being passed")
	}
}

func TestEnhance_NestedCandidateNotMaskedByChildMarker(t *testing.T) {
	// A candidate nested inside another candidate: the inner marker must
	// not satisfy the outer idempotence check.
	doc, err := dom.ParseString(`<body><div id="app">
      <div class="research-card" id="outer">
        <div class="research-card" id="inner">Nested</div>
      </div>
    </div></body>`)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(util.NewFakeClock(time.Unix(0, 0)), ".research-card", true, nil)

	if got := eng.Rescan(doc); got != 2 {
		t.Fatalf("decorated %d, want both outer and inner", got)
	}
	if doc.Query("#outer").ChildWithClass(MarkerClass) == nil {
		t.Error("outer candidate skipped because of inner marker")
	}
}
