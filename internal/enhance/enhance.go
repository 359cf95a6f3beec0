// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package enhance decorates candidate elements with an icon marker and an
// animated progress child.
//
// Decoration is idempotent: a candidate that already carries a marker
// child is skipped, so repeated passes over the same document are safe and
// cheap. This is what lets the observation loop fall back to full-document
// rescans without double-decorating.
//
// The progress child animates through the injected clock (50ms delay, then
// a 600ms fill, then a settled state). With reduced motion the final state
// is written immediately; both paths converge on the same attributes.
package enhance

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/util"
)

const (
	// MarkerClass marks a decorated candidate's icon child. Its presence
	// as a direct child is the idempotence check.
	MarkerClass = "ld-icon"

	// ProgressClass marks the progress child.
	ProgressClass = "ld-progress"
)

// Animation timing. End state is identical with or without motion.
const (
	fillDelay    = 50 * time.Millisecond
	fillDuration = 600 * time.Millisecond
)

// Engine decorates candidates matched by a selector. Candidates are
// opaque: the engine never inspects their content, only their children.
type Engine struct {
	clock         util.Clock
	selector      string
	reducedMotion bool
	icon          func() string
}

// NewEngine returns an engine. icon supplies the marker glyph at
// decoration time (typically the active theme's icon); nil leaves markers
// empty.
func NewEngine(clock util.Clock, selector string, reducedMotion bool, icon func() string) *Engine {
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &Engine{
		clock:         clock,
		selector:      selector,
		reducedMotion: reducedMotion,
		icon:          icon,
	}
}

// Selector returns the candidate selector.
func (e *Engine) Selector() string { return e.selector }

// Rescan decorates every undecorated candidate in the document and
// returns how many it decorated. An empty document is a silent no-op.
func (e *Engine) Rescan(doc *dom.Document) int {
	return e.Enhance(doc.QueryAll(e.selector))
}

// Enhance decorates each undecorated candidate in the slice and returns
// how many it decorated.
func (e *Engine) Enhance(candidates []*dom.Element) int {
	decorated := 0
	for _, el := range candidates {
		if el.ChildWithClass(MarkerClass) != nil {
			continue
		}
		e.decorate(el)
		decorated++
	}
	return decorated
}

// decorate appends the marker and progress children and starts the fill.
func (e *Engine) decorate(el *dom.Element) {
	doc := el.Document()

	marker := doc.CreateElement("span")
	marker.AddClass(MarkerClass)
	marker.SetAttr("id", "ld-"+uuid.NewString())
	if e.icon != nil {
		marker.SetText(e.icon())
	}
	el.AppendChild(marker)

	progress := doc.CreateElement("span")
	progress.AddClass(ProgressClass)
	progress.SetAttr("style", "position:absolute")
	progress.SetAttr("data-progress", "0")
	el.AppendChild(progress)

	if e.reducedMotion {
		progress.SetAttr("data-progress", "100")
		progress.SetAttr("data-settled", "true")
		return
	}

	e.clock.AfterFunc(fillDelay, func() {
		progress.SetAttr("data-progress", "100")
		e.clock.AfterFunc(fillDuration, func() {
			progress.SetAttr("data-settled", "true")
		})
	})
}
