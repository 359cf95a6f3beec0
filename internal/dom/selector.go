// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import "strings"

// selector is one parsed compound selector: an optional tag name, an
// optional #id, and zero or more .classes. This covers every selector the
// enhancement layer uses ("#app", ".research-card", "div.card#main");
// combinators and attribute selectors are out of scope.
type selector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(s string) selector {
	var sel selector
	s = strings.TrimSpace(s)

	// Split on '#' and '.' boundaries, keeping the leading marker.
	start := 0
	flush := func(end int) {
		if start >= end {
			return
		}
		part := s[start:end]
		switch part[0] {
		case '#':
			sel.id = part[1:]
		case '.':
			if part[1:] != "" {
				sel.classes = append(sel.classes, part[1:])
			}
		default:
			sel.tag = part
		}
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '#' || s[i] == '.' {
			flush(i)
			start = i
		}
	}
	flush(len(s))
	return sel
}

// match reports whether e satisfies every component of sel. An empty
// selector matches nothing.
func (sel selector) match(e *Element) bool {
	if sel.tag == "" && sel.id == "" && len(sel.classes) == 0 {
		return false
	}
	if sel.tag != "" && !strings.EqualFold(sel.tag, e.tag) {
		return false
	}
	if sel.id != "" && sel.id != e.Attr("id") {
		return false
	}
	for _, c := range sel.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}
