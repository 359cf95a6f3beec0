// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import "strings"

// Palette holds the color data for one theme. Colors are hex strings fed
// to lipgloss, which downsamples for limited terminals.
type Palette struct {
	Name string
	Icon string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	AccentPrimary   string
	AccentSecondary string

	Success string
	Warning string
	Error   string

	Border string
}

// DefaultName is the theme used when nothing is persisted or a persisted
// name is unknown. It is the first member of Names.
const DefaultName = "Light"

// Names is the fixed, ordered theme set. Toggle cycles through it in this
// order.
var Names = []string{"Light", "Dark", "Cyberpunk", "Ocean", "Sunset"}

var palettes = map[string]Palette{
	"Light": {
		Name:            "Light",
		Icon:            "☀️",
		BgPrimary:       "#ffffff",
		BgSecondary:     "#f8fafc",
		BgTertiary:      "#f1f5f9",
		TextPrimary:     "#1e293b",
		TextSecondary:   "#475569",
		TextMuted:       "#94a3b8",
		AccentPrimary:   "#3b82f6",
		AccentSecondary: "#6366f1",
		Success:         "#10b981",
		Warning:         "#f59e0b",
		Error:           "#ef4444",
		Border:          "#e2e8f0",
	},
	"Dark": {
		Name:            "Dark",
		Icon:            "🌙",
		BgPrimary:       "#0f172a",
		BgSecondary:     "#1e293b",
		BgTertiary:      "#334155",
		TextPrimary:     "#f1f5f9",
		TextSecondary:   "#cbd5e1",
		TextMuted:       "#94a3b8",
		AccentPrimary:   "#3b82f6",
		AccentSecondary: "#8b5cf6",
		Success:         "#10b981",
		Warning:         "#f59e0b",
		Error:           "#ef4444",
		Border:          "#475569",
	},
	"Cyberpunk": {
		Name:            "Cyberpunk",
		Icon:            "⚡",
		BgPrimary:       "#0a0a0a",
		BgSecondary:     "#1a1a2e",
		BgTertiary:      "#16213e",
		TextPrimary:     "#00f5ff",
		TextSecondary:   "#ff00ff",
		TextMuted:       "#7dd3fc",
		AccentPrimary:   "#00f5ff",
		AccentSecondary: "#ff00ff",
		Success:         "#39ff14",
		Warning:         "#ffff00",
		Error:           "#ff0040",
		Border:          "#00f5ff",
	},
	"Ocean": {
		Name:            "Ocean",
		Icon:            "🌊",
		BgPrimary:       "#f0f9ff",
		BgSecondary:     "#e0f2fe",
		BgTertiary:      "#bae6fd",
		TextPrimary:     "#0c4a6e",
		TextSecondary:   "#0369a1",
		TextMuted:       "#0284c7",
		AccentPrimary:   "#0ea5e9",
		AccentSecondary: "#06b6d4",
		Success:         "#059669",
		Warning:         "#d97706",
		Error:           "#dc2626",
		Border:          "#7dd3fc",
	},
	"Sunset": {
		Name:            "Sunset",
		Icon:            "🌅",
		BgPrimary:       "#fef7ed",
		BgSecondary:     "#fed7aa",
		BgTertiary:      "#fdba74",
		TextPrimary:     "#9a3412",
		TextSecondary:   "#c2410c",
		TextMuted:       "#ea580c",
		AccentPrimary:   "#f97316",
		AccentSecondary: "#ef4444",
		Success:         "#16a34a",
		Warning:         "#ca8a04",
		Error:           "#dc2626",
		Border:          "#fed7aa",
	},
}

// Lookup resolves name (case-insensitive) to its palette. ok is false for
// names outside the theme set.
func Lookup(name string) (Palette, bool) {
	for _, n := range Names {
		if strings.EqualFold(n, name) {
			return palettes[n], true
		}
	}
	return Palette{}, false
}

// Canonical resolves name to its canonical casing, or "" when unknown.
func Canonical(name string) string {
	if p, ok := Lookup(name); ok {
		return p.Name
	}
	return ""
}

// Next returns the cyclic successor of name within Names. Unknown names
// are treated as the default.
func Next(name string) string {
	current := Canonical(name)
	if current == "" {
		current = DefaultName
	}
	for i, n := range Names {
		if n == current {
			return Names[(i+1)%len(Names)]
		}
	}
	return DefaultName
}
