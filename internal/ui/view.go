// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/enhance"
	"github.com/jeranaias/labdeck/internal/lifecycle"
	"github.com/jeranaias/labdeck/internal/sidebar"
)

// Layout constants.
const (
	sidebarWidth     = 22
	collapsedWidth   = 3
	progressBarWidth = 20
	chromeHeight     = 3 // header + status bar + padding
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole dashboard.
func (m *Model) View() string {
	if !m.ready {
		return m.spinner.View() + " loading dashboard..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	body := m.viewport.View()

	if side := m.renderSidebar(); side != "" && !m.mobile() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusBar())
}

// mobile reports whether the root element carries the mobile class. Below
// the breakpoint the sidebar column is dropped entirely.
func (m *Model) mobile() bool {
	root := m.doc.Query(lifecycle.RootSelector)
	return root != nil && root.HasClass(lifecycle.MobileClass)
}

func (m *Model) contentWidth() int {
	w := m.width
	if !m.mobile() {
		if side := m.doc.Query(sidebar.Selector); side != nil && !side.HasClass(sidebar.CollapsedClass) {
			w -= sidebarWidth
		} else if side != nil {
			w -= collapsedWidth
		}
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) contentHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("labdeck %s %s", m.lc.ThemeIcon(), m.lc.GetTheme())
	return m.styles.Header.Width(m.width).Render(title)
}

// renderSidebar renders the sidebar column, or "" when the document has
// none.
func (m *Model) renderSidebar() string {
	side := m.doc.Query(sidebar.Selector)
	if side == nil {
		return ""
	}

	height := m.contentHeight()

	if side.HasClass(sidebar.CollapsedClass) {
		return m.styles.SidebarCollapsed.
			Width(collapsedWidth).
			Height(height).
			Render("»")
	}

	var items []string
	for _, child := range side.Children() {
		label := strings.TrimSpace(child.Text())
		if label == "" {
			continue
		}
		label = runewidth.Truncate(label, sidebarWidth-2, "…")
		items = append(items, m.styles.SidebarItem.Render(label))
	}

	return m.styles.Sidebar.
		Width(sidebarWidth).
		Height(height).
		Render(strings.Join(items, "\n"))
}

// renderCards renders every candidate card in document order.
func (m *Model) renderCards() string {
	cards := m.doc.QueryAll(m.cfg.Enhance.Selector)
	if len(cards) == 0 {
		return m.styles.MutedStyle.Render("no cards yet")
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, m.renderCard(card))
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) renderCard(card *dom.Element) string {
	title := card.Attr("data-title")
	if title == "" {
		title = card.ID()
	}
	if title == "" {
		title = "card"
	}
	title = runewidth.Truncate(title, m.contentWidth()-8, "…")

	var parts []string

	line := m.styles.CardTitle.Render(title)
	if marker := card.ChildWithClass(enhance.MarkerClass); marker != nil {
		line = m.styles.CardIcon.Render(marker.Text()) + " " + line
	}
	parts = append(parts, line)

	if body := strings.TrimSpace(card.Text()); body != "" {
		parts = append(parts, m.styles.CardBody.Render(m.renderMarkdown(body)))
	}

	if progress := card.ChildWithClass(enhance.ProgressClass); progress != nil {
		pct, err := strconv.Atoi(progress.Attr("data-progress"))
		if err == nil {
			parts = append(parts, m.styles.RenderProgressBar(progressBarWidth, pct))
		}
	}

	return m.styles.Card.Width(m.contentWidth() - 2).Render(strings.Join(parts, "\n"))
}

// renderMarkdown renders body text through glamour, falling back to the
// raw text when rendering fails or no renderer is ready yet.
func (m *Model) renderMarkdown(body string) string {
	if m.renderer == nil {
		return body
	}
	out, err := m.renderer.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimSpace(out)
}

func (m *Model) renderStatusBar() string {
	left := m.status
	if left == "" {
		left = fmt.Sprintf("theme: %s", m.lc.GetTheme())
	}

	var keys []string
	for _, b := range m.keyMap.ShortHelp() {
		keys = append(keys, b.Help().Key+" "+b.Help().Desc)
	}
	right := m.styles.MutedStyle.Render(strings.Join(keys, " · "))

	return m.styles.StatusBar.Width(m.width).Render(left + "  " + right)
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedStyle.Render("press ? to close"))
	return b.String()
}
