// labdeck - a UI enhancement layer for research dashboards.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/labdeck/internal/config"
	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/events"
	"github.com/jeranaias/labdeck/internal/host"
	"github.com/jeranaias/labdeck/internal/lifecycle"
	"github.com/jeranaias/labdeck/internal/prefs"
	"github.com/jeranaias/labdeck/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ~/.labdeck/config.toml)")
		dashboard  = flag.String("dashboard", "", "dashboard HTML file")
		themeName  = flag.String("theme", "", "theme to activate at startup")
		noWatch    = flag.Bool("no-watch", false, "disable dashboard file watching")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("labdeck %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	path := cfg.UI.DashboardPath
	if *dashboard != "" {
		path = *dashboard
	}

	doc, err := loadDocument(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dashboard %s: %v\n", path, err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "labdeck needs a terminal; use -version for build info")
		os.Exit(1)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		log.Printf("no preference database location: %v", err)
	}
	store := prefs.Open(dbPath)
	defer store.Close()

	bus := events.NewBus()
	lc := lifecycle.New(cfg, doc, store, bus, nil)
	lc.Start()
	defer lc.Teardown()

	if *themeName != "" {
		lc.SetTheme(*themeName)
	}

	if !*noWatch {
		if rl, err := host.NewReloader(doc, path, cfg.Enhance.Selector, lifecycle.RootSelector, host.Options{}); err != nil {
			log.Printf("watch disabled: %v", err)
		} else if err := rl.Watch(); err != nil {
			log.Printf("watch disabled: %v", err)
			rl.Close()
		} else {
			defer rl.Close()
		}
	}

	m := ui.New(cfg, doc, lc, bus)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running labdeck: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from an explicit path when given, otherwise from the
// default location, falling back to defaults when no file exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// loadDocument parses the dashboard file, or starts from the built-in
// sample when the file does not exist yet.
func loadDocument(path string) (*dom.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("no dashboard at %s, starting from the sample", path)
		return dom.ParseString(sampleDashboard)
	}
	return dom.ParseFile(path)
}

// sampleDashboard is the zero-setup page shown when no dashboard file
// exists. It has everything the enhancement layer looks for.
const sampleDashboard = `<body>
  <div id="app">
    <aside id="sidebar">
      <div>Projects</div>
      <div>Experiments</div>
      <div>Archive</div>
      <button id="sidebar-toggle">Toggle sidebar</button>
      <button id="theme-toggle">Switch theme</button>
    </aside>
    <main>
      <div class="research-card" id="welcome" data-title="Welcome to labdeck">
        Drop a dashboard.html next to the binary, or pass -dashboard. Cards
        matching the configured selector are decorated live as they appear.
      </div>
      <div class="research-card" id="shortcuts" data-title="Shortcuts">
        Press t to cycle themes, s to toggle the sidebar, ? for all bindings.
      </div>
    </main>
  </div>
</body>`
