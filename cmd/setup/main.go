// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides labdeck-setup, a first-run helper that lays down
// the configuration directory, a default config, and a starter dashboard.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/labdeck/internal/config"
	"github.com/jeranaias/labdeck/internal/theme"
)

const version = "1.0.0"

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--help" || arg == "-h" {
			printHelp()
			return
		}
		if arg == "--version" || arg == "-v" {
			fmt.Printf("labdeck-setup v%s\n", version)
			return
		}
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                              LABDECK SETUP")
	fmt.Println("================================================================================")
	fmt.Println()
	fmt.Println("This setup will:")
	fmt.Println("  [1] Create the configuration directory")
	fmt.Println("  [2] Write a default config.toml")
	fmt.Println("  [3] Write a starter dashboard.html (if none exists)")
	fmt.Println()
	fmt.Print("Press Enter to continue (or 'q' to quit): ")
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) == "q" {
		fmt.Println("Setup cancelled.")
		return
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", configDir, err)
		os.Exit(1)
	}
	fmt.Printf("  [OK] Created directory: %s\n", configDir)

	cfg := config.Default()

	fmt.Println()
	fmt.Println("Available themes:")
	for i, name := range theme.Names {
		marker := " "
		if name == theme.DefaultName {
			marker = "*"
		}
		fmt.Printf("  [%d]%s %s\n", i+1, marker, name)
	}
	fmt.Printf("Enter choice [1-%d, Enter for default]: ", len(theme.Names))
	input, _ = reader.ReadString('\n')
	if choice := strings.TrimSpace(input); choice != "" {
		idx := int(choice[0] - '1')
		if idx >= 0 && idx < len(theme.Names) {
			cfg.UI.Theme = theme.Names[idx]
		}
	}

	configPath, _ := config.ConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  [OK] Created config: %s\n", configPath)
	} else {
		fmt.Printf("  [!!] Config already exists: %s\n", configPath)
	}

	dashPath := cfg.UI.DashboardPath
	if !filepath.IsAbs(dashPath) {
		dashPath = filepath.Join(configDir, dashPath)
	}
	if _, err := os.Stat(dashPath); os.IsNotExist(err) {
		if err := os.WriteFile(dashPath, []byte(starterDashboard), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing dashboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  [OK] Created dashboard: %s\n", dashPath)
	} else {
		fmt.Printf("  [!!] Dashboard already exists: %s\n", dashPath)
	}

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                            SETUP COMPLETE!")
	fmt.Println("================================================================================")
	fmt.Println()
	fmt.Println("To start the dashboard, run:")
	fmt.Println()
	fmt.Printf("    labdeck -dashboard %s\n", dashPath)
	fmt.Println()
	fmt.Println("Quick tips:")
	fmt.Println("    t   - cycle themes")
	fmt.Println("    s   - toggle the sidebar")
	fmt.Println("    ?   - all keyboard shortcuts")
	fmt.Println()
}

func printHelp() {
	fmt.Println(`labdeck-setup v` + version + `

Usage: labdeck-setup [OPTIONS]

Options:
  --help, -h     Show this help
  --version, -v  Show version

Creates ~/.labdeck with a default config.toml and a starter dashboard.
Existing files are never overwritten.`)
}

const starterDashboard = `<body>
  <div id="app">
    <aside id="sidebar">
      <div>Projects</div>
      <div>Experiments</div>
      <div>Archive</div>
      <button id="sidebar-toggle">Toggle sidebar</button>
      <button id="theme-toggle">Switch theme</button>
    </aside>
    <main>
      <div class="research-card" id="getting-started" data-title="Getting started">
        Edit this file and save: new cards appear in the dashboard live.
      </div>
    </main>
  </div>
</body>`
