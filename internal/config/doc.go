// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// labdeck.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure with all settings
//   - EnhanceConfig: candidate selector and motion settings
//   - ObserveConfig: mutation debounce window
//   - BootstrapConfig: startup poll interval/timeout and mobile breakpoint
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (LABDECK_*)
//   - ~/.labdeck/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	selector := cfg.Enhance.Selector
//	window := cfg.DebounceWindow()
package config
