// Package config loads hintjump settings.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← HINTJUMP_*
//	├─────────────────────────────┤
//	│  2. User File               │  ← config.toml or config.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment loading
//   - layer: layer storage and merging
//   - watcher: file change notification for live reload
//
// # Configuration Files
//
//	# ~/.config/hintjump/config.toml
//	[hint]
//	alphabet = "asdfghjkl"
//	length = "fixed"
//	fixed_length = 2
//
//	[keys]
//	word_hint = ["f", "Ctrl+J"]
//
// Typed sections are read with Hint, Theme, Keys, Logging and View. A
// value of the wrong type falls back to its default there; Validate
// reports it.
package config
