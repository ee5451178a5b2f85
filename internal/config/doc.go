// Package config provides the configuration system for csve.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (CSVE_*)    │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/csve/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML (config.toml) or YAML (config.yaml,
// config.yml). Layers are parsed into maps by the loader sub-package,
// deep-merged, and decoded into the typed Config struct. Unknown settings
// are rejected.
//
// # Sections
//
//	[editor]  column widths, discard confirmation, cursor movement
//	[csv]     delimiter, encoding and parse options for new documents
//	[keys]    action name → key spec or list of key specs
//	[theme]   hex colors for the grid view
//	[log]     log level and file
//	[script]  Lua init script
//	[export]  JSON export layout
package config
