package config

import "time"

// Base application details
const AppName = "tidepad"
const ConfigDirName = "tidepad"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tidepad.log"
const DefaultRecentsFileName = "recents.toml"
const DefaultRecentsDBName = "recents.db"

// UI Layout
const StatusBarHeight = 1
const TabBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Plugins
const DefaultAutosaveInterval = 30 * time.Second

// Recents backends
const (
	RecentsBackendTOML   = "toml"
	RecentsBackendSQLite = "sqlite"
)

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const SystemClipboard = true
