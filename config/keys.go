// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"

	// Top-level configuration keys
	ProgramIDKey         = "program-id"
	RouterKey            = "router"
	LogLevelKey          = "log-level"
	ReplayProtectionKey  = "replay-protection"
	MetadataCacheSizeKey = "metadata-cache-size"
)
