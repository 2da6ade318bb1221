// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the settings of a bridge controller.
package config

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/log"
)

const (
	defaultLogLevel          = "info"
	DefaultMetadataCacheSize = 1024
)

var (
	errMissingProgramID = errors.New("program-id must be set")
	errMissingRouter    = errors.New("router must be set")
	errInvalidLogLevel  = errors.New("invalid log level")
	errInvalidCacheSize = errors.New("metadata-cache-size must be positive")
)

// Config is the top level configuration
type Config struct {
	ProgramID         string `mapstructure:"program-id" json:"program-id"`
	Router            string `mapstructure:"router" json:"router"`
	LogLevel          string `mapstructure:"log-level" json:"log-level"`
	ReplayProtection  bool   `mapstructure:"replay-protection" json:"replay-protection"`
	MetadataCacheSize uint64 `mapstructure:"metadata-cache-size" json:"metadata-cache-size"`

	// Populated by Validate
	programID solana.PublicKey
	router    solana.PublicKey
	logLevel  log.Level
}

// Validate checks the configuration and parses the keys it names
func (c *Config) Validate() error {
	if c.ProgramID == "" {
		return errMissingProgramID
	}
	if c.Router == "" {
		return errMissingRouter
	}
	programID, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return fmt.Errorf("invalid program-id %q: %w", c.ProgramID, err)
	}
	router, err := solana.PublicKeyFromBase58(c.Router)
	if err != nil {
		return fmt.Errorf("invalid router %q: %w", c.Router, err)
	}
	logLevel, err := log.ToLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}
	if c.MetadataCacheSize == 0 {
		return errInvalidCacheSize
	}

	c.programID = programID
	c.router = router
	c.logLevel = logLevel
	return nil
}

// GetProgramID returns the parsed program-id. Validate must have succeeded.
func (c *Config) GetProgramID() solana.PublicKey {
	return c.programID
}

// GetRouter returns the parsed router. Validate must have succeeded.
func (c *Config) GetRouter() solana.PublicKey {
	return c.router
}

// GetLogLevel returns the parsed log-level. Validate must have succeeded.
func (c *Config) GetLogLevel() log.Level {
	return c.logLevel
}
