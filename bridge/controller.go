// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridge moves tokens between this ledger and counterpart chains.
// Inbound messages mint wrapped tokens or release locked ones, and outbound
// wraps lock tokens in a vault and emit a message for the relay.
package bridge

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/auth"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/metadata"
	"github.com/luxfi/tokenbridge/metrics"
	"github.com/luxfi/tokenbridge/replay"
)

var (
	errNoLedger = errors.New("no ledger")
	errNoRelay  = errors.New("no relay")
)

// Config configures a Controller
type Config struct {
	// ProgramID is the identity every bridge address is derived under
	ProgramID solana.PublicKey
	// Ledger executes token movements
	Ledger backend.Ledger
	// Relay receives outbound messages
	Relay backend.Relay
	// Metadata names assets in outbound wraps. Defaults to placeholders.
	Metadata metadata.Resolver
	// Replay rejects messages that were already executed. Nil disables it.
	Replay *replay.Guard
	// Metrics defaults to an unregistered set
	Metrics *metrics.BridgeMetrics
	Log     log.Logger
}

// Controller is the bridge program of one ledger.
type Controller struct {
	programID solana.PublicKey
	deriver   *address.Deriver
	auth      *auth.Chain
	ledger    backend.Ledger
	relay     backend.Relay
	metadata  metadata.Resolver
	replay    *replay.Guard
	metrics   *metrics.BridgeMetrics
	log       log.Logger
}

// New returns a controller for cfg
func New(cfg *Config) (*Controller, error) {
	if cfg.Ledger == nil {
		return nil, errNoLedger
	}
	if cfg.Relay == nil {
		return nil, errNoRelay
	}

	c := &Controller{
		programID: cfg.ProgramID,
		deriver:   address.NewDeriver(cfg.ProgramID),
		auth:      auth.NewChain(cfg.ProgramID),
		ledger:    cfg.Ledger,
		relay:     cfg.Relay,
		metadata:  cfg.Metadata,
		replay:    cfg.Replay,
		metrics:   cfg.Metrics,
		log:       cfg.Log,
	}
	if c.metadata == nil {
		c.metadata = metadata.NewStatic(nil)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewBridgeMetrics(prometheus.NewRegistry())
	}
	if c.log == nil {
		c.log = log.NewNoOpLogger()
	}
	return c, nil
}

// ProgramID returns the identity the controller derives addresses under
func (c *Controller) ProgramID() solana.PublicKey {
	return c.programID
}

// Deriver returns the controller's address deriver
func (c *Controller) Deriver() *address.Deriver {
	return c.deriver
}
