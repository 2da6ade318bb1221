// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/auth"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/bridge"
	"github.com/luxfi/tokenbridge/config"
	"github.com/luxfi/tokenbridge/metadata"
	"github.com/luxfi/tokenbridge/metrics"
	"github.com/luxfi/tokenbridge/payload"
	"github.com/luxfi/tokenbridge/replay"
)

// newSimulateCmd delivers one wrap message to a fresh in-memory ledger
// holding only the route's wrapper, and reports the outcome.
func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Dry-run an inbound wrap against an in-memory ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			route, err := routeFromFlags(cmd)
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetUint64("amount")
			return simulate(cmd, cfg, route, amount)
		},
	}
	addRouteFlags(cmd)
	cmd.Flags().Uint64("amount", 1, "Amount in base units")
	return cmd
}

// newLogger writes JSON lines at the configured level to w.
func newLogger(cfg config.Config, w io.Writer) log.Logger {
	return log.NewLogger(
		"bridgecli",
		*log.NewWrappedCore(
			cfg.GetLogLevel(),
			zapcore.AddSync(w),
			log.JSON.ConsoleEncoder(),
		),
	)
}

func newController(cfg config.Config, logger log.Logger, ledger backend.Ledger, relay backend.Relay) (*bridge.Controller, error) {
	resolver, err := metadata.NewCached(metadata.NewStatic(nil), cfg.MetadataCacheSize)
	if err != nil {
		return nil, err
	}
	bridgeCfg := &bridge.Config{
		ProgramID: cfg.GetProgramID(),
		Ledger:    ledger,
		Relay:     relay,
		Metadata:  resolver,
		Metrics:   metrics.NewBridgeMetrics(prometheus.NewRegistry()),
		Log:       logger,
	}
	if cfg.ReplayProtection {
		bridgeCfg.Replay = replay.New(replay.DefaultPrefix)
	}
	return bridge.New(bridgeCfg)
}

func simulate(cmd *cobra.Command, cfg config.Config, route address.Route, amount uint64) error {
	ctx := context.Background()
	logger := newLogger(cfg, cmd.ErrOrStderr())
	logger.Debug("simulating wrap",
		log.Uint64("sourceChainSelector", route.ChainSelector),
		log.Uint64("amount", amount),
	)
	ledger := backend.NewMemoryLedger(memdb.New())
	c, err := newController(cfg, logger, ledger, backend.NewMemoryRelay())
	if err != nil {
		return err
	}

	if _, err := c.InitializeController(ctx, cfg.GetRouter()); err != nil {
		return err
	}
	mint, err := c.InitializeWrapper(ctx, route)
	if err != nil {
		return err
	}

	offramp := solana.NewWallet().PublicKey()
	authority, _, err := address.ExternalExecutionConfig(offramp, cfg.GetProgramID())
	if err != nil {
		return err
	}
	allowed, _, err := address.AllowedOfframp(cfg.GetRouter(), route.ChainSelector, offramp)
	if err != nil {
		return err
	}
	destination := solana.NewWallet().PublicKey()
	err = ledger.Transact(ctx, func(h backend.Host) error {
		if err := h.CreateAccount(allowed, cfg.GetRouter(), nil); err != nil {
			return err
		}
		return h.CreateTokenAccount(destination, mint, solana.NewWallet().PublicKey())
	})
	if err != nil {
		return err
	}

	data, err := payload.Message(&payload.WrapPayload{
		Name:            metadata.PlaceholderName,
		Symbol:          metadata.PlaceholderSymbol,
		UnderlyingAsset: route.UnderlyingAsset,
		Recipient:       destination[:],
		Amount:          uint256.NewInt(amount),
	})
	if err != nil {
		return err
	}
	msg := &tokenbridge.InboundMessage{
		MessageID:           ids.ID(hash.ComputeHash256Array(data)),
		SourceChainSelector: route.ChainSelector,
		Sender:              route.RemoteBridge,
		Data:                data,
	}
	accounts := &bridge.ReceiveAccounts{
		CallContext: auth.CallContext{
			Signers:        set.Of(authority),
			Authority:      authority,
			OfframpProgram: offramp,
			AllowedOfframp: allowed,
		},
		Mint:        mint,
		Destination: destination,
	}
	if _, err := c.CcipReceive(ctx, accounts, msg); err != nil {
		return err
	}

	balance, err := ledger.Balance(destination)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrapped mint: %s\n", mint)
	fmt.Fprintf(out, "destination: %s\n", destination)
	fmt.Fprintf(out, "balance: %d\n", balance)
	return nil
}
