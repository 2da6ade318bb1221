// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package address derives the deterministic addresses that bind a bridge
// message to exactly one set of accounts on the host ledger.
//
// Every address is a program derived address: a pure function of a
// domain-separation seed, the remaining key material and the identity of
// the program that owns it. Nothing here reads or writes state.
package address

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/luxfi/tokenbridge"
)

var ErrInvalidRoute = errors.New("invalid route")

// Route scopes one vault and one wrapped mint.
type Route struct {
	// ChainSelector identifies the counterpart chain
	ChainSelector uint64
	// RemoteBridge is the bridge address on the counterpart chain
	RemoteBridge []byte
	// UnderlyingAsset identifies the asset the wrapped mint represents
	UnderlyingAsset []byte
}

// Verify checks the route's key material is within bounds
func (r Route) Verify() error {
	if len(r.RemoteBridge) == 0 {
		return fmt.Errorf("%w: empty remote bridge address", ErrInvalidRoute)
	}
	if len(r.RemoteBridge) > tokenbridge.MaxSenderAddressSize {
		return fmt.Errorf("%w: remote bridge address is %d bytes", ErrInvalidRoute, len(r.RemoteBridge))
	}
	if len(r.UnderlyingAsset) == 0 {
		return fmt.Errorf("%w: empty underlying asset", ErrInvalidRoute)
	}
	return nil
}

// seeds are hashed back to back with no length prefixes, so two routes that
// split the same bytes differently between RemoteBridge and UnderlyingAsset
// share addresses. Deployed addresses depend on this layout.
func (r Route) seeds(seed []byte) [][]byte {
	return [][]byte{
		seed,
		tokenbridge.ChainSelectorSeed(r.ChainSelector),
		r.RemoteBridge,
		r.UnderlyingAsset,
	}
}

// Deriver derives the addresses owned by one program.
type Deriver struct {
	programID solana.PublicKey
}

// NewDeriver returns a deriver for programID
func NewDeriver(programID solana.PublicKey) *Deriver {
	return &Deriver{programID: programID}
}

// ProgramID returns the identity addresses are derived under
func (d *Deriver) ProgramID() solana.PublicKey {
	return d.programID
}

// WrappedMint returns the address of the mint that represents r's underlying
// asset on this ledger.
func (d *Deriver) WrappedMint(r Route) (solana.PublicKey, uint8, error) {
	return d.route(tokenbridge.WrapperSeed, r)
}

// Vault returns the address holding r's locked underlying balance.
func (d *Deriver) Vault(r Route) (solana.PublicKey, uint8, error) {
	return d.route(tokenbridge.VaultSeed, r)
}

// Controller returns the address of the controller record. It is also the
// authority the program signs its own token operations with.
func (d *Deriver) Controller() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{tokenbridge.ControllerSeed}, d.programID)
}

func (d *Deriver) route(seed []byte, r Route) (solana.PublicKey, uint8, error) {
	if err := r.Verify(); err != nil {
		return solana.PublicKey{}, 0, err
	}
	addr, bump, err := solana.FindProgramAddress(r.seeds(seed), d.programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	return addr, bump, nil
}

// ExternalExecutionConfig returns the authority an offramp program signs with
// when it delivers a message to receiver. The address is derived under the
// offramp, so one offramp cannot produce another's authority.
func ExternalExecutionConfig(offramp, receiver solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{tokenbridge.ExternalExecutionConfigSeed, receiver[:]},
		offramp,
	)
}

// AllowedOfframp returns the address of the router's record permitting
// offramp to deliver messages from chainSelector.
func AllowedOfframp(router solana.PublicKey, chainSelector uint64, offramp solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			tokenbridge.AllowedOfframpSeed,
			tokenbridge.ChainSelectorSeed(chainSelector),
			offramp[:],
		},
		router,
	)
}
