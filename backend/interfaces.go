// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/database"

	"github.com/luxfi/tokenbridge"
)

// TokenProgram is the token-movement capability. Every call is all or
// nothing: on error no balance or supply has changed.
type TokenProgram interface {
	// MintTo creates amount new units of mint in destination. authority must
	// be the mint's authority.
	MintTo(mint, destination, authority solana.PublicKey, amount uint64) error

	// TransferChecked moves amount units from source to destination.
	// authority must own source, and mint and decimals must match source.
	TransferChecked(source, destination, authority, mint solana.PublicKey, amount uint64, decimals uint8) error

	// Lock moves amount units from source into vault. authority must own
	// source.
	Lock(source, vault, authority solana.PublicKey, amount uint64) error
}

// TokenAdmin creates token records. It is used by setup paths only.
type TokenAdmin interface {
	// CreateMint creates a mint. A zero freezeAuthority means the mint
	// cannot be frozen.
	CreateMint(addr solana.PublicKey, decimals uint8, mintAuthority, freezeAuthority solana.PublicKey) error
	CreateTokenAccount(addr, mint, owner solana.PublicKey) error
}

// TokenReader reads token records.
type TokenReader interface {
	GetMint(addr solana.PublicKey) (*Mint, error)
	GetTokenAccount(addr solana.PublicKey) (*TokenAccount, error)
}

// AccountStore holds program-owned accounts keyed by address.
type AccountStore interface {
	GetAccount(addr solana.PublicKey) (*Account, error)
	CreateAccount(addr, owner solana.PublicKey, data []byte) error
}

// Host is the view of the ledger available to one call.
type Host interface {
	TokenProgram
	TokenAdmin
	TokenReader
	AccountStore

	// Database returns the key-value namespace scoped to the call
	Database() database.Database
}

// Ledger runs calls against the host ledger. The effects of fn are
// committed only if fn returns nil.
type Ledger interface {
	Transact(ctx context.Context, fn func(Host) error) error
}

// Relay receives outbound messages for delivery to the counterpart chain.
type Relay interface {
	// AddMessage adds a message to be sent
	AddMessage(msg *tokenbridge.OutboundMessage) error
}
