// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/database"
	"github.com/luxfi/database/versiondb"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/tokenbridge"
)

var (
	_ Ledger = (*MemoryLedger)(nil)
	_ Host   = (*hostState)(nil)

	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrUnauthorized      = errors.New("authority does not match")
	ErrMintMismatch      = errors.New("mint mismatch")
	ErrDecimalsMismatch  = errors.New("decimals mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSupplyOverflow    = errors.New("supply overflow")
)

// Key prefixes of the three record tables.
const (
	accountPrefix byte = iota
	mintPrefix
	tokenAccountPrefix
)

// Account is a program-owned record.
type Account struct {
	Owner solana.PublicKey
	Data  []byte
}

// Mint is a token definition.
type Mint struct {
	Authority       solana.PublicKey
	FreezeAuthority solana.PublicKey
	Supply          uint64
	Decimals        uint8
}

// TokenAccount holds a balance of one mint on behalf of Owner.
type TokenAccount struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

// MemoryLedger is a host ledger backed by a key-value database. Calls are
// serialized, and each call sees a snapshot that is committed only if the
// call succeeds.
type MemoryLedger struct {
	mu sync.Mutex
	db database.Database
}

// NewMemoryLedger creates a ledger over db
func NewMemoryLedger(db database.Database) *MemoryLedger {
	return &MemoryLedger{db: db}
}

// Transact runs fn in a new call scope
func (l *MemoryLedger) Transact(ctx context.Context, fn func(Host) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	vdb := versiondb.New(l.db)
	if err := fn(&hostState{db: vdb}); err != nil {
		vdb.Abort()
		return err
	}
	return vdb.Commit()
}

// View runs fn against the committed state. Writes made by fn are discarded.
func (l *MemoryLedger) View(fn func(Host) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	vdb := versiondb.New(l.db)
	defer vdb.Abort()
	return fn(&hostState{db: vdb})
}

// Balance returns the committed balance of a token account
func (l *MemoryLedger) Balance(addr solana.PublicKey) (uint64, error) {
	var amount uint64
	err := l.View(func(h Host) error {
		acct, err := h.GetTokenAccount(addr)
		if err != nil {
			return err
		}
		amount = acct.Amount
		return nil
	})
	return amount, err
}

// Supply returns the committed supply of a mint
func (l *MemoryLedger) Supply(addr solana.PublicKey) (uint64, error) {
	var supply uint64
	err := l.View(func(h Host) error {
		mint, err := h.GetMint(addr)
		if err != nil {
			return err
		}
		supply = mint.Supply
		return nil
	})
	return supply, err
}

type hostState struct {
	db database.Database
}

func (s *hostState) Database() database.Database {
	return s.db
}

func key(prefix byte, addr solana.PublicKey) []byte {
	return append([]byte{prefix}, addr[:]...)
}

func get[T any](db database.Database, prefix byte, addr solana.PublicKey) (*T, error) {
	b, err := db.Get(key(prefix, addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	if err != nil {
		return nil, err
	}
	v, err := tokenbridge.Unmarshal[T](b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", addr, err)
	}
	return &v, nil
}

func put(db database.Database, prefix byte, addr solana.PublicKey, v interface{}) error {
	b, err := tokenbridge.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize record %s: %w", addr, err)
	}
	return db.Put(key(prefix, addr), b)
}

// create fails if any record already lives at addr.
func (s *hostState) create(prefix byte, addr solana.PublicKey, v interface{}) error {
	for _, p := range []byte{accountPrefix, mintPrefix, tokenAccountPrefix} {
		has, err := s.db.Has(key(p, addr))
		if err != nil {
			return err
		}
		if has {
			return fmt.Errorf("%w: %s", ErrAccountExists, addr)
		}
	}
	return put(s.db, prefix, addr, v)
}

func (s *hostState) GetAccount(addr solana.PublicKey) (*Account, error) {
	return get[Account](s.db, accountPrefix, addr)
}

func (s *hostState) CreateAccount(addr, owner solana.PublicKey, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	return s.create(accountPrefix, addr, Account{Owner: owner, Data: data})
}

func (s *hostState) GetMint(addr solana.PublicKey) (*Mint, error) {
	return get[Mint](s.db, mintPrefix, addr)
}

func (s *hostState) GetTokenAccount(addr solana.PublicKey) (*TokenAccount, error) {
	return get[TokenAccount](s.db, tokenAccountPrefix, addr)
}

func (s *hostState) CreateMint(addr solana.PublicKey, decimals uint8, mintAuthority, freezeAuthority solana.PublicKey) error {
	return s.create(mintPrefix, addr, Mint{
		Authority:       mintAuthority,
		FreezeAuthority: freezeAuthority,
		Decimals:        decimals,
	})
}

func (s *hostState) CreateTokenAccount(addr, mint, owner solana.PublicKey) error {
	if _, err := s.GetMint(mint); err != nil {
		return err
	}
	return s.create(tokenAccountPrefix, addr, TokenAccount{Mint: mint, Owner: owner})
}

func (s *hostState) MintTo(mintAddr, destination, authority solana.PublicKey, amount uint64) error {
	mint, err := s.GetMint(mintAddr)
	if err != nil {
		return err
	}
	if mint.Authority != authority {
		return fmt.Errorf("%w: mint %s", ErrUnauthorized, mintAddr)
	}
	dst, err := s.GetTokenAccount(destination)
	if err != nil {
		return err
	}
	if dst.Mint != mintAddr {
		return fmt.Errorf("%w: account %s holds %s", ErrMintMismatch, destination, dst.Mint)
	}

	supply, err := safemath.Add64(mint.Supply, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSupplyOverflow, err)
	}
	balance, err := safemath.Add64(dst.Amount, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSupplyOverflow, err)
	}
	mint.Supply = supply
	dst.Amount = balance

	if err := put(s.db, mintPrefix, mintAddr, *mint); err != nil {
		return err
	}
	return put(s.db, tokenAccountPrefix, destination, *dst)
}

func (s *hostState) TransferChecked(source, destination, authority, mintAddr solana.PublicKey, amount uint64, decimals uint8) error {
	mint, err := s.GetMint(mintAddr)
	if err != nil {
		return err
	}
	if mint.Decimals != decimals {
		return fmt.Errorf("%w: mint %s has %d, got %d", ErrDecimalsMismatch, mintAddr, mint.Decimals, decimals)
	}
	return s.transfer(source, destination, authority, &mintAddr, amount)
}

func (s *hostState) Lock(source, vault, authority solana.PublicKey, amount uint64) error {
	return s.transfer(source, vault, authority, nil, amount)
}

// transfer moves amount from source to destination. If mint is non-nil both
// accounts must hold it.
func (s *hostState) transfer(source, destination, authority solana.PublicKey, mint *solana.PublicKey, amount uint64) error {
	src, err := s.GetTokenAccount(source)
	if err != nil {
		return err
	}
	dst, err := s.GetTokenAccount(destination)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return fmt.Errorf("%w: account %s", ErrUnauthorized, source)
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %s holds %s, %s holds %s", ErrMintMismatch, source, src.Mint, destination, dst.Mint)
	}
	if mint != nil && src.Mint != *mint {
		return fmt.Errorf("%w: %s holds %s, expected %s", ErrMintMismatch, source, src.Mint, *mint)
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, source, src.Amount, amount)
	}
	if source == destination {
		return nil
	}

	newSrc, err := safemath.Sub(src.Amount, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	}
	newDst, err := safemath.Add64(dst.Amount, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSupplyOverflow, err)
	}
	src.Amount = newSrc
	dst.Amount = newDst

	if err := put(s.db, tokenAccountPrefix, source, *src); err != nil {
		return err
	}
	return put(s.db, tokenAccountPrefix, destination, *dst)
}
