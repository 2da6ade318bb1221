// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package state holds the controller record: the single durable piece of
// bridge configuration, created once at setup and read on every call.
package state

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/backend"
)

var (
	ControllerDiscriminator = tokenbridge.AccountDiscriminator("Controller")

	ErrInvalidRecord = errors.New("invalid controller record")
)

// Controller is the controller record.
type Controller struct {
	// Bump is the derivation bump of the controller address
	Bump uint8
	// Router is the only router whose allow-list is trusted
	Router solana.PublicKey
}

// Bytes returns the stored representation of the record
func (c *Controller) Bytes() []byte {
	body, _ := tokenbridge.Marshal(*c)
	return append(ControllerDiscriminator[:], body...)
}

// ParseController parses a stored record
func ParseController(data []byte) (*Controller, error) {
	if len(data) < tokenbridge.DiscriminatorLen || !bytes.Equal(data[:tokenbridge.DiscriminatorLen], ControllerDiscriminator[:]) {
		return nil, fmt.Errorf("%w: bad discriminator", ErrInvalidRecord)
	}
	c, err := tokenbridge.Unmarshal[Controller](data[tokenbridge.DiscriminatorLen:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return &c, nil
}

// Store creates and loads the controller record of one program.
type Store struct {
	accounts backend.AccountStore
	deriver  *address.Deriver
}

// NewStore returns a store reading and writing accounts
func NewStore(accounts backend.AccountStore, deriver *address.Deriver) *Store {
	return &Store{
		accounts: accounts,
		deriver:  deriver,
	}
}

// Address returns the controller address, which is also the authority the
// program signs its own token operations with.
func (s *Store) Address() (solana.PublicKey, error) {
	addr, _, err := s.deriver.Controller()
	return addr, err
}

// Create writes the record. It fails if the record already exists.
func (s *Store) Create(router solana.PublicKey) (*Controller, error) {
	addr, bump, err := s.deriver.Controller()
	if err != nil {
		return nil, err
	}
	c := &Controller{
		Bump:   bump,
		Router: router,
	}
	err = s.accounts.CreateAccount(addr, s.deriver.ProgramID(), c.Bytes())
	if errors.Is(err, backend.ErrAccountExists) {
		return nil, fmt.Errorf("%w: controller %s", tokenbridge.ErrAlreadyInitialized, addr)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the record. The record must live at the derived controller
// address and be owned by the program.
func (s *Store) Load() (*Controller, error) {
	addr, bump, err := s.deriver.Controller()
	if err != nil {
		return nil, err
	}
	acct, err := s.accounts.GetAccount(addr)
	if errors.Is(err, backend.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: controller %s", tokenbridge.ErrNotInitialized, addr)
	}
	if err != nil {
		return nil, err
	}
	if acct.Owner != s.deriver.ProgramID() {
		return nil, fmt.Errorf("%w: owned by %s", tokenbridge.ErrInvalidController, acct.Owner)
	}
	c, err := ParseController(acct.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tokenbridge.ErrInvalidController, err)
	}
	if c.Bump != bump {
		return nil, fmt.Errorf("%w: bump %d, expected %d", tokenbridge.ErrInvalidController, c.Bump, bump)
	}
	return c, nil
}
