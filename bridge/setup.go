// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/log"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/state"
)

// InitializeController creates the controller record naming router as the
// owner of offramp allow-list records.
func (c *Controller) InitializeController(ctx context.Context, router solana.PublicKey) (*state.Controller, error) {
	var record *state.Controller
	err := c.ledger.Transact(ctx, func(h backend.Host) error {
		var err error
		record, err = state.NewStore(h, c.deriver).Create(router)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("initialized controller",
		log.Stringer("programID", c.programID),
		log.Stringer("router", router),
	)
	return record, nil
}

// InitializeWrapper creates the wrapped mint for route. The mint has
// WrapperDecimals decimals and the controller as its only authority.
func (c *Controller) InitializeWrapper(ctx context.Context, route address.Route) (solana.PublicKey, error) {
	mint, _, err := c.deriver.WrappedMint(route)
	if err != nil {
		return solana.PublicKey{}, err
	}

	err = c.ledger.Transact(ctx, func(h backend.Host) error {
		store := state.NewStore(h, c.deriver)
		if _, err := store.Load(); err != nil {
			return err
		}
		authority, err := store.Address()
		if err != nil {
			return err
		}
		err = h.CreateMint(mint, tokenbridge.WrapperDecimals, authority, authority)
		if errors.Is(err, backend.ErrAccountExists) {
			return fmt.Errorf("%w: wrapper %s", tokenbridge.ErrAlreadyInitialized, mint)
		}
		return err
	})
	if err != nil {
		return solana.PublicKey{}, err
	}

	c.log.Info("initialized wrapper",
		log.Stringer("mint", mint),
		log.Uint64("chainSelector", route.ChainSelector),
	)
	return mint, nil
}
