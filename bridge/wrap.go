// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/luxfi/log"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/payload"
	"github.com/luxfi/tokenbridge/state"
)

// WrapRequest locks tokens on this ledger so they can be minted as wrapped
// tokens on the destination chain.
type WrapRequest struct {
	// DestinationChain is the selector of the destination chain
	DestinationChain uint64
	// RemoteBridge is the bridge address on the destination chain
	RemoteBridge []byte
	// Recipient is the account credited on the destination chain
	Recipient []byte
	Amount    uint64

	// Payer signs for Source
	Payer solana.PublicKey
	// Source is the token account debited
	Source solana.PublicKey
	// Mint is the asset being wrapped
	Mint solana.PublicKey

	ExtraArgs []byte
	FeeToken  solana.PublicKey
}

// WrapResult is what a successful wrap handed to the relay.
type WrapResult struct {
	// Vault now holds the locked tokens
	Vault   solana.PublicKey
	Data    []byte
	Message *tokenbridge.OutboundMessage
}

// Wrap locks req.Amount in the route's vault and hands a wrap message to
// the relay. The vault is created on first use.
func (c *Controller) Wrap(ctx context.Context, req *WrapRequest) (*WrapResult, error) {
	if len(req.Recipient) == 0 {
		return nil, fmt.Errorf("%w: empty recipient", tokenbridge.ErrInvalidToAccount)
	}

	md, err := c.metadata.Resolve(req.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve metadata for %s: %w", req.Mint, err)
	}

	vault, _, err := c.deriver.Vault(address.Route{
		ChainSelector:   req.DestinationChain,
		RemoteBridge:    req.RemoteBridge,
		UnderlyingAsset: req.Mint[:],
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tokenbridge.ErrInvalidVault, err)
	}

	data, err := payload.Message(&payload.WrapPayload{
		Name:            md.Name,
		Symbol:          md.Symbol,
		UnderlyingAsset: req.Mint[:],
		Recipient:       req.Recipient,
		Amount:          uint256.NewInt(req.Amount),
	})
	if err != nil {
		return nil, err
	}
	msg := &tokenbridge.OutboundMessage{
		Receiver:  req.RemoteBridge,
		Data:      data,
		ExtraArgs: req.ExtraArgs,
		FeeToken:  req.FeeToken,
	}

	var authority solana.PublicKey
	err = c.ledger.Transact(ctx, func(h backend.Host) error {
		store := state.NewStore(h, c.deriver)
		if _, err := store.Load(); err != nil {
			return err
		}
		addr, err := store.Address()
		if err != nil {
			return err
		}
		authority = addr
		if err := c.ensureVault(h, vault, req.Mint, authority); err != nil {
			return err
		}
		return h.Lock(req.Source, vault, req.Payer, req.Amount)
	})
	if err != nil {
		return nil, err
	}

	// The message leaves only once the lock is committed. A refused message
	// is refunded from the vault.
	if err := c.relay.AddMessage(msg); err != nil {
		err = fmt.Errorf("failed to relay wrap message: %w", err)
		refundErr := c.ledger.Transact(context.WithoutCancel(ctx), func(h backend.Host) error {
			return h.Lock(vault, req.Source, authority, req.Amount)
		})
		if refundErr != nil {
			c.log.Error("failed to refund unrelayed wrap",
				log.Stringer("vault", vault),
				log.Stringer("source", req.Source),
				log.Uint64("amount", req.Amount),
				log.Err(refundErr),
			)
			return nil, errors.Join(err, refundErr)
		}
		return nil, err
	}

	c.metrics.Wrapped(req.DestinationChain)
	c.log.Info("wrapped tokens",
		log.Uint64("destinationChainSelector", req.DestinationChain),
		log.Stringer("mint", req.Mint),
		log.Stringer("vault", vault),
		log.Uint64("amount", req.Amount),
	)
	return &WrapResult{
		Vault:   vault,
		Data:    data,
		Message: msg,
	}, nil
}

// ensureVault creates the vault if it does not exist and otherwise checks
// it holds mint on behalf of authority.
func (*Controller) ensureVault(h backend.Host, vault, mint, authority solana.PublicKey) error {
	acct, err := h.GetTokenAccount(vault)
	if errors.Is(err, backend.ErrAccountNotFound) {
		return h.CreateTokenAccount(vault, mint, authority)
	}
	if err != nil {
		return err
	}
	if acct.Mint != mint || acct.Owner != authority {
		return fmt.Errorf("%w: %s", tokenbridge.ErrInvalidVault, vault)
	}
	return nil
}
