// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/log"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/auth"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/payload"
	"github.com/luxfi/tokenbridge/state"
)

// ReceiveAccounts are the accounts supplied alongside an inbound message.
type ReceiveAccounts struct {
	auth.CallContext

	// Mint is the wrapped mint for a wrap, or the underlying mint for an
	// unwrap
	Mint solana.PublicKey
	// Destination is the token account credited by the action
	Destination solana.PublicKey
	// Vault is the vault released by an unwrap. The zero key selects the
	// derived vault.
	Vault solana.PublicKey
}

// Execute parses a ccip_receive instruction and executes its message.
func (c *Controller) Execute(ctx context.Context, accounts *ReceiveAccounts, instruction []byte) (payload.Action, error) {
	msg, err := tokenbridge.ParseCcipReceiveInstruction(instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tokenbridge.ErrInvalidPayload, err)
	}
	return c.CcipReceive(ctx, accounts, msg)
}

// CcipReceive authorizes msg and executes the action it carries. Either the
// action's single token movement happens or nothing does.
func (c *Controller) CcipReceive(ctx context.Context, accounts *ReceiveAccounts, msg *tokenbridge.InboundMessage) (payload.Action, error) {
	if accounts == nil || msg == nil {
		return nil, fmt.Errorf("%w: missing accounts or message", tokenbridge.ErrInvalidCaller)
	}
	start := time.Now()

	var action payload.Action
	err := c.ledger.Transact(ctx, func(h backend.Host) error {
		var err error
		action, err = c.receive(h, accounts, msg)
		return err
	})
	if err != nil {
		c.metrics.Rejected(tokenbridge.KindOf(err).String())
		c.log.Debug("rejected inbound message",
			log.Stringer("messageID", msg.MessageID),
			log.Uint64("sourceChainSelector", msg.SourceChainSelector),
			log.Err(err),
		)
		return nil, err
	}

	selector := action.Selector()
	c.metrics.Received(msg.SourceChainSelector, selector.String(), time.Since(start))
	c.log.Info("executed inbound message",
		log.Stringer("messageID", msg.MessageID),
		log.Uint64("sourceChainSelector", msg.SourceChainSelector),
		log.Stringer("action", selector),
		log.Stringer("destination", accounts.Destination),
	)
	return action, nil
}

func (c *Controller) receive(h backend.Host, accounts *ReceiveAccounts, msg *tokenbridge.InboundMessage) (payload.Action, error) {
	store := state.NewStore(h, c.deriver)
	record, err := store.Load()
	if err != nil {
		return nil, err
	}

	err = c.auth.Verify(&auth.Request{
		Call:       &accounts.CallContext,
		Message:    msg,
		Controller: record,
		Accounts:   h,
	})
	if err != nil {
		return nil, err
	}

	if c.replay != nil {
		if err := c.replay.Mark(h.Database(), msg.MessageID); err != nil {
			return nil, err
		}
	}

	action, err := payload.Parse(msg.Data)
	if err != nil {
		return nil, err
	}

	authority, err := store.Address()
	if err != nil {
		return nil, err
	}

	switch p := action.(type) {
	case *payload.WrapPayload:
		err = c.mintWrapped(h, authority, accounts, msg, p)
	case *payload.UnwrapPayload:
		err = c.releaseUnderlying(h, authority, accounts, msg, p)
	default:
		err = fmt.Errorf("%w: %T", tokenbridge.ErrInvalidMessageSelector, action)
	}
	if err != nil {
		return nil, err
	}
	return action, nil
}

// mintWrapped credits the destination with newly minted wrapped tokens for
// an asset locked on the source chain.
func (c *Controller) mintWrapped(
	h backend.Host,
	authority solana.PublicKey,
	accounts *ReceiveAccounts,
	msg *tokenbridge.InboundMessage,
	p *payload.WrapPayload,
) error {
	mint, _, err := c.deriver.WrappedMint(address.Route{
		ChainSelector:   msg.SourceChainSelector,
		RemoteBridge:    msg.Sender,
		UnderlyingAsset: p.UnderlyingAsset,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", tokenbridge.ErrInvalidWrapperMint, err)
	}
	if mint != accounts.Mint {
		return fmt.Errorf("%w: expected %s, got %s", tokenbridge.ErrInvalidWrapperMint, mint, accounts.Mint)
	}
	if !bytes.Equal(p.Recipient, accounts.Destination[:]) {
		return fmt.Errorf("%w: %s", tokenbridge.ErrInvalidToAccount, accounts.Destination)
	}
	amount, err := tokenbridge.NarrowAmount(p.Amount)
	if err != nil {
		return err
	}
	return h.MintTo(mint, accounts.Destination, authority, amount)
}

// releaseUnderlying pays the destination out of the vault holding tokens
// previously wrapped toward the source chain.
func (c *Controller) releaseUnderlying(
	h backend.Host,
	authority solana.PublicKey,
	accounts *ReceiveAccounts,
	msg *tokenbridge.InboundMessage,
	p *payload.UnwrapPayload,
) error {
	if !bytes.Equal(p.UnderlyingAsset, accounts.Mint[:]) {
		return fmt.Errorf("%w: %s", tokenbridge.ErrInvalidUnderlyingToken, accounts.Mint)
	}
	if !bytes.Equal(p.Recipient, accounts.Destination[:]) {
		return fmt.Errorf("%w: %s", tokenbridge.ErrInvalidToAccount, accounts.Destination)
	}

	vault, _, err := c.deriver.Vault(address.Route{
		ChainSelector:   msg.SourceChainSelector,
		RemoteBridge:    msg.Sender,
		UnderlyingAsset: p.UnderlyingAsset,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", tokenbridge.ErrInvalidVault, err)
	}
	if !accounts.Vault.IsZero() && accounts.Vault != vault {
		return fmt.Errorf("%w: expected %s, got %s", tokenbridge.ErrInvalidVault, vault, accounts.Vault)
	}

	amount, err := tokenbridge.NarrowAmount(p.Amount)
	if err != nil {
		return err
	}
	mint, err := h.GetMint(accounts.Mint)
	if err != nil {
		return err
	}
	return h.TransferChecked(vault, accounts.Destination, authority, accounts.Mint, amount, mint.Decimals)
}
