// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth implements the checks that must all pass before an inbound
// message is interpreted.
package auth

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/math/set"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/state"
)

// CallContext describes who is presenting an inbound message.
type CallContext struct {
	// Signers are the accounts that signed the call
	Signers set.Set[solana.PublicKey]
	// Authority is the account presented as the caller
	Authority solana.PublicKey
	// OfframpProgram is the program delivering the message
	OfframpProgram solana.PublicKey
	// AllowedOfframp is the router's allow-list record supplied by the caller
	AllowedOfframp solana.PublicKey
}

// Request is everything the chain inspects.
type Request struct {
	Call       *CallContext
	Message    *tokenbridge.InboundMessage
	Controller *state.Controller
	Accounts   backend.AccountStore
}

// Check is one link of the chain.
type Check struct {
	Name   string
	Verify func(programID solana.PublicKey, r *Request) error
}

// DefaultChecks returns the chain in the order it must run: caller
// identity, route allow-listing, then size bounds.
func DefaultChecks() []Check {
	return []Check{
		{
			Name: "caller",
			Verify: func(programID solana.PublicKey, r *Request) error {
				return VerifyCaller(programID, r.Call)
			},
		},
		{
			Name: "allowed_offramp",
			Verify: func(_ solana.PublicKey, r *Request) error {
				return VerifyAllowedOfframp(r.Controller, r.Accounts, r.Message.SourceChainSelector, r.Call)
			},
		},
		{
			Name: "size",
			Verify: func(_ solana.PublicKey, r *Request) error {
				return VerifySize(r.Message)
			},
		},
	}
}

// Chain runs checks in order and stops at the first failure.
type Chain struct {
	programID solana.PublicKey
	checks    []Check
}

// NewChain returns the default chain for programID
func NewChain(programID solana.PublicKey) *Chain {
	return &Chain{
		programID: programID,
		checks:    DefaultChecks(),
	}
}

// Verify returns nil only if every check passes
func (c *Chain) Verify(r *Request) error {
	if r == nil || r.Call == nil || r.Message == nil || r.Controller == nil || r.Accounts == nil {
		return fmt.Errorf("%w: incomplete request", tokenbridge.ErrInvalidCaller)
	}
	for _, check := range c.checks {
		if err := check.Verify(c.programID, r); err != nil {
			return fmt.Errorf("%s check failed: %w", check.Name, err)
		}
	}
	return nil
}

// VerifyCaller requires the caller to be the execution authority the
// presenting offramp derives for this program, and to have signed.
func VerifyCaller(programID solana.PublicKey, call *CallContext) error {
	expected, _, err := address.ExternalExecutionConfig(call.OfframpProgram, programID)
	if err != nil {
		return fmt.Errorf("%w: %w", tokenbridge.ErrInvalidCaller, err)
	}
	if call.Authority != expected {
		return fmt.Errorf("%w: authority %s is not %s", tokenbridge.ErrInvalidCaller, call.Authority, expected)
	}
	if !call.Signers.Contains(call.Authority) {
		return fmt.Errorf("%w: authority %s did not sign", tokenbridge.ErrInvalidCaller, call.Authority)
	}
	return nil
}

// VerifyAllowedOfframp requires the router recorded in the controller to
// own the allow-list record for (chainSelector, offramp). A missing record
// means the route is not permitted.
func VerifyAllowedOfframp(controller *state.Controller, accounts backend.AccountStore, chainSelector uint64, call *CallContext) error {
	expected, _, err := address.AllowedOfframp(controller.Router, chainSelector, call.OfframpProgram)
	if err != nil {
		return fmt.Errorf("%w: %w", tokenbridge.ErrOfframpNotAllowed, err)
	}
	if call.AllowedOfframp != expected {
		return fmt.Errorf("%w: record %s is not %s", tokenbridge.ErrOfframpNotAllowed, call.AllowedOfframp, expected)
	}
	acct, err := accounts.GetAccount(expected)
	if errors.Is(err, backend.ErrAccountNotFound) {
		return fmt.Errorf("%w: no record for chain %d offramp %s", tokenbridge.ErrOfframpNotAllowed, chainSelector, call.OfframpProgram)
	}
	if err != nil {
		return err
	}
	if acct.Owner != controller.Router {
		return fmt.Errorf("%w: record owned by %s", tokenbridge.ErrOfframpNotAllowed, acct.Owner)
	}
	return nil
}

// VerifySize bounds the message before any decoding.
func VerifySize(msg *tokenbridge.InboundMessage) error {
	if len(msg.Data) > tokenbridge.MaxMessageDataSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", tokenbridge.ErrMessageDataTooLarge, len(msg.Data), tokenbridge.MaxMessageDataSize)
	}
	if len(msg.Sender) > tokenbridge.MaxSenderAddressSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", tokenbridge.ErrSenderAddressTooLarge, len(msg.Sender), tokenbridge.MaxSenderAddressSize)
	}
	return nil
}
