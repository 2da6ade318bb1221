// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/math/set"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/tokenbridge"
	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/backend"
	"github.com/luxfi/tokenbridge/state"
)

const testChainSelector = 10344971235874465080

type testEnv struct {
	programID  solana.PublicKey
	router     solana.PublicKey
	offramp    solana.PublicKey
	ledger     *backend.MemoryLedger
	controller *state.Controller
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		programID: solana.NewWallet().PublicKey(),
		router:    solana.NewWallet().PublicKey(),
		offramp:   solana.NewWallet().PublicKey(),
		ledger:    backend.NewMemoryLedger(memdb.New()),
	}
	env.controller = &state.Controller{Router: env.router}

	allowed, _, err := address.AllowedOfframp(env.router, testChainSelector, env.offramp)
	require.NoError(t, err)
	err = env.ledger.Transact(context.Background(), func(h backend.Host) error {
		return h.CreateAccount(allowed, env.router, nil)
	})
	require.NoError(t, err)
	return env
}

func (env *testEnv) validCall(t *testing.T) *CallContext {
	authority, _, err := address.ExternalExecutionConfig(env.offramp, env.programID)
	require.NoError(t, err)
	allowed, _, err := address.AllowedOfframp(env.router, testChainSelector, env.offramp)
	require.NoError(t, err)
	return &CallContext{
		Signers:        set.Of(authority),
		Authority:      authority,
		OfframpProgram: env.offramp,
		AllowedOfframp: allowed,
	}
}

func (env *testEnv) verify(call *CallContext, msg *tokenbridge.InboundMessage) error {
	return env.ledger.Transact(context.Background(), func(h backend.Host) error {
		return NewChain(env.programID).Verify(&Request{
			Call:       call,
			Message:    msg,
			Controller: env.controller,
			Accounts:   h,
		})
	})
}

func validMessage() *tokenbridge.InboundMessage {
	return &tokenbridge.InboundMessage{
		SourceChainSelector: testChainSelector,
		Sender:              bytes.Repeat([]byte{0x01}, 20),
		Data:                []byte{0x00},
	}
}

func TestChainVerify(t *testing.T) {
	env := newTestEnv(t)
	otherOfframp := solana.NewWallet().PublicKey()

	tests := []struct {
		name        string
		mutateCall  func(*CallContext)
		mutateMsg   func(*tokenbridge.InboundMessage)
		expectedErr error
	}{
		{
			name: "valid",
		},
		{
			name: "authority not signer",
			mutateCall: func(c *CallContext) {
				c.Signers = set.Set[solana.PublicKey]{}
			},
			expectedErr: tokenbridge.ErrInvalidCaller,
		},
		{
			name: "signer is not the derived authority",
			mutateCall: func(c *CallContext) {
				impostor := solana.NewWallet().PublicKey()
				c.Authority = impostor
				c.Signers = set.Of(impostor)
			},
			expectedErr: tokenbridge.ErrInvalidCaller,
		},
		{
			name: "authority derived for a different offramp",
			mutateCall: func(c *CallContext) {
				c.OfframpProgram = otherOfframp
			},
			expectedErr: tokenbridge.ErrInvalidCaller,
		},
		{
			name: "wrong allow-list record",
			mutateCall: func(c *CallContext) {
				c.AllowedOfframp = solana.NewWallet().PublicKey()
			},
			expectedErr: tokenbridge.ErrOfframpNotAllowed,
		},
		{
			name: "source chain not allow-listed",
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.SourceChainSelector = 1
			},
			expectedErr: tokenbridge.ErrOfframpNotAllowed,
		},
		{
			name: "data at limit",
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.Data = make([]byte, tokenbridge.MaxMessageDataSize)
			},
		},
		{
			name: "data too large",
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.Data = make([]byte, tokenbridge.MaxMessageDataSize+1)
			},
			expectedErr: tokenbridge.ErrMessageDataTooLarge,
		},
		{
			name: "sender at limit",
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.Sender = make([]byte, tokenbridge.MaxSenderAddressSize)
			},
		},
		{
			name: "sender too large",
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.Sender = make([]byte, tokenbridge.MaxSenderAddressSize+1)
			},
			expectedErr: tokenbridge.ErrSenderAddressTooLarge,
		},
		{
			name: "caller checked before size",
			mutateCall: func(c *CallContext) {
				c.Signers = set.Set[solana.PublicKey]{}
			},
			mutateMsg: func(m *tokenbridge.InboundMessage) {
				m.Data = make([]byte, tokenbridge.MaxMessageDataSize+1)
			},
			expectedErr: tokenbridge.ErrInvalidCaller,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			call := env.validCall(t)
			if test.mutateCall != nil {
				test.mutateCall(call)
			}
			msg := validMessage()
			if test.mutateMsg != nil {
				test.mutateMsg(msg)
			}
			err := env.verify(call, msg)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestAllowListOwnedByOtherProgram(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	// Same route, but the recorded router is not the record's owner.
	env.controller = &state.Controller{Router: solana.NewWallet().PublicKey()}
	call := env.validCall(t)
	call.AllowedOfframp, _, _ = address.AllowedOfframp(env.controller.Router, testChainSelector, env.offramp)
	err := env.ledger.Transact(context.Background(), func(h backend.Host) error {
		return h.CreateAccount(call.AllowedOfframp, solana.NewWallet().PublicKey(), nil)
	})
	require.NoError(err)

	err = env.verify(call, validMessage())
	require.ErrorIs(err, tokenbridge.ErrOfframpNotAllowed)
	require.Equal(tokenbridge.KindAuthorization, tokenbridge.KindOf(err))
}

func TestIncompleteRequest(t *testing.T) {
	err := NewChain(solana.NewWallet().PublicKey()).Verify(&Request{})
	require.ErrorIs(t, err, tokenbridge.ErrInvalidCaller)
}
