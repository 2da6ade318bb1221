// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/ids"
)

var (
	ErrInvalidMessage     = errors.New("invalid message")
	ErrInvalidInstruction = errors.New("invalid instruction")

	// CcipReceiveDiscriminator prefixes the instruction the relay invokes to
	// deliver an inbound message.
	CcipReceiveDiscriminator = InstructionDiscriminator("ccip_receive")
)

// TokenAmount is a token transfer attached to a cross-chain message.
type TokenAmount struct {
	// Token is the mint address on this ledger
	Token solana.PublicKey
	// Amount in the mint's base units
	Amount uint64
}

// InboundMessage is a cross-chain message delivered to this ledger by the
// relay. It is consumed once and never persisted.
type InboundMessage struct {
	// MessageID identifies the message for tracing
	MessageID ids.ID
	// SourceChainSelector identifies the origin chain
	SourceChainSelector uint64
	// Sender is the bridge address on the origin chain
	Sender []byte
	// Data is the selector byte followed by the action payload
	Data []byte
	// TokenAmounts lists tokens transferred alongside the message
	TokenAmounts []TokenAmount
}

// Bytes returns the byte representation of the message
func (m *InboundMessage) Bytes() []byte {
	b, _ := Marshal(*m)
	return b
}

// ParseInboundMessage parses a message from bytes
func ParseInboundMessage(b []byte) (*InboundMessage, error) {
	msg, err := Unmarshal[InboundMessage](b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return &msg, nil
}

// CcipReceiveInstruction returns the instruction data the relay submits to
// deliver m.
func CcipReceiveInstruction(m *InboundMessage) []byte {
	return append(CcipReceiveDiscriminator[:], m.Bytes()...)
}

// ParseCcipReceiveInstruction strips and checks the instruction
// discriminator, then parses the message.
func ParseCcipReceiveInstruction(data []byte) (*InboundMessage, error) {
	if len(data) < DiscriminatorLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidInstruction, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLen], CcipReceiveDiscriminator[:]) {
		return nil, fmt.Errorf("%w: unexpected discriminator %x", ErrInvalidInstruction, data[:DiscriminatorLen])
	}
	return ParseInboundMessage(data[DiscriminatorLen:])
}

// OutboundMessage is the request handed to the relay for delivery to the
// counterpart chain.
type OutboundMessage struct {
	// Receiver is the bridge address on the destination chain
	Receiver []byte
	// Data is the selector byte followed by the action payload
	Data []byte
	// TokenAmounts lists tokens sent alongside the message
	TokenAmounts []TokenAmount
	// FeeToken is the mint fees are paid in; the zero key means native
	FeeToken solana.PublicKey
	// ExtraArgs are relay-specific execution arguments
	ExtraArgs []byte
}

// Bytes returns the byte representation of the message
func (m *OutboundMessage) Bytes() []byte {
	b, _ := Marshal(*m)
	return b
}

// ParseOutboundMessage parses a message from bytes
func ParseOutboundMessage(b []byte) (*OutboundMessage, error) {
	msg, err := Unmarshal[OutboundMessage](b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return &msg, nil
}
