// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package payload encodes and decodes the action payloads carried in the
// data of a cross-chain bridge message.
//
// A message is one selector byte followed by an ABI encoded tuple whose
// shape depends on the selector. The field order and widths match the
// counterpart chain's encoder exactly.
package payload

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/tokenbridge"
)

// Selector identifies the action a message carries.
type Selector uint8

const (
	// SelectorWrap mints the wrapped representation of a remote asset
	SelectorWrap Selector = 0
	// SelectorUnwrap releases a locked underlying asset from its vault
	SelectorUnwrap Selector = 1
)

func (s Selector) String() string {
	switch s {
	case SelectorWrap:
		return "wrap"
	case SelectorUnwrap:
		return "unwrap"
	default:
		return "unknown"
	}
}

// Action is a decoded message payload. The set of actions is closed: it is
// implemented only by *WrapPayload and *UnwrapPayload.
type Action interface {
	// Selector returns the selector byte that precedes the payload
	Selector() Selector

	// Bytes returns the ABI encoding of the payload without the selector
	Bytes() ([]byte, error)

	isAction()
}

// WrapPayload asks the receiving chain to mint the wrapped representation of
// an asset locked on the sending chain.
type WrapPayload struct {
	Name            string
	Symbol          string
	UnderlyingAsset []byte
	Recipient       []byte
	Amount          *uint256.Int
}

// UnwrapPayload asks the receiving chain to release an asset it previously
// locked in a vault.
type UnwrapPayload struct {
	UnderlyingAsset []byte
	Recipient       []byte
	Amount          *uint256.Int
}

func (*WrapPayload) Selector() Selector   { return SelectorWrap }
func (*UnwrapPayload) Selector() Selector { return SelectorUnwrap }

func (*WrapPayload) isAction()   {}
func (*UnwrapPayload) isAction() {}

// Message prefixes the encoded action with its selector.
func Message(a Action) ([]byte, error) {
	body, err := a.Bytes()
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(a.Selector())}, body...), nil
}

// Parse splits message data into its selector and payload and decodes the
// payload. Unknown selectors are an error, never ignored.
func Parse(data []byte) (Action, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty message data", tokenbridge.ErrInvalidPayload)
	}
	switch selector := Selector(data[0]); selector {
	case SelectorWrap:
		return ParseWrapPayload(data[1:])
	case SelectorUnwrap:
		return ParseUnwrapPayload(data[1:])
	default:
		return nil, fmt.Errorf("%w: %d", tokenbridge.ErrInvalidMessageSelector, uint8(selector))
	}
}
