// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/accounts/abi"

	"github.com/luxfi/tokenbridge"
)

// AmountBits is the wire width of payload amounts.
const AmountBits = 128

var (
	wrapArgs = abi.Arguments{
		{Name: "name", Type: mustNewType("string")},
		{Name: "symbol", Type: mustNewType("string")},
		{Name: "underlyingToken", Type: mustNewType("bytes")},
		{Name: "to", Type: mustNewType("bytes")},
		{Name: "amount", Type: mustNewType("uint128")},
	}

	unwrapArgs = abi.Arguments{
		{Name: "underlyingToken", Type: mustNewType("bytes")},
		{Name: "to", Type: mustNewType("bytes")},
		{Name: "amount", Type: mustNewType("uint128")},
	}
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create ABI type %s: %v", t, err))
	}
	return typ
}

// Bytes returns the ABI encoding of the payload
func (p *WrapPayload) Bytes() ([]byte, error) {
	amount, err := wireAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	return wrapArgs.Pack(p.Name, p.Symbol, nonNil(p.UnderlyingAsset), nonNil(p.Recipient), amount)
}

// Bytes returns the ABI encoding of the payload
func (p *UnwrapPayload) Bytes() ([]byte, error) {
	amount, err := wireAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	return unwrapArgs.Pack(nonNil(p.UnderlyingAsset), nonNil(p.Recipient), amount)
}

// ParseWrapPayload decodes a wrap payload from its ABI encoding.
func ParseWrapPayload(b []byte) (*WrapPayload, error) {
	values, err := unpackCanonical(wrapArgs, b)
	if err != nil {
		return nil, err
	}
	name, ok1 := values[0].(string)
	symbol, ok2 := values[1].(string)
	asset, ok3 := values[2].([]byte)
	recipient, ok4 := values[3].([]byte)
	amount, ok5 := values[4].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, fmt.Errorf("%w: unexpected wrap field types", tokenbridge.ErrInvalidPayload)
	}
	amt, err := fromWire(amount)
	if err != nil {
		return nil, err
	}
	return &WrapPayload{
		Name:            name,
		Symbol:          symbol,
		UnderlyingAsset: bytes.Clone(asset),
		Recipient:       bytes.Clone(recipient),
		Amount:          amt,
	}, nil
}

// ParseUnwrapPayload decodes an unwrap payload from its ABI encoding.
func ParseUnwrapPayload(b []byte) (*UnwrapPayload, error) {
	values, err := unpackCanonical(unwrapArgs, b)
	if err != nil {
		return nil, err
	}
	asset, ok1 := values[0].([]byte)
	recipient, ok2 := values[1].([]byte)
	amount, ok3 := values[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: unexpected unwrap field types", tokenbridge.ErrInvalidPayload)
	}
	amt, err := fromWire(amount)
	if err != nil {
		return nil, err
	}
	return &UnwrapPayload{
		UnderlyingAsset: bytes.Clone(asset),
		Recipient:       bytes.Clone(recipient),
		Amount:          amt,
	}, nil
}

// unpackCanonical decodes b and requires that re-encoding the result
// reproduces b exactly, so truncated, padded or trailing input never yields
// a payload.
func unpackCanonical(args abi.Arguments, b []byte) ([]interface{}, error) {
	values, err := args.Unpack(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tokenbridge.ErrInvalidPayload, err)
	}
	if len(values) != len(args) {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", tokenbridge.ErrInvalidPayload, len(args), len(values))
	}
	canonical, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tokenbridge.ErrInvalidPayload, err)
	}
	if !bytes.Equal(canonical, b) {
		return nil, fmt.Errorf("%w: %d bytes is not a canonical encoding", tokenbridge.ErrInvalidPayload, len(b))
	}
	return values, nil
}

func wireAmount(amount *uint256.Int) (*big.Int, error) {
	if amount == nil {
		return nil, fmt.Errorf("%w: missing amount", tokenbridge.ErrInvalidPayload)
	}
	if amount.BitLen() > AmountBits {
		return nil, fmt.Errorf("%w: amount exceeds %d bits", tokenbridge.ErrInvalidPayload, AmountBits)
	}
	return amount.ToBig(), nil
}

func fromWire(amount *big.Int) (*uint256.Int, error) {
	if amount.Sign() < 0 || amount.BitLen() > AmountBits {
		return nil, fmt.Errorf("%w: amount out of range", tokenbridge.ErrInvalidPayload)
	}
	amt, _ := uint256.FromBig(amount)
	return amt, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
