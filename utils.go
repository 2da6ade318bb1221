// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto/hash"
)

// NarrowAmount converts a wire amount to the execution width. Amounts that
// do not fit in 64 bits are rejected, never truncated.
func NarrowAmount(amount *uint256.Int) (uint64, error) {
	if amount == nil {
		return 0, fmt.Errorf("%w: missing amount", ErrInvalidPayload)
	}
	if !amount.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrTooManyTokens, amount.Dec())
	}
	return amount.Uint64(), nil
}

// ChainSelectorSeed encodes a chain selector the way it appears in
// derivation seeds: 8 bytes, little endian.
func ChainSelectorSeed(chainSelector uint64) []byte {
	var b [8]byte
	for i := range b {
		b[i] = byte(chainSelector >> (8 * i))
	}
	return b[:]
}

// AccountDiscriminator returns the 8 byte tag prefixed to a stored record.
func AccountDiscriminator(name string) [DiscriminatorLen]byte {
	return discriminator("account:" + name)
}

// InstructionDiscriminator returns the 8 byte tag prefixed to an instruction.
func InstructionDiscriminator(name string) [DiscriminatorLen]byte {
	return discriminator("global:" + name)
}

func discriminator(preimage string) [DiscriminatorLen]byte {
	var d [DiscriminatorLen]byte
	sum := hash.ComputeHash256Array([]byte(preimage))
	copy(d[:], sum[:DiscriminatorLen])
	return d
}
