// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func testInboundMessage() *InboundMessage {
	return &InboundMessage{
		MessageID:           ids.GenerateTestID(),
		SourceChainSelector: 16015286601757825753,
		Sender:              []byte{0x01, 0x02, 0x03},
		Data:                []byte{0x00, 0xAA},
		TokenAmounts: []TokenAmount{
			{
				Token:  solana.NewWallet().PublicKey(),
				Amount: 7,
			},
		},
	}
}

func TestInboundMessage(t *testing.T) {
	require := require.New(t)

	msg := testInboundMessage()
	b := msg.Bytes()

	// id, selector, sender, data, one token amount
	require.Len(b, 32+8+(4+3)+(4+2)+(4+32+8))
	require.Equal(msg.MessageID[:], b[:32])
	require.Equal(msg.SourceChainSelector, binary.LittleEndian.Uint64(b[32:40]))
	require.Equal(uint32(3), binary.LittleEndian.Uint32(b[40:44]))

	parsed, err := ParseInboundMessage(b)
	require.NoError(err)
	require.Equal(msg, parsed)
}

func TestParseInboundMessageMalformed(t *testing.T) {
	b := testInboundMessage().Bytes()

	tests := []struct {
		name string
		b    []byte
	}{
		{
			name: "empty",
			b:    nil,
		},
		{
			name: "truncated",
			b:    b[:len(b)-1],
		},
		{
			name: "trailing",
			b:    append(append([]byte{}, b...), 0x00),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseInboundMessage(test.b)
			require.ErrorIs(t, err, ErrInvalidMessage)
		})
	}
}

func TestCcipReceiveInstruction(t *testing.T) {
	require := require.New(t)

	require.Equal(
		[DiscriminatorLen]byte{0x0b, 0xf4, 0x09, 0xf9, 0x2c, 0x53, 0x2f, 0xf5},
		CcipReceiveDiscriminator,
	)

	msg := testInboundMessage()
	instruction := CcipReceiveInstruction(msg)
	require.Equal(CcipReceiveDiscriminator[:], instruction[:DiscriminatorLen])

	parsed, err := ParseCcipReceiveInstruction(instruction)
	require.NoError(err)
	require.Equal(msg, parsed)

	_, err = ParseCcipReceiveInstruction(instruction[:DiscriminatorLen-1])
	require.ErrorIs(err, ErrInvalidInstruction)

	instruction[0] ^= 0xFF
	_, err = ParseCcipReceiveInstruction(instruction)
	require.ErrorIs(err, ErrInvalidInstruction)
}

func TestOutboundMessage(t *testing.T) {
	require := require.New(t)

	msg := &OutboundMessage{
		Receiver:     []byte{0xB1, 0xB1},
		Data:         []byte{0x00, 0x01},
		TokenAmounts: []TokenAmount{{Token: solana.NewWallet().PublicKey(), Amount: 1}},
		FeeToken:     solana.NewWallet().PublicKey(),
		ExtraArgs:    []byte{0x97, 0xa6, 0x57, 0xc9},
	}
	parsed, err := ParseOutboundMessage(msg.Bytes())
	require.NoError(err)
	require.Equal(msg, parsed)

	_, err = ParseOutboundMessage(append(msg.Bytes(), 0x01))
	require.ErrorIs(err, ErrInvalidMessage)
}
