// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

// Constants
const (
	// KiB is 1024 bytes
	KiB = 1024

	// MaxMessageDataSize bounds the data carried by an inbound message.
	MaxMessageDataSize = 1 * KiB

	// MaxSenderAddressSize bounds the source-chain sender address.
	MaxSenderAddressSize = 64

	// WrapperDecimals is the precision of every wrapped-asset mint.
	WrapperDecimals uint8 = 6

	// DiscriminatorLen is the length of an account or instruction discriminator.
	DiscriminatorLen = 8
)

// Derivation seeds. Each address family uses its own seed so that two
// families never collide for the same remaining inputs.
var (
	ControllerSeed              = []byte("controller")
	WrapperSeed                 = []byte("wrapper")
	VaultSeed                   = []byte("vault")
	ExternalExecutionConfigSeed = []byte("external_execution_config")
	AllowedOfframpSeed          = []byte("allowed_offramp")
)
