// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

import (
	"errors"
	"fmt"
)

// Kind groups bridge errors into the classes a relay can act on.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindSize
	KindDecode
	KindAddressMismatch
	KindAmountOverflow
	KindUnknownSelector
	KindReplay
	KindSetup
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindSize:
		return "size"
	case KindDecode:
		return "decode"
	case KindAddressMismatch:
		return "address_mismatch"
	case KindAmountOverflow:
		return "amount_overflow"
	case KindUnknownSelector:
		return "unknown_selector"
	case KindReplay:
		return "replay"
	case KindSetup:
		return "setup"
	default:
		return "unknown"
	}
}

// Error represents a bridge error
type Error struct {
	Code    int32
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("bridge error %d: %s", e.Code, e.Message)
}

// Custom error codes start where the host runtime reserves program errors.
var (
	ErrInvalidCaller          = &Error{Code: 6000, Kind: KindAuthorization, Message: "invalid caller"}
	ErrOfframpNotAllowed      = &Error{Code: 6001, Kind: KindAuthorization, Message: "offramp not allowed for source chain"}
	ErrInvalidController      = &Error{Code: 6002, Kind: KindAuthorization, Message: "invalid controller account"}
	ErrMessageDataTooLarge    = &Error{Code: 6003, Kind: KindSize, Message: "message data too large"}
	ErrSenderAddressTooLarge  = &Error{Code: 6004, Kind: KindSize, Message: "sender address too large"}
	ErrInvalidPayload         = &Error{Code: 6005, Kind: KindDecode, Message: "invalid payload"}
	ErrInvalidWrapperMint     = &Error{Code: 6006, Kind: KindAddressMismatch, Message: "invalid wrapper mint"}
	ErrInvalidToAccount       = &Error{Code: 6007, Kind: KindAddressMismatch, Message: "invalid to account"}
	ErrInvalidUnderlyingToken = &Error{Code: 6008, Kind: KindAddressMismatch, Message: "invalid underlying token"}
	ErrInvalidVault           = &Error{Code: 6009, Kind: KindAddressMismatch, Message: "invalid vault"}
	ErrTooManyTokens          = &Error{Code: 6010, Kind: KindAmountOverflow, Message: "too many tokens"}
	ErrInvalidMessageSelector = &Error{Code: 6011, Kind: KindUnknownSelector, Message: "invalid message selector"}
	ErrMessageAlreadyExecuted = &Error{Code: 6012, Kind: KindReplay, Message: "message already executed"}
	ErrAlreadyInitialized     = &Error{Code: 6013, Kind: KindSetup, Message: "account already initialized"}
	ErrNotInitialized         = &Error{Code: 6014, Kind: KindSetup, Message: "account not initialized"}
)

// KindOf returns the class of the first bridge error in err's chain.
func KindOf(err error) Kind {
	var bridgeErr *Error
	if errors.As(err, &bridgeErr) {
		return bridgeErr.Kind
	}
	return KindUnknown
}
