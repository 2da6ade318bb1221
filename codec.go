// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package tokenbridge

import (
	"errors"
	"fmt"

	"github.com/near/borsh-go"
)

var errTrailingBytes = errors.New("trailing bytes")

// Marshal serializes v with the host ledger's Borsh layout. v must be passed
// by value: pointers are encoded as optional values.
func Marshal(v interface{}) ([]byte, error) {
	return borsh.Serialize(v)
}

// Unmarshal deserializes b into a T. Input that does not re-serialize to
// exactly b, such as input with trailing bytes, is rejected.
func Unmarshal[T any](b []byte) (T, error) {
	var v T
	if err := borsh.Deserialize(&v, b); err != nil {
		return v, err
	}
	canonical, err := borsh.Serialize(v)
	if err != nil {
		return v, err
	}
	if len(canonical) != len(b) {
		return v, fmt.Errorf("%w: %d of %d bytes consumed", errTrailingBytes, len(canonical), len(b))
	}
	return v, nil
}
