// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("non-nil error")

type countingResolver struct {
	calls int
	err   error
}

func (r *countingResolver) Resolve(solana.PublicKey) (Metadata, error) {
	r.calls++
	if r.err != nil {
		return Metadata{}, r.err
	}
	return Metadata{Name: "Wrapped", Symbol: "W"}, nil
}

func TestStatic(t *testing.T) {
	require := require.New(t)

	known := solana.NewWallet().PublicKey()
	s := NewStatic(map[solana.PublicKey]Metadata{
		known: {Name: "Lux", Symbol: "LUX"},
	})

	md, err := s.Resolve(known)
	require.NoError(err)
	require.Equal(Metadata{Name: "Lux", Symbol: "LUX"}, md)

	md, err = s.Resolve(solana.NewWallet().PublicKey())
	require.NoError(err)
	require.Equal(Placeholder, md)

	s.Set(known, Metadata{Name: "Other", Symbol: "OTH"})
	md, err = s.Resolve(known)
	require.NoError(err)
	require.Equal("OTH", md.Symbol)
}

func TestCached(t *testing.T) {
	require := require.New(t)

	inner := &countingResolver{}
	c, err := NewCached(inner, 1)
	require.NoError(err)

	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	for i := 0; i < 3; i++ {
		md, err := c.Resolve(a)
		require.NoError(err)
		require.Equal("W", md.Symbol)
	}
	require.Equal(1, inner.calls)

	// b evicts a
	_, err = c.Resolve(b)
	require.NoError(err)
	_, err = c.Resolve(a)
	require.NoError(err)
	require.Equal(3, inner.calls)
	require.Equal(1, c.Len())
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	require := require.New(t)

	inner := &countingResolver{err: errTest}
	c, err := NewCached(inner, 8)
	require.NoError(err)

	asset := solana.NewWallet().PublicKey()
	_, err = c.Resolve(asset)
	require.ErrorIs(err, errTest)
	_, err = c.Resolve(asset)
	require.ErrorIs(err, errTest)
	require.Equal(2, inner.calls)
	require.Zero(c.Len())
}

func TestNewCachedInvalidSize(t *testing.T) {
	_, err := NewCached(NewStatic(nil), 0)
	require.ErrorIs(t, err, errCacheSize)
}
