// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package metadata resolves the display name and symbol carried in outbound
// wrap messages.
package metadata

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

const (
	PlaceholderName   = "NAME"
	PlaceholderSymbol = "SYMBOL"
)

// Placeholder is reported for assets with no known metadata
var Placeholder = Metadata{
	Name:   PlaceholderName,
	Symbol: PlaceholderSymbol,
}

// Metadata is what the counterpart chain uses to name the wrapped asset.
type Metadata struct {
	Name   string
	Symbol string
}

// Resolver looks up the metadata of a local asset
type Resolver interface {
	Resolve(asset solana.PublicKey) (Metadata, error)
}

var _ Resolver = (*Static)(nil)

// Static is an in-memory resolver. Unknown assets resolve to Placeholder.
type Static struct {
	lock   sync.RWMutex
	assets map[solana.PublicKey]Metadata
}

// NewStatic returns a resolver seeded with assets
func NewStatic(assets map[solana.PublicKey]Metadata) *Static {
	s := &Static{
		assets: make(map[solana.PublicKey]Metadata, len(assets)),
	}
	for asset, md := range assets {
		s.assets[asset] = md
	}
	return s
}

// Set records the metadata of asset
func (s *Static) Set(asset solana.PublicKey, md Metadata) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.assets[asset] = md
}

func (s *Static) Resolve(asset solana.PublicKey) (Metadata, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if md, ok := s.assets[asset]; ok {
		return md, nil
	}
	return Placeholder, nil
}
