// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import (
	"errors"
	"math"

	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

var errCacheSize = errors.New("invalid cache size")

var _ Resolver = (*Cached)(nil)

// Cached remembers the results of another resolver. Failed lookups are not
// cached.
type Cached struct {
	resolver Resolver
	entries  *lru.Cache[solana.PublicKey, Metadata]
}

// NewCached wraps resolver with an LRU cache holding up to size entries
func NewCached(resolver Resolver, size uint64) (*Cached, error) {
	if size == 0 || size > math.MaxInt {
		return nil, errCacheSize
	}

	entries, err := lru.New[solana.PublicKey, Metadata](int(size))
	if err != nil {
		return nil, err
	}

	return &Cached{
		resolver: resolver,
		entries:  entries,
	}, nil
}

func (c *Cached) Resolve(asset solana.PublicKey) (Metadata, error) {
	if md, ok := c.entries.Get(asset); ok {
		return md, nil
	}
	md, err := c.resolver.Resolve(asset)
	if err != nil {
		return Metadata{}, err
	}
	c.entries.Add(asset, md)
	return md, nil
}

// Len returns the number of cached entries
func (c *Cached) Len() int {
	return c.entries.Len()
}
