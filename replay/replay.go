// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package replay records which inbound messages have been executed.
package replay

import (
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	"github.com/luxfi/tokenbridge"
)

// DefaultPrefix namespaces executed message IDs in the host database
var DefaultPrefix = []byte("executed_messages")

// Guard marks message IDs as executed. It writes into the database of the
// calling scope, so a mark made by a call that later fails is discarded
// with the rest of the call.
type Guard struct {
	prefix []byte
}

// New returns a guard storing IDs under prefix
func New(prefix []byte) *Guard {
	return &Guard{prefix: prefix}
}

func (g *Guard) db(db database.Database) database.Database {
	return prefixdb.New(g.prefix, db)
}

// Executed reports whether msgID has been marked
func (g *Guard) Executed(db database.Database, msgID ids.ID) (bool, error) {
	return g.db(db).Has(msgID[:])
}

// Mark records msgID. It fails with ErrMessageAlreadyExecuted if msgID
// was already marked.
func (g *Guard) Mark(db database.Database, msgID ids.ID) error {
	pdb := g.db(db)
	has, err := pdb.Has(msgID[:])
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", tokenbridge.ErrMessageAlreadyExecuted, msgID)
	}
	return pdb.Put(msgID[:], []byte{1})
}
