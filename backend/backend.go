// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/tokenbridge"
)

var _ Relay = (*MemoryRelay)(nil)

var errNilMessage = errors.New("nil message")

// MemoryRelay is an in-memory relay sink that queues outbound messages for
// an external deliverer to drain.
type MemoryRelay struct {
	mu       sync.RWMutex
	messages []*tokenbridge.OutboundMessage
}

// NewMemoryRelay creates a new memory relay
func NewMemoryRelay() *MemoryRelay {
	return &MemoryRelay{
		messages: make([]*tokenbridge.OutboundMessage, 0),
	}
}

// AddMessage adds a message to be sent
func (r *MemoryRelay) AddMessage(msg *tokenbridge.OutboundMessage) error {
	if msg == nil {
		return errNilMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
	return nil
}

// GetMessage retrieves a queued message by index
func (r *MemoryRelay) GetMessage(index uint32) (*tokenbridge.OutboundMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(index) >= len(r.messages) {
		return nil, fmt.Errorf("message index %d out of bounds", index)
	}

	return r.messages[index], nil
}

// GetMessageCount returns the number of queued messages
func (r *MemoryRelay) GetMessageCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.messages)
}

// GetPendingMessages returns all queued messages
func (r *MemoryRelay) GetPendingMessages() []*tokenbridge.OutboundMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*tokenbridge.OutboundMessage, len(r.messages))
	copy(msgs, r.messages)
	return msgs
}

// ClearPendingMessages clears all queued messages
func (r *MemoryRelay) ClearPendingMessages() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = r.messages[:0]
}
