// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package contact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/store"
)

// DefaultOutboxSize bounds the outbox when no size is configured.
const DefaultOutboxSize = 256

// Entry is one recorded submission.
type Entry struct {
	Receipt
	SessionID string
	Form      store.ContactForm
}

// Outbox records submissions in memory, keeping the newest size entries.
// It never sends anything over the network.
type Outbox struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool

	now   func() time.Time
	newID func() string
}

// NewOutbox returns an outbox holding at most size entries.
func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &Outbox{
		entries: make([]Entry, size),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Submit implements Submitter.
func (o *Outbox) Submit(ctx context.Context, form store.ContactForm) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	rcpt := Receipt{ID: o.newID(), At: o.now().UTC()}

	o.mu.Lock()
	o.entries[o.next] = Entry{Receipt: rcpt, SessionID: log.SessionIDFromContext(ctx), Form: form}
	o.next = (o.next + 1) % len(o.entries)
	if o.next == 0 {
		o.full = true
	}
	o.mu.Unlock()

	// Field values are personal data; only the topic and which fields were
	// filled in are logged.
	filled := make([]string, 0, len(store.Fields()))
	for _, f := range store.Fields() {
		if form.Get(f) != "" {
			filled = append(filled, string(f))
		}
	}
	logger := log.WithComponentFromContext(ctx, "contact")
	logger.Info().
		Str(log.FieldEvent, "contact.submitted").
		Str(log.FieldReceiptID, rcpt.ID).
		Str(log.FieldTopic, form.Topic).
		Strs("filled", filled).
		Msg("contact form recorded")
	return rcpt, nil
}

// Len returns the number of retained entries.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.full {
		return len(o.entries)
	}
	return o.next
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (o *Outbox) Recent(n int) []Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	count := o.next
	if o.full {
		count = len(o.entries)
	}
	if n <= 0 || n > count {
		n = count
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (o.next - i + len(o.entries)) % len(o.entries)
		out = append(out, o.entries[idx])
	}
	return out
}
