// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package store holds the per-visitor UI state: the display mode, the contact
// form draft and the outcome of the last submission.
//
// A Store is owned by one session and injected where it is needed; there is
// no package-level instance.
package store

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/bigeen/site/internal/content"
)

// ErrInvalidMode is returned by SetMode and Restore for values outside the
// DisplayMode enum. It matches content.ErrInvalidMode.
var ErrInvalidMode = content.ErrInvalidMode

// SubmissionStatus is the outcome of the last contact form submission.
type SubmissionStatus string

const (
	StatusIdle      SubmissionStatus = "idle"
	StatusSubmitted SubmissionStatus = "submitted"
	StatusFailed    SubmissionStatus = "failed"
)

// Submission describes the last submit attempt.
type Submission struct {
	Status      SubmissionStatus `json:"status"`
	ReceiptID   string           `json:"receiptId,omitempty"`
	At          time.Time        `json:"at,omitzero"`
	FieldErrors map[Field]string `json:"fieldErrors,omitempty"`
}

func (s Submission) clone() Submission {
	s.FieldErrors = maps.Clone(s.FieldErrors)
	return s
}

// ModeChange is delivered to subscribers when the mode actually changes.
type ModeChange struct {
	Old content.Mode
	New content.Mode
}

// Snapshot is the serialisable state of a Store.
type Snapshot struct {
	Mode       content.Mode `json:"mode"`
	Form       ContactForm  `json:"form"`
	Submission Submission   `json:"submission"`
}

// Store is safe for concurrent use. Subscribers are invoked after the lock
// is released, in subscription order.
type Store struct {
	mu         sync.Mutex
	mode       content.Mode
	form       ContactForm
	submission Submission

	nextSub uint64
	subs    map[uint64]func(ModeChange)
	order   []uint64
}

// New returns a store in defaultMode with an empty form. An invalid
// defaultMode falls back to content.DefaultMode.
func New(defaultMode content.Mode) *Store {
	if !defaultMode.Valid() {
		defaultMode = content.DefaultMode
	}
	return &Store{
		mode:       defaultMode,
		submission: Submission{Status: StatusIdle},
		subs:       make(map[uint64]func(ModeChange)),
	}
}

// Mode returns the current display mode.
func (s *Store) Mode() content.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode replaces the display mode. Subscribers are notified only when the
// value changes.
func (s *Store) SetMode(next content.Mode) error {
	if !next.Valid() {
		return fmt.Errorf("set mode: %w: %q", ErrInvalidMode, next)
	}
	s.mu.Lock()
	prev := s.mode
	if prev == next {
		s.mu.Unlock()
		return nil
	}
	s.mode = next
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, ModeChange{Old: prev, New: next})
	return nil
}

// Toggle flips between tech and consult and returns the new mode.
func (s *Store) Toggle() content.Mode {
	s.mu.Lock()
	prev := s.mode
	next := prev.Toggle()
	s.mode = next
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, ModeChange{Old: prev, New: next})
	return next
}

func notify(subs []func(ModeChange), change ModeChange) {
	for _, fn := range subs {
		fn(change)
	}
}

// ContactForm returns a copy of the current form values.
func (s *Store) ContactForm() ContactForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetContactFormField replaces exactly one field. Any previous submission
// outcome is cleared since it no longer describes the draft.
func (s *Store) SetContactFormField(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.form.set(field, value); err != nil {
		return err
	}
	s.submission = Submission{Status: StatusIdle}
	return nil
}

// Submission returns the outcome of the last submit.
func (s *Store) Submission() Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission.clone()
}

// MarkSubmitted records a successful submission and resets the form.
func (s *Store) MarkSubmitted(receiptID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = ContactForm{}
	s.submission = Submission{Status: StatusSubmitted, ReceiptID: receiptID, At: at}
}

// MarkFailed records a failed submission. The form keeps its values.
func (s *Store) MarkFailed(fieldErrors map[Field]string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submission = Submission{Status: StatusFailed, At: at, FieldErrors: maps.Clone(fieldErrors)}
}

// Subscribe registers fn for mode changes. The returned func cancels the
// subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(ModeChange)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) subscribersLocked() []func(ModeChange) {
	out := make([]func(ModeChange), 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.subs[id])
	}
	return out
}

// Snapshot captures the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Mode: s.mode, Form: s.form, Submission: s.submission.clone()}
}

// Restore replaces the state with snap without notifying subscribers.
func (s *Store) Restore(snap Snapshot) error {
	if !snap.Mode.Valid() {
		return fmt.Errorf("restore: %w: %q", ErrInvalidMode, snap.Mode)
	}
	sub := snap.Submission.clone()
	switch sub.Status {
	case StatusIdle, StatusSubmitted, StatusFailed:
	case "":
		sub.Status = StatusIdle
	default:
		return fmt.Errorf("restore: unknown submission status %q", sub.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = snap.Mode
	s.form = snap.Form
	s.submission = sub
	return nil
}
