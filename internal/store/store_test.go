// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigeen/site/internal/content"
)

func TestNew_InitialState(t *testing.T) {
	s := New(content.DefaultMode)
	assert.Equal(t, content.ModeConsult, s.Mode())
	assert.Equal(t, ContactForm{}, s.ContactForm())
	assert.True(t, s.ContactForm().IsEmpty())
	assert.Equal(t, StatusIdle, s.Submission().Status)
}

func TestNew_InvalidDefaultFallsBack(t *testing.T) {
	s := New(content.Mode("retro"))
	assert.Equal(t, content.DefaultMode, s.Mode())
}

func TestSetMode_RoundTripAndIdempotent(t *testing.T) {
	for _, m := range content.Modes() {
		t.Run(string(m), func(t *testing.T) {
			s := New(m.Toggle())
			var changes []ModeChange
			s.Subscribe(func(c ModeChange) { changes = append(changes, c) })

			require.NoError(t, s.SetMode(m))
			assert.Equal(t, m, s.Mode())
			require.NoError(t, s.SetMode(m))
			assert.Equal(t, m, s.Mode())

			if diff := cmp.Diff([]ModeChange{{Old: m.Toggle(), New: m}}, changes); diff != "" {
				t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetMode_Invalid(t *testing.T) {
	s := New(content.ModeConsult)
	err := s.SetMode(content.Mode("retro"))
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, content.ModeConsult, s.Mode())
}

func TestToggle_TwiceIsIdentity(t *testing.T) {
	s := New(content.ModeConsult)
	assert.Equal(t, content.ModeTech, s.Toggle())
	assert.Equal(t, content.ModeConsult, s.Toggle())
	assert.Equal(t, content.ModeConsult, s.Mode())
}

func TestSetContactFormField_ChangesOnlyThatField(t *testing.T) {
	s := New(content.ModeConsult)
	require.NoError(t, s.SetContactFormField(FieldFullName, "Jane Doe"))

	want := ContactForm{FullName: "Jane Doe"}
	if diff := cmp.Diff(want, s.ContactForm()); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, content.ModeConsult, s.Mode())
}

func TestSetContactFormField_LastWriteWins(t *testing.T) {
	s := New(content.ModeConsult)
	for _, f := range Fields() {
		require.NoError(t, s.SetContactFormField(f, "first"))
	}
	for _, f := range Fields() {
		require.NoError(t, s.SetContactFormField(f, "  last "+string(f)+"  "))
	}
	form := s.ContactForm()
	for _, f := range Fields() {
		assert.Equal(t, "  last "+string(f)+"  ", form.Get(f), "field %s is stored verbatim", f)
	}
}

func TestSetContactFormField_Unknown(t *testing.T) {
	s := New(content.ModeConsult)
	err := s.SetContactFormField(Field("phone"), "123")
	require.ErrorIs(t, err, ErrUnknownField)
	assert.True(t, s.ContactForm().IsEmpty())
}

func TestParseField(t *testing.T) {
	f, err := ParseField("workEmail")
	require.NoError(t, err)
	assert.Equal(t, FieldWorkEmail, f)

	_, err = ParseField("WorkEmail")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestContactForm_ReturnsCopy(t *testing.T) {
	s := New(content.ModeConsult)
	form := s.ContactForm()
	form.FullName = "mutated"
	assert.Empty(t, s.ContactForm().FullName)
}

func TestSubmission_SuccessResetsForm(t *testing.T) {
	s := New(content.ModeConsult)
	require.NoError(t, s.SetContactFormField(FieldMessage, "hello"))
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	s.MarkSubmitted("rcpt-1", at)

	assert.True(t, s.ContactForm().IsEmpty())
	sub := s.Submission()
	assert.Equal(t, StatusSubmitted, sub.Status)
	assert.Equal(t, "rcpt-1", sub.ReceiptID)
	assert.Equal(t, at, sub.At)
}

func TestSubmission_FailureKeepsForm(t *testing.T) {
	s := New(content.ModeConsult)
	require.NoError(t, s.SetContactFormField(FieldFullName, "Jane"))
	errs := map[Field]string{FieldWorkEmail: "Work Email is required"}

	s.MarkFailed(errs, time.Now())
	errs[FieldTopic] = "mutated after the fact"

	assert.Equal(t, "Jane", s.ContactForm().FullName)
	sub := s.Submission()
	assert.Equal(t, StatusFailed, sub.Status)
	assert.Equal(t, map[Field]string{FieldWorkEmail: "Work Email is required"}, sub.FieldErrors)
}

func TestSetContactFormField_ClearsOutcome(t *testing.T) {
	s := New(content.ModeConsult)
	s.MarkFailed(map[Field]string{FieldMessage: "required"}, time.Now())
	require.NoError(t, s.SetContactFormField(FieldMessage, "hi"))
	assert.Equal(t, StatusIdle, s.Submission().Status)
	assert.Empty(t, s.Submission().FieldErrors)
}

func TestSubscribe_Cancel(t *testing.T) {
	s := New(content.ModeConsult)
	var a, b int
	cancelA := s.Subscribe(func(ModeChange) { a++ })
	s.Subscribe(func(ModeChange) { b++ })

	s.Toggle()
	cancelA()
	cancelA()
	s.Toggle()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestSubscribe_CallbackMayReadStore(t *testing.T) {
	s := New(content.ModeConsult)
	var seen content.Mode
	s.Subscribe(func(ModeChange) { seen = s.Mode() })
	s.Toggle()
	assert.Equal(t, content.ModeTech, seen)
}

func TestSnapshotRestore(t *testing.T) {
	src := New(content.ModeConsult)
	require.NoError(t, src.SetMode(content.ModeTech))
	require.NoError(t, src.SetContactFormField(FieldCompanyName, "Acme"))
	src.MarkFailed(map[Field]string{FieldWorkEmail: "required"}, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	raw, err := json.Marshal(src.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	dst := New(content.ModeConsult)
	notified := false
	dst.Subscribe(func(ModeChange) { notified = true })
	require.NoError(t, dst.Restore(snap))

	if diff := cmp.Diff(src.Snapshot(), dst.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, notified)
}

func TestRestore_Rejects(t *testing.T) {
	s := New(content.ModeConsult)
	require.ErrorIs(t, s.Restore(Snapshot{Mode: "retro"}), ErrInvalidMode)
	require.Error(t, s.Restore(Snapshot{Mode: content.ModeTech, Submission: Submission{Status: "pending"}}))
	assert.Equal(t, content.ModeConsult, s.Mode())

	require.NoError(t, s.Restore(Snapshot{Mode: content.ModeTech}))
	assert.Equal(t, StatusIdle, s.Submission().Status)
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := New(content.ModeConsult)
	var mu sync.Mutex
	notifications := 0
	s.Subscribe(func(ModeChange) {
		mu.Lock()
		notifications++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Toggle()
		}()
		go func(i int) {
			defer wg.Done()
			_ = s.SetContactFormField(Fields()[i%len(Fields())], "v")
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, notifications)
	assert.Equal(t, content.ModeConsult, s.Mode(), "an even number of toggles ends where it started")
}
