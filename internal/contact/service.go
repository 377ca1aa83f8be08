// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package contact submits the contact form held in a session store.
package contact

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bigeen/site/internal/metrics"
	"github.com/bigeen/site/internal/store"
)

// ErrIncomplete is returned when the presence policy rejects a form.
var ErrIncomplete = errors.New("contact form incomplete")

// Receipt acknowledges a recorded submission.
type Receipt struct {
	ID string
	At time.Time
}

// Submitter delivers a contact form somewhere.
type Submitter interface {
	Submit(ctx context.Context, form store.ContactForm) (Receipt, error)
}

// Config is the submission policy.
type Config struct {
	// RequireFields rejects forms with empty fields. When false any form,
	// including an empty one, is accepted.
	RequireFields bool
}

// requiredForm mirrors store.ContactForm with presence rules. The field set
// must stay identical so the two convert into each other.
type requiredForm struct {
	FullName    string `json:"fullName" validate:"required"`
	WorkEmail   string `json:"workEmail" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	Topic       string `json:"topic" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

// Service applies the policy and hands accepted forms to the submitter.
type Service struct {
	submitter     Submitter
	requireFields atomic.Bool
	validate      *validator.Validate
	now           func() time.Time
}

// NewService returns a Service.
func NewService(sub Submitter, cfg Config) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	s := &Service{submitter: sub, validate: v, now: time.Now}
	s.requireFields.Store(cfg.RequireFields)
	return s
}

// SetRequireFields switches the presence policy at runtime.
func (s *Service) SetRequireFields(on bool) { s.requireFields.Store(on) }

// Check returns a message per missing field under the current policy.
func (s *Service) Check(ctx context.Context, form store.ContactForm) map[store.Field]string {
	if !s.requireFields.Load() {
		return nil
	}
	err := s.validate.StructCtx(ctx, requiredForm(form))
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[store.Field]string, len(verrs))
	for _, fe := range verrs {
		f, perr := store.ParseField(fe.Field())
		if perr != nil {
			continue
		}
		out[f] = f.Label() + " is required"
	}
	return out
}

// Submit submits the form held in st and records the outcome in st. On
// success the form is cleared; on failure its values are kept.
func (s *Service) Submit(ctx context.Context, st *store.Store) (store.Submission, error) {
	form := st.ContactForm()
	if missing := s.Check(ctx, form); len(missing) > 0 {
		st.MarkFailed(missing, s.now().UTC())
		metrics.IncContactSubmission("incomplete")
		return st.Submission(), ErrIncomplete
	}
	rcpt, err := s.submitter.Submit(ctx, form)
	if err != nil {
		st.MarkFailed(nil, s.now().UTC())
		metrics.IncContactSubmission("failed")
		return st.Submission(), fmt.Errorf("submit contact form: %w", err)
	}
	st.MarkSubmitted(rcpt.ID, rcpt.At)
	metrics.IncContactSubmission("submitted")
	return st.Submission(), nil
}
