// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"errors"
	"fmt"
)

// Field names one input of the contact form. The set is closed.
type Field string

const (
	FieldFullName    Field = "fullName"
	FieldWorkEmail   Field = "workEmail"
	FieldCompanyName Field = "companyName"
	FieldTopic       Field = "topic"
	FieldMessage     Field = "message"
)

// ErrUnknownField is returned when a field name is not part of the form.
var ErrUnknownField = errors.New("unknown contact form field")

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{FieldFullName, FieldWorkEmail, FieldCompanyName, FieldTopic, FieldMessage}
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	switch f {
	case FieldFullName, FieldWorkEmail, FieldCompanyName, FieldTopic, FieldMessage:
		return true
	}
	return false
}

// Label is the input label shown on the contact page.
func (f Field) Label() string {
	switch f {
	case FieldFullName:
		return "Full Name"
	case FieldWorkEmail:
		return "Work Email"
	case FieldCompanyName:
		return "Company Name"
	case FieldTopic:
		return "Topic"
	case FieldMessage:
		return "Message"
	}
	return string(f)
}

// ParseField maps a wire name onto a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// ContactForm is the draft contact message. Values are stored verbatim:
// no trimming, no length limit.
type ContactForm struct {
	FullName    string `json:"fullName"`
	WorkEmail   string `json:"workEmail"`
	CompanyName string `json:"companyName"`
	Topic       string `json:"topic"`
	Message     string `json:"message"`
}

// Get returns the value of f, or "" for an unknown field.
func (c ContactForm) Get(f Field) string {
	switch f {
	case FieldFullName:
		return c.FullName
	case FieldWorkEmail:
		return c.WorkEmail
	case FieldCompanyName:
		return c.CompanyName
	case FieldTopic:
		return c.Topic
	case FieldMessage:
		return c.Message
	}
	return ""
}

func (c *ContactForm) set(f Field, v string) error {
	switch f {
	case FieldFullName:
		c.FullName = v
	case FieldWorkEmail:
		c.WorkEmail = v
	case FieldCompanyName:
		c.CompanyName = v
	case FieldTopic:
		c.Topic = v
	case FieldMessage:
		c.Message = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

// IsEmpty reports whether every field is the empty string.
func (c ContactForm) IsEmpty() bool {
	return c == ContactForm{}
}
