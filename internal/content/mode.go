// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which copy the site presents to the visitor.
type Mode string

const (
	// ModeTech presents the product/software narrative.
	ModeTech Mode = "tech"
	// ModeConsult presents the consulting narrative. It is the default.
	ModeConsult Mode = "consult"
)

// DefaultMode is the mode a fresh session starts in.
const DefaultMode = ModeConsult

// ErrInvalidMode is returned for values outside {tech, consult}.
var ErrInvalidMode = errors.New("invalid display mode")

// Modes returns every display mode in a stable order.
func Modes() []Mode {
	return []Mode{ModeTech, ModeConsult}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeTech || m == ModeConsult
}

// Toggle returns the other mode. Invalid values toggle to DefaultMode.
func (m Mode) Toggle() Mode {
	switch m {
	case ModeTech:
		return ModeConsult
	case ModeConsult:
		return ModeTech
	default:
		return DefaultMode
	}
}

func (m Mode) String() string {
	return string(m)
}

// Label is the human-readable name used on the mode switch.
func (m Mode) Label() string {
	switch m {
	case ModeTech:
		return "Tech"
	case ModeConsult:
		return "Consult"
	default:
		return string(m)
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
