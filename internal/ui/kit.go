// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package ui contains the stateless building blocks of the site: cards,
// buttons, blobs and icons. Components take typed content records and
// render markup; hover and entrance animation come from motion presets.
package ui

import (
	"fmt"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/theme"
)

// Kit renders components against one theme and motion driver.
type Kit struct {
	Theme  theme.Theme
	Motion *motion.Driver
}

// NewKit returns a kit. A nil driver gets the built-in presets.
func NewKit(t theme.Theme, d *motion.Driver) *Kit {
	if d == nil {
		d = motion.NewDriver()
	}
	return &Kit{Theme: t, Motion: d}
}

type options struct {
	accent         string
	learnMoreLabel string
	learnMoreHref  string
	icon           string
	delay          time.Duration
	hasDelay       bool
	id             string
}

// Opt customises a single component.
type Opt func(*options)

// WithAccent overrides the accent color (#RRGGBB).
func WithAccent(color string) Opt {
	return func(o *options) { o.accent = color }
}

// WithLearnMore adds a trailing link to a card.
func WithLearnMore(label, href string) Opt {
	return func(o *options) {
		o.learnMoreLabel = label
		o.learnMoreHref = href
	}
}

// WithIcon sets a button icon.
func WithIcon(name string) Opt {
	return func(o *options) { o.icon = name }
}

// WithDelay overrides the entrance delay, e.g. for staggered grids.
func WithDelay(d time.Duration) Opt {
	return func(o *options) {
		o.delay = d
		o.hasDelay = true
	}
}

// WithID sets the element id.
func WithID(id string) Opt {
	return func(o *options) { o.id = id }
}

func collect(opts []Opt) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// style joins inline declarations, skipping empty ones.
func style(decls ...string) g.Node {
	var parts []string
	for _, d := range decls {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !strings.HasSuffix(d, ";") {
			d += ";"
		}
		parts = append(parts, d)
	}
	if len(parts) == 0 {
		return nil
	}
	return Style(strings.Join(parts, " "))
}

func (o options) delayStyle() string {
	if !o.hasDelay {
		return ""
	}
	return motion.DelayStyle(o.delay)
}

func (o options) idAttr() g.Node {
	if o.id == "" {
		return nil
	}
	return ID(o.id)
}

// accentStyle exposes the accent and a translucent tint as CSS variables.
func accentStyle(color string) string {
	soft, err := theme.WithAlpha(color, 0.15)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("--accent: %s; --accent-soft: %s;", color, soft)
}

func (k *Kit) classes(base string, presets ...string) string {
	if m := k.Motion.Class(presets...); m != "" {
		return base + " " + m
	}
	return base
}

// GradientText renders text filled with the accent gradient.
func GradientText(text string) g.Node {
	return Span(Class("gradient-text"), g.Text(text))
}

// RichText renders spans produced by content.RichText.
func RichText(s string) g.Node {
	return g.Group(g.Map(content.RichText(s), func(sp content.Span) g.Node {
		if sp.Strong {
			return Strong(g.Text(sp.Text))
		}
		return g.Text(sp.Text)
	}))
}
