// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/motion"
)

// PrimaryButton is a gradient call-to-action link. A WithIcon option adds a
// trailing icon.
func (k *Kit) PrimaryButton(label, href string, opts ...Opt) g.Node {
	o := collect(opts)
	return A(
		Class(k.classes("btn btn-primary", motion.HoverNudge)),
		o.idAttr(),
		Href(href),
		g.Text(label),
		g.If(o.icon != "", Icon(o.icon, 18)),
	)
}

// GlassButton is the secondary, frosted call-to-action link. A WithIcon
// option adds a leading icon.
func (k *Kit) GlassButton(label, href string, opts ...Opt) g.Node {
	o := collect(opts)
	return A(
		Class(k.classes("btn btn-glass glass-light", motion.HoverScale)),
		o.idAttr(),
		Href(href),
		g.If(o.icon != "", Icon(o.icon, 18)),
		g.Text(label),
	)
}

// SubmitButton submits the enclosing form.
func (k *Kit) SubmitButton(label string, opts ...Opt) g.Node {
	o := collect(opts)
	return Button(
		Class(k.classes("btn btn-primary btn-block", motion.HoverNudge)),
		o.idAttr(),
		Type("submit"),
		g.Text(label),
		g.If(o.icon != "", Icon(o.icon, 18)),
	)
}
