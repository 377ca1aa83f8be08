// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package pages assembles the routed views of the site from registry
// content, the visitor's store and ui primitives. Pages only read the
// store; mutations arrive through the server's POST handlers.
package pages

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/theme"
	"github.com/bigeen/site/internal/ui"
)

// Page identifies a routed view.
type Page string

const (
	Home    Page = "home"
	About   Page = "about"
	Roadmap Page = "roadmap"
	Contact Page = "contact"
)

// All returns every page in navigation order.
func All() []Page { return []Page{Home, About, Roadmap, Contact} }

// In-page anchors used by calls to action.
const (
	AnchorFeatures    = "features"
	AnchorTeam        = "team"
	AnchorJourney     = "journey"
	AnchorProjects    = "projects"
	AnchorContactForm = "contact-form"
)

// ContactFormHref is where every contact CTA points.
const ContactFormHref = "/contact#" + AnchorContactForm

// Assembler renders pages. It is safe for concurrent use.
type Assembler struct {
	kit      *ui.Kit
	registry *content.Registry
	accent   string
}

// New returns an Assembler. An empty accent uses theme.DefaultAccent.
func New(kit *ui.Kit, registry *content.Registry, accent string) *Assembler {
	if accent == "" {
		accent = theme.DefaultAccent
	}
	return &Assembler{kit: kit, registry: registry, accent: accent}
}

// Registry returns the content source.
func (a *Assembler) Registry() *content.Registry { return a.registry }

// Render returns the body of page p for the state in st.
func (a *Assembler) Render(p Page, st *store.Store) (g.Node, error) {
	snap := st.Snapshot()
	switch p {
	case Home:
		return a.home(snap), nil
	case About:
		return a.about(), nil
	case Roadmap:
		return a.roadmap(), nil
	case Contact:
		return a.contact(snap), nil
	default:
		return nil, fmt.Errorf("unknown page %q", p)
	}
}

// Title returns the document title of page p.
func (a *Assembler) Title(p Page) string {
	company := a.registry.Site().Company
	switch p {
	case About:
		return "About | " + company
	case Roadmap:
		return "Roadmap | " + company
	case Contact:
		return "Contact | " + company
	default:
		return company
	}
}

// ModeSwitch renders the tech/consult toggle. Each button posts the mode it
// selects; returnTo is the path to come back to.
func ModeSwitch(current content.Mode, returnTo string) g.Node {
	return Form(
		Class("mode-switch glass-light"),
		Method("post"),
		Action("/mode"),
		Input(Type("hidden"), g.Attr("name", "return_to"), Value(returnTo)),
		g.Map(content.Modes(), func(m content.Mode) g.Node {
			class := "mode-switch__option"
			if m == current {
				class += " is-active"
			}
			return Button(
				Type("submit"),
				g.Attr("name", "mode"),
				Value(string(m)),
				Class(class),
				g.Attr("aria-pressed", fmt.Sprint(m == current)),
				g.Text(m.Label()),
			)
		}),
	)
}

// pageHero renders the hero of a secondary page.
func pageHero(anchor string, h content.PageHero, extra ...g.Node) g.Node {
	return Section(
		ID(anchor),
		Class("page-hero bg-gradient-hero"),
		Div(Class("container"),
			g.If(h.Eyebrow != "", Span(Class("chip chip--eyebrow"), g.Text(h.Eyebrow))),
			H1(Class("text-h1"),
				g.Text(h.Title+" "),
				ui.GradientText(h.Highlight),
			),
			g.If(h.Subtitle != "", P(Class("page-hero__subtitle text-body1"), g.Text(h.Subtitle))),
			g.If(h.Tagline != "", P(Class("page-hero__tagline text-body2"), g.Text(h.Tagline))),
			g.Group(extra),
		),
	)
}

// ctaPanel renders a call-to-action band.
func (a *Assembler) ctaPanel(c content.CTA, primaryHref, secondaryHref string) g.Node {
	return Section(
		Class("cta-panel bg-gradient-dark"),
		Div(Class("container cta-panel__inner"),
			H2(Class("text-h3"), g.Text(c.Title)),
			P(Class("text-body1"), g.Text(c.Body)),
			Div(Class("cta-panel__actions"),
				a.kit.PrimaryButton(c.Primary, primaryHref, ui.WithIcon("arrow-right")),
				g.If(c.Secondary != "", a.kit.GlassButton(c.Secondary, secondaryHref)),
			),
		),
	)
}

func sectionHeader(title, subhead string) g.Node {
	return Div(Class("section-header"),
		H2(Class("text-h2"), g.Text(title)),
		g.If(subhead != "", P(Class("text-body1"), g.Text(subhead))),
	)
}
