// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package shell wraps page bodies in the document chrome: head, glass
// navbar with the mode switch, and footer.
package shell

import (
	"net/http"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/pages"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/ui"
)

// Asset paths referenced from every document.
const (
	ThemeCSSPath = "/assets/theme.css"
	SiteCSSPath  = "/static/site.css"
	MotionJSPath = "/static/motion.js"
	FormJSPath   = "/static/form.js"
)

// Route binds a path to a page and its navigation label.
type Route struct {
	Path  string
	Page  pages.Page
	Label string
}

var routes = []Route{
	{Path: "/", Page: pages.Home, Label: "Home"},
	{Path: "/about", Page: pages.About, Label: "About"},
	{Path: "/roadmap", Page: pages.Roadmap, Label: "Roadmap"},
	{Path: "/contact", Page: pages.Contact, Label: "Contact"},
}

// Routes returns the routing table in navigation order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for path. A trailing slash is ignored.
func Lookup(path string) (Route, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Shell renders complete documents.
type Shell struct {
	pages *pages.Assembler
	kit   *ui.Kit
}

// New returns a Shell around a page assembler.
func New(a *pages.Assembler, kit *ui.Kit) *Shell {
	return &Shell{pages: a, kit: kit}
}

// Page renders route r for the visitor state in st.
func (s *Shell) Page(r Route, st *store.Store) (g.Node, error) {
	body, err := s.pages.Render(r.Page, st)
	if err != nil {
		return nil, err
	}
	return s.Document(s.pages.Title(r.Page), st.Mode(), r.Path, body), nil
}

// Document wraps body in the html skeleton. path marks the active nav link
// and is where the mode switch returns to.
func (s *Shell) Document(title string, mode content.Mode, path string, body g.Node) g.Node {
	site := s.pages.Registry().Site()
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(g.Attr("name", "viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
				Meta(g.Attr("name", "description"), g.Attr("content", site.Tagline)),
				g.El("title", g.Text(title)),
				Link(Rel("stylesheet"), Href(ThemeCSSPath)),
				Link(Rel("stylesheet"), Href(SiteCSSPath)),
				Script(Src(MotionJSPath), Defer()),
				Script(Src(FormJSPath), Defer()),
			),
			Body(
				Class("mode-"+string(mode)),
				g.Attr("data-mode", string(mode)),
				s.navbar(site, mode, path),
				Main(ID("main"), body),
				footer(site),
			),
		),
	)
}

func (s *Shell) navbar(site content.Site, mode content.Mode, path string) g.Node {
	return Header(Class("navbar glass-navbar"),
		Nav(Class("container navbar__inner"), g.Attr("aria-label", "Main"),
			A(Class("navbar__brand"), Href("/"), ui.GradientText(site.Company)),
			Ul(Class("navbar__links"),
				g.Map(routes, func(r Route) g.Node {
					active := r.Path == path
					class := "navbar__link"
					if active {
						class += " is-active"
					}
					return Li(A(Class(class), Href(r.Path),
						g.If(active, g.Attr("aria-current", "page")),
						g.Text(r.Label),
					))
				}),
			),
			pages.ModeSwitch(mode, path),
			s.kit.PrimaryButton("Get Started", pages.ContactFormHref),
		),
	)
}

func footer(site content.Site) g.Node {
	return Footer(Class("footer bg-gradient-dark"),
		Div(Class("container footer__inner"),
			Div(
				Strong(Class("footer__company"), g.Text(site.Company)),
				P(Class("footer__tagline text-body2"), g.Text(site.Tagline)),
			),
			g.If(len(site.Contact.Socials) > 0, ui.SocialLinks(site.Contact.Socials, 20)),
		),
	)
}

// ErrorPage renders a full document for an HTTP error status.
func (s *Shell) ErrorPage(status int, mode content.Mode, path string) g.Node {
	heading := "Something went wrong"
	detail := "We could not load this page. Please try again in a moment."
	if status == http.StatusNotFound {
		heading = "Page not found"
		detail = "The page you are looking for does not exist."
	}
	company := s.pages.Registry().Site().Company
	body := Section(Class("page-hero error-page bg-gradient-hero"),
		Div(Class("container"),
			Span(Class("chip chip--eyebrow"), g.Textf("%d", status)),
			H1(Class("text-h2"), g.Text(heading)),
			P(Class("text-body1"), g.Text(detail)),
			s.kit.PrimaryButton("Back to Home", "/", ui.WithIcon("arrow-right")),
		),
	)
	return s.Document(heading+" | "+company, mode, path, body)
}
