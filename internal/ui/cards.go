// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ui

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/theme"
)

// FeatureCard renders one feature of the "Why Bigeen?" grid. It fades up on
// first view and lifts on hover.
func (k *Kit) FeatureCard(f content.Feature, opts ...Opt) g.Node {
	o := collect(opts)
	accent := o.accent
	if accent == "" {
		accent = theme.DefaultAccent
	}
	return Div(
		Class(k.classes("card feature-card glass-light", motion.FadeUp, motion.HoverLift)),
		o.idAttr(),
		g.If(f.ID != "", Data("feature", f.ID)),
		k.Motion.Attrs(motion.FadeUp),
		style(accentStyle(accent), o.delayStyle()),
		Div(Class("feature-card__icon"), Icon(f.Icon, 28)),
		H3(Class("text-h5 feature-card__title"), g.Text(f.Title)),
		P(Class("text-body2 feature-card__body"), g.Text(f.Description)),
		g.If(o.learnMoreLabel != "",
			A(Class("feature-card__more"), Href(o.learnMoreHref),
				g.Text(o.learnMoreLabel), Icon("arrow-right", 16)),
		),
	)
}

// CategoryColor is the chip color of the i-th category of p.
func CategoryColor(p content.Project, i int) string {
	if i < len(p.CategoryColors) && p.CategoryColors[i] != "" {
		return p.CategoryColors[i]
	}
	return theme.Accents[i%len(theme.Accents)]
}

// ProjectCard renders a portfolio entry with a zooming cover image.
func (k *Kit) ProjectCard(p content.Project, opts ...Opt) g.Node {
	o := collect(opts)
	link := p.Link
	if link == "" {
		link = "#"
	}
	chips := make([]g.Node, 0, len(p.Categories))
	for i, c := range p.Categories {
		color := CategoryColor(p, i)
		soft, err := theme.WithAlpha(color, 0.12)
		if err != nil {
			soft = ""
		}
		chips = append(chips, Span(Class("chip"),
			style("color: "+color, decl("background", soft)),
			g.Text(c)))
	}
	return Article(
		Class(k.classes("card project-card", motion.RiseIn, motion.HoverLift)),
		o.idAttr(),
		Data("project", p.ID),
		k.Motion.Attrs(motion.RiseIn),
		style(o.delayStyle()),
		Div(Class("project-card__media"),
			Div(Class("project-card__image"),
				g.If(p.ImageURL != "", style(fmt.Sprintf("background-image: url(%q)", p.ImageURL))),
				Role("img"), g.Attr("aria-label", p.Title),
			),
		),
		Div(Class("project-card__body"),
			Div(Class("project-card__chips"), g.Group(chips)),
			H3(Class("text-h5"), g.Text(p.Title)),
			P(Class("text-body2"), g.Text(p.Description)),
			A(Class("project-card__link"), Href(link), g.Text("View Case Study"), Icon("arrow-right", 16)),
		),
	)
}

func decl(prop, value string) string {
	if value == "" {
		return ""
	}
	return prop + ": " + value
}

// StatCard renders a headline number that scales in.
func (k *Kit) StatCard(s content.Stat, opts ...Opt) g.Node {
	o := collect(opts)
	accent := o.accent
	if accent == "" {
		accent = k.Theme.Palette.Secondary
	}
	return Div(
		Class(k.classes("card stat-card glass-medium", motion.ScaleIn, motion.HoverLiftSm)),
		o.idAttr(),
		k.Motion.Attrs(motion.ScaleIn),
		style(accentStyle(accent), o.delayStyle()),
		Div(Class("stat-card__icon"), Icon(s.Icon, 28)),
		P(Class("stat-card__value text-h3"),
			g.Text(s.Value),
			g.If(s.Suffix != "", Span(Class("stat-card__suffix"), g.Text(s.Suffix))),
		),
		P(Class("stat-card__label text-body2"), g.Text(s.Label)),
	)
}

// TeamMemberCard renders an avatar with initials, name, role and socials.
func (k *Kit) TeamMemberCard(m content.TeamMember, opts ...Opt) g.Node {
	o := collect(opts)
	gradient := m.Gradient
	if gradient == "" {
		gradient = k.Theme.Gradients.Accent
	}
	return Div(
		Class(k.classes("card team-card glass-light", motion.FadeUp, motion.HoverLift)),
		o.idAttr(),
		k.Motion.Attrs(motion.FadeUp),
		style(o.delayStyle()),
		Div(Class("team-card__avatar"), style("background: "+gradient), g.Text(initials(m))),
		H3(Class("text-h5"), g.Text(m.Name)),
		P(Class("team-card__role text-body2"), g.Text(m.Role)),
		g.If(len(m.Socials) > 0, SocialLinks(m.Socials, 20)),
	)
}

func initials(m content.TeamMember) string {
	if m.Initials != "" {
		return m.Initials
	}
	var b strings.Builder
	for _, f := range strings.Fields(m.Name) {
		for _, r := range f {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// SocialLinks renders icon links to external profiles.
func SocialLinks(socials []content.Social, size int) g.Node {
	return Div(Class("socials"),
		g.Group(g.Map(socials, func(s content.Social) g.Node {
			return A(Class("socials__link socials__link--"+string(s.Kind)),
				Href(s.URL), Target("_blank"), Rel("noopener noreferrer"),
				g.Attr("aria-label", s.Kind.Label()),
				Icon(string(s.Kind), size),
			)
		})),
	)
}

// ContactChannelCard renders one way to reach the company.
func (k *Kit) ContactChannelCard(c content.ContactChannel, opts ...Opt) g.Node {
	o := collect(opts)
	accent := o.accent
	if accent == "" {
		accent = theme.DefaultAccent
	}
	value := g.Node(Span(Class("channel-card__value"), g.Text(c.Value)))
	if c.Href != "" {
		value = A(Class("channel-card__value"), Href(c.Href), g.Text(c.Value))
	}
	return Div(
		Class(k.classes("channel-card glass-medium", motion.HoverNudge)),
		o.idAttr(),
		style(accentStyle(accent)),
		Div(Class("channel-card__icon"), Icon(c.Icon, 22)),
		Div(
			P(Class("channel-card__title text-body2"), g.Text(c.Title)),
			value,
		),
	)
}

// MilestoneItem renders one entry of the timeline. index drives the stagger.
func (k *Kit) MilestoneItem(m content.Milestone, index int, opts ...Opt) g.Node {
	o := collect(opts)
	if !o.hasDelay {
		o.delay, o.hasDelay = motion.StaggerDelay(index), true
	}
	side := m.Side
	if side == "" {
		side = content.SideLeft
	}
	return Div(
		Class(k.classes("milestone milestone--"+string(side), motion.FadeUp)),
		o.idAttr(),
		k.Motion.Attrs(motion.FadeUp),
		style(o.delayStyle()),
		Div(Class("milestone__dot"), Icon(m.Icon, 24)),
		Div(Class(k.classes("milestone__card card glass-light", motion.HoverLiftSm)),
			Span(Class("milestone__year chip"), g.Text(m.Year)),
			H3(Class("text-h5"), g.Text(m.Title)),
			P(Class("text-body2"), g.Text(m.Description)),
		),
	)
}

// BlobPosition places a blob with CSS offsets such as "-10%".
type BlobPosition struct {
	Top, Left, Right, Bottom string
}

// Blob renders a blurred, drifting color disc for hero backgrounds.
func (k *Kit) Blob(color string, size int, pos BlobPosition, opts ...Opt) g.Node {
	o := collect(opts)
	return Span(
		Class(k.classes("blob", motion.Blob)),
		g.Attr("aria-hidden", "true"),
		style(
			"background: "+color,
			fmt.Sprintf("width: %dpx", size),
			fmt.Sprintf("height: %dpx", size),
			decl("top", pos.Top),
			decl("left", pos.Left),
			decl("right", pos.Right),
			decl("bottom", pos.Bottom),
			o.delayStyle(),
		),
	)
}

// FloatingCard renders a small glass badge that bobs up and down.
func (k *Kit) FloatingCard(c content.FloatingCard, opts ...Opt) g.Node {
	o := collect(opts)
	return Div(
		Class(k.classes("floating-card glass-light", motion.Float)),
		o.idAttr(),
		style(o.delayStyle()),
		Span(Class("floating-card__caption"), g.Text(c.Caption)),
		Strong(Class("floating-card__value"), g.Text(c.Value)),
	)
}
