// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pages

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/ui"
)

// secondaryHref is where the hero's secondary CTA leads in each mode.
func secondaryHref(m content.Mode) string {
	if m == content.ModeTech {
		return "/roadmap"
	}
	return "#" + AnchorFeatures
}

func (a *Assembler) home(snap store.Snapshot) g.Node {
	rec := a.registry.Get(snap.Mode)
	site := a.registry.Site()
	return g.Group{
		a.homeHero(snap.Mode, rec.Hero, site.Home),
		trustedBy(site.Home),
		a.features(site.Home, rec.Features),
		a.ctaPanel(site.Home.CTA, ContactFormHref, "/contact"),
	}
}

func (a *Assembler) homeHero(mode content.Mode, hero content.Hero, home content.Home) g.Node {
	p := a.kit.Theme.Palette
	return Section(
		ID("home"),
		Class("hero bg-gradient-hero"),
		g.Attr("data-mode", string(mode)),
		a.kit.Blob(p.Secondary, 420, ui.BlobPosition{Top: "-10%", Left: "-5%"}),
		a.kit.Blob(p.Success, 320, ui.BlobPosition{Bottom: "-15%", Right: "10%"}, ui.WithDelay(2*time.Second)),
		a.kit.Blob(p.Warning, 260, ui.BlobPosition{Top: "20%", Right: "-8%"}, ui.WithDelay(4*time.Second)),
		Div(Class("container hero__grid"),
			Div(Class("hero__copy"),
				ModeSwitch(mode, "/"),
				H1(Class("text-h1 "+a.kit.Motion.Class(motion.FadeUp)), a.kit.Motion.Attrs(motion.FadeUp),
					g.Text(hero.Headline),
				),
				P(Class("hero__subhead text-body1 "+a.kit.Motion.Class(motion.FadeUp)), a.kit.Motion.Attrs(motion.FadeUp),
					Style(motion.DelayStyle(motion.StaggerDelay(1))),
					g.Text(hero.Subhead),
				),
				Div(Class("hero__actions"),
					a.kit.PrimaryButton(hero.CTAPrimary, ContactFormHref, ui.WithIcon("arrow-right")),
					a.kit.GlassButton(hero.CTASecondary, secondaryHref(mode), ui.WithIcon("play")),
				),
				g.If(home.SocialProof != "", socialProof(home.SocialProof)),
			),
			Div(Class("hero__visual"),
				Div(Class("hero__panel card glass-medium "+a.kit.Motion.Class(motion.SlideInRight)), a.kit.Motion.Attrs(motion.SlideInRight),
					ui.Icon("analytics", 96),
				),
				g.Map(home.FloatingCards, func(c content.FloatingCard) g.Node {
					return a.kit.FloatingCard(c)
				}),
			),
		),
	)
}

func socialProof(text string) g.Node {
	return Div(Class("social-proof"),
		Div(Class("social-proof__stars"), g.Attr("aria-hidden", "true"),
			g.Map([]int{1, 2, 3, 4, 5}, func(int) g.Node { return ui.Icon("star", 16) }),
		),
		Span(Class("text-body2"), g.Text(text)),
	)
}

func trustedBy(home content.Home) g.Node {
	if len(home.TrustedBy) == 0 {
		return nil
	}
	return Section(Class("trusted-by"),
		Div(Class("container"),
			P(Class("trusted-by__title text-overline"), g.Text(home.TrustedByTitle)),
			Ul(Class("trusted-by__list"),
				g.Map(home.TrustedBy, func(name string) g.Node {
					return Li(g.Text(name))
				}),
			),
		),
	)
}

func (a *Assembler) features(home content.Home, features []content.Feature) g.Node {
	return Section(
		ID(AnchorFeatures),
		Class("features"),
		Div(Class("container"),
			sectionHeader(home.FeaturesTitle, home.FeaturesSubhead),
			Div(Class("grid grid--3"),
				g.Map(indexed(features), func(it item[content.Feature]) g.Node {
					return a.kit.FeatureCard(it.v,
						ui.WithAccent(a.accent),
						ui.WithDelay(motion.StaggerDelay(it.i)),
					)
				}),
			),
		),
	)
}

// item pairs a slice element with its index for g.Map.
type item[T any] struct {
	i int
	v T
}

func indexed[T any](ts []T) []item[T] {
	out := make([]item[T], len(ts))
	for i, t := range ts {
		out[i] = item[T]{i: i, v: t}
	}
	return out
}
