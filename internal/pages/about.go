// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/ui"
)

func (a *Assembler) about() g.Node {
	about := a.registry.Site().About
	return g.Group{
		pageHero("about", about.Hero),
		Section(Class("story"),
			Div(Class("container grid grid--2"),
				a.storyBlock(about.Problem, "story__block--problem", motion.SlideInLeft),
				a.storyBlock(about.Solution, "story__block--solution", motion.SlideInRight),
			),
		),
		g.If(len(about.Stats) > 0, a.stats(about.Stats)),
		a.team(about.Team),
		a.ctaPanel(about.CTA, "/roadmap#"+AnchorJourney, "/roadmap"),
	}
}

func (a *Assembler) storyBlock(s content.Section, modifier, preset string) g.Node {
	return Article(
		Class("story__block card glass-light "+modifier+" "+a.kit.Motion.Class(preset)),
		a.kit.Motion.Attrs(preset),
		Div(Class("story__icon"), ui.Icon(s.Icon, 32)),
		H2(Class("text-h3"), g.Text(s.Title)),
		g.Map(s.Paragraphs, func(p string) g.Node {
			return P(Class("text-body1"), ui.RichText(p))
		}),
		g.If(len(s.Bullets) > 0,
			Ul(Class("story__bullets"),
				g.Map(s.Bullets, func(b string) g.Node {
					return Li(ui.Icon("check-circle", 18), Span(ui.RichText(b)))
				}),
			),
		),
	)
}

func (a *Assembler) stats(stats []content.Stat) g.Node {
	return Section(Class("stats"),
		Div(Class("container grid grid--4"),
			g.Map(indexed(stats), func(it item[content.Stat]) g.Node {
				return a.kit.StatCard(it.v, ui.WithDelay(motion.StaggerDelay(it.i)))
			}),
		),
	)
}

func (a *Assembler) team(members []content.TeamMember) g.Node {
	return Section(
		ID(AnchorTeam),
		Class("team"),
		Div(Class("container"),
			sectionHeader("Meet the Team", "The people building Bigeen."),
			Div(Class("grid grid--3"),
				g.Map(indexed(members), func(it item[content.TeamMember]) g.Node {
					return a.kit.TeamMemberCard(it.v, ui.WithDelay(motion.StaggerDelay(it.i)))
				}),
			),
		),
	)
}
