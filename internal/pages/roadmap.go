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

func (a *Assembler) roadmap() g.Node {
	rm := a.registry.Site().Roadmap
	return g.Group{
		pageHero("roadmap", rm.Hero),
		a.journey(rm.Milestones),
		a.projects(rm.Projects),
	}
}

// journey renders the milestones along a vertical spine. Sides alternate
// when a milestone does not name one.
func (a *Assembler) journey(milestones []content.Milestone) g.Node {
	return Section(
		ID(AnchorJourney),
		Class("journey"),
		Div(Class("container"),
			sectionHeader("Our Journey", ""),
			Div(Class("timeline"),
				Span(Class("timeline__spine"), g.Attr("aria-hidden", "true")),
				g.Map(indexed(milestones), func(it item[content.Milestone]) g.Node {
					m := it.v
					if m.Side == "" && it.i%2 == 1 {
						m.Side = content.SideRight
					}
					return a.kit.MilestoneItem(m, it.i)
				}),
			),
		),
	)
}

func (a *Assembler) projects(projects []content.Project) g.Node {
	return Section(
		ID(AnchorProjects),
		Class("projects"),
		Div(Class("container"),
			sectionHeader("Featured Projects", ""),
			Div(Class("grid grid--3"),
				g.Map(indexed(projects), func(it item[content.Project]) g.Node {
					return a.kit.ProjectCard(it.v, ui.WithDelay(motion.StaggerDelay(it.i)))
				}),
			),
		),
	)
}
