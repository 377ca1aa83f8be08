// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"slices"
	"strings"
)

// Side places a milestone on one side of the timeline spine.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SocialKind is the closed set of social networks we link to.
type SocialKind string

const (
	SocialLinkedIn SocialKind = "linkedin"
	SocialTwitter  SocialKind = "twitter"
	SocialGitHub   SocialKind = "github"
)

func (k SocialKind) valid() bool {
	switch k {
	case SocialLinkedIn, SocialTwitter, SocialGitHub:
		return true
	}
	return false
}

// Label returns the display name of the network.
func (k SocialKind) Label() string {
	switch k {
	case SocialLinkedIn:
		return "LinkedIn"
	case SocialTwitter:
		return "Twitter"
	case SocialGitHub:
		return "GitHub"
	}
	return string(k)
}

// Social is a single outbound profile link.
type Social struct {
	Kind SocialKind `yaml:"kind" json:"kind"`
	URL  string     `yaml:"url" json:"url"`
}

// Project is a portfolio entry on the roadmap page.
type Project struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	ImageURL       string   `yaml:"image_url" json:"imageUrl"`
	Categories     []string `yaml:"categories" json:"categories"`
	CategoryColors []string `yaml:"category_colors" json:"categoryColors,omitempty"`
	Link           string   `yaml:"link" json:"link"`
}

// Milestone is one entry of the company timeline.
type Milestone struct {
	Year        string `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Side        Side   `yaml:"side" json:"side"`
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	Name     string   `yaml:"name" json:"name"`
	Role     string   `yaml:"role" json:"role"`
	Initials string   `yaml:"initials" json:"initials"`
	Gradient string   `yaml:"gradient" json:"gradient"`
	Socials  []Social `yaml:"socials" json:"socials"`
}

// Stat is a headline number such as "500+ Active Customers".
type Stat struct {
	Value  string `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix,omitempty"`
	Label  string `yaml:"label" json:"label"`
	Icon   string `yaml:"icon" json:"icon"`
}

// ContactChannel is a way to reach the company (email, phone, office).
type ContactChannel struct {
	Icon  string `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
	Href  string `yaml:"href" json:"href,omitempty"`
}

// Span is a run of text, optionally emphasised.
type Span struct {
	Text   string
	Strong bool
}

// RichText splits s on "**" markers into alternating plain and strong spans.
// An unterminated marker leaves the remainder emphasised.
func RichText(s string) []Span {
	parts := strings.Split(s, "**")
	spans := make([]Span, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		spans = append(spans, Span{Text: p, Strong: i%2 == 1})
	}
	return spans
}

// Section is a titled narrative block. Paragraphs may carry "**" emphasis.
type Section struct {
	Title      string   `yaml:"title" json:"title"`
	Icon       string   `yaml:"icon" json:"icon"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
	Bullets    []string `yaml:"bullets" json:"bullets,omitempty"`
}

// PageHero is the hero copy of a secondary page.
type PageHero struct {
	Eyebrow   string `yaml:"eyebrow" json:"eyebrow"`
	Title     string `yaml:"title" json:"title"`
	Highlight string `yaml:"highlight" json:"highlight"`
	Subtitle  string `yaml:"subtitle" json:"subtitle"`
	Tagline   string `yaml:"tagline" json:"tagline,omitempty"`
}

// CTA is a call-to-action panel.
type CTA struct {
	Title     string `yaml:"title" json:"title"`
	Body      string `yaml:"body" json:"body"`
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// FloatingCard is a small glass badge on the home hero visual.
type FloatingCard struct {
	Caption string `yaml:"caption" json:"caption"`
	Value   string `yaml:"value" json:"value"`
}

// Home holds the mode-independent copy of the home page.
type Home struct {
	SocialProof     string         `yaml:"social_proof" json:"socialProof"`
	TrustedByTitle  string         `yaml:"trusted_by_title" json:"trustedByTitle"`
	TrustedBy       []string       `yaml:"trusted_by" json:"trustedBy"`
	FeaturesTitle   string         `yaml:"features_title" json:"featuresTitle"`
	FeaturesSubhead string         `yaml:"features_subhead" json:"featuresSubhead"`
	FloatingCards   []FloatingCard `yaml:"floating_cards" json:"floatingCards"`
	CTA             CTA            `yaml:"cta" json:"cta"`
}

// About holds the about page narrative.
type About struct {
	Hero     PageHero     `yaml:"hero" json:"hero"`
	Problem  Section      `yaml:"problem" json:"problem"`
	Solution Section      `yaml:"solution" json:"solution"`
	Stats    []Stat       `yaml:"stats" json:"stats"`
	Team     []TeamMember `yaml:"team" json:"team"`
	CTA      CTA          `yaml:"cta" json:"cta"`
}

// Roadmap holds the roadmap page copy and records.
type Roadmap struct {
	Hero       PageHero    `yaml:"hero" json:"hero"`
	Milestones []Milestone `yaml:"milestones" json:"milestones"`
	Projects   []Project   `yaml:"projects" json:"projects"`
}

// Contact holds the contact page copy.
type Contact struct {
	Hero      PageHero         `yaml:"hero" json:"hero"`
	Channels  []ContactChannel `yaml:"channels" json:"channels"`
	FormTitle string           `yaml:"form_title" json:"formTitle"`
	Topics    []string         `yaml:"topics" json:"topics"`
	Socials   []Social         `yaml:"socials" json:"socials"`
}

// Site is the mode-independent content of the whole site.
type Site struct {
	Company string  `yaml:"company" json:"company"`
	Tagline string  `yaml:"tagline" json:"tagline"`
	Home    Home    `yaml:"home" json:"home"`
	About   About   `yaml:"about" json:"about"`
	Roadmap Roadmap `yaml:"roadmap" json:"roadmap"`
	Contact Contact `yaml:"contact" json:"contact"`
}

func (s Site) clone() Site {
	out := s
	out.Home.TrustedBy = slices.Clone(s.Home.TrustedBy)
	out.Home.FloatingCards = slices.Clone(s.Home.FloatingCards)
	out.About.Problem = s.About.Problem.clone()
	out.About.Solution = s.About.Solution.clone()
	out.About.Stats = slices.Clone(s.About.Stats)
	out.About.Team = make([]TeamMember, len(s.About.Team))
	for i, m := range s.About.Team {
		m.Socials = slices.Clone(m.Socials)
		out.About.Team[i] = m
	}
	out.Roadmap.Milestones = slices.Clone(s.Roadmap.Milestones)
	out.Roadmap.Projects = make([]Project, len(s.Roadmap.Projects))
	for i, p := range s.Roadmap.Projects {
		p.Categories = slices.Clone(p.Categories)
		p.CategoryColors = slices.Clone(p.CategoryColors)
		out.Roadmap.Projects[i] = p
	}
	out.Contact.Channels = slices.Clone(s.Contact.Channels)
	out.Contact.Topics = slices.Clone(s.Contact.Topics)
	out.Contact.Socials = slices.Clone(s.Contact.Socials)
	return out
}

func (s Section) clone() Section {
	s.Paragraphs = slices.Clone(s.Paragraphs)
	s.Bullets = slices.Clone(s.Bullets)
	return s
}
