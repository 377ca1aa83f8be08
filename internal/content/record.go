// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

// Hero is the headline block at the top of the home page.
type Hero struct {
	Headline     string `yaml:"headline" json:"headline"`
	Subhead      string `yaml:"subhead" json:"subhead"`
	CTAPrimary   string `yaml:"cta_primary" json:"ctaPrimary"`
	CTASecondary string `yaml:"cta_secondary" json:"ctaSecondary"`
}

// Feature is one card in the "Why Bigeen?" grid.
type Feature struct {
	ID          string `yaml:"id" json:"id"`
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Record is the mode-specific copy for the home page.
type Record struct {
	Hero     Hero      `yaml:"hero" json:"hero"`
	Features []Feature `yaml:"features" json:"features"`
}

func (r Record) clone() Record {
	out := r
	out.Features = append([]Feature(nil), r.Features...)
	return out
}
