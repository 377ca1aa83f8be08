// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package content holds the site copy: the per-mode hero and feature records
// and the typed records behind the about, roadmap and contact pages.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/content.yaml
var defaultDocument []byte

// ErrInvalidContent wraps every validation failure of a content document.
var ErrInvalidContent = errors.New("invalid content document")

type document struct {
	Modes map[Mode]Record `yaml:"modes"`
	Site  Site            `yaml:"site"`
}

// Registry maps each display mode to its record. It is immutable once loaded
// and safe for concurrent use.
type Registry struct {
	records map[Mode]Record
	site    Site
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the embedded document.
// It panics if the embedded document is invalid, which is a build defect.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(bytes.NewReader(defaultDocument))
		if err != nil {
			panic(fmt.Sprintf("content: embedded document: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// LoadFile loads an operator-supplied content document.
func LoadFile(path string) (*Registry, error) {
	// #nosec G304 -- content path is provided by the operator via config
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content file: %w", err)
	}
	defer func() { _ = f.Close() }()
	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return reg, nil
}

// Load parses a content document strictly and validates it.
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidContent)
		}
		return nil, fmt.Errorf("strict content parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: multiple documents or trailing content", ErrInvalidContent)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &Registry{records: doc.Modes, site: doc.Site}, nil
}

func (d *document) validate() error {
	var errs []error
	for key := range d.Modes {
		if !key.Valid() {
			errs = append(errs, fmt.Errorf("unknown mode %q", key))
		}
	}
	for _, m := range Modes() {
		rec, ok := d.Modes[m]
		if !ok {
			errs = append(errs, fmt.Errorf("mode %s: missing record", m))
			continue
		}
		if rec.Hero.Headline == "" {
			errs = append(errs, fmt.Errorf("mode %s: hero.headline is empty", m))
		}
		if len(rec.Features) == 0 {
			errs = append(errs, fmt.Errorf("mode %s: at least one feature is required", m))
		}
		seen := make(map[string]bool, len(rec.Features))
		for i, f := range rec.Features {
			if f.ID == "" {
				errs = append(errs, fmt.Errorf("mode %s: features[%d].id is empty", m, i))
				continue
			}
			if seen[f.ID] {
				errs = append(errs, fmt.Errorf("mode %s: duplicate feature id %q", m, f.ID))
			}
			seen[f.ID] = true
		}
	}

	checkSocials := func(where string, socials []Social) {
		for i, s := range socials {
			if !s.Kind.valid() {
				errs = append(errs, fmt.Errorf("%s.socials[%d]: unknown kind %q", where, i, s.Kind))
			}
			if s.URL == "" {
				errs = append(errs, fmt.Errorf("%s.socials[%d]: url is empty", where, i))
			}
		}
	}
	for i, member := range d.Site.About.Team {
		checkSocials(fmt.Sprintf("about.team[%d]", i), member.Socials)
	}
	checkSocials("contact", d.Site.Contact.Socials)

	for i, ms := range d.Site.Roadmap.Milestones {
		if ms.Side != SideLeft && ms.Side != SideRight {
			errs = append(errs, fmt.Errorf("roadmap.milestones[%d]: side must be left or right, got %q", i, ms.Side))
		}
	}
	for i, p := range d.Site.Roadmap.Projects {
		if len(p.CategoryColors) > len(p.Categories) {
			errs = append(errs, fmt.Errorf("roadmap.projects[%d]: more category colors than categories", i))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
}

// Get returns the record for mode. Lookup is total over valid modes; an
// invalid mode is a programming error and panics.
func (r *Registry) Get(m Mode) Record {
	rec, ok := r.records[m]
	if !ok {
		panic(fmt.Sprintf("content: no record for mode %q", m))
	}
	return rec.clone()
}

// Site returns a copy of the mode-independent site content.
func (r *Registry) Site() Site {
	return r.site.clone()
}
