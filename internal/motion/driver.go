// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package motion

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Driver is the single place where presets become CSS and markup.
type Driver struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewDriver returns a driver with the built-in presets registered.
func NewDriver() *Driver {
	d := &Driver{presets: make(map[string]Preset)}
	for _, p := range Builtins() {
		if err := d.Register(p); err != nil {
			panic(err)
		}
	}
	return d
}

// Register adds or replaces a preset.
func (d *Driver) Register(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Keyframes = slices.Clone(p.Keyframes)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.presets[p.Name] = p
	return nil
}

// Lookup returns the preset registered under name.
func (d *Driver) Lookup(name string) (Preset, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.presets[name]
	return p, ok
}

// Names returns the registered preset names, sorted.
func (d *Driver) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.presets))
	for n := range d.presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func classFor(p Preset) string {
	switch p.Trigger {
	case TriggerHover:
		return "mh-" + p.Name
	case TriggerLoop:
		return "ml-" + p.Name
	default:
		return "m-" + p.Name
	}
}

// Class returns the CSS classes for the named presets. Unknown names are
// skipped.
func (d *Driver) Class(names ...string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	classes := make([]string, 0, len(names))
	for _, n := range names {
		if p, ok := d.presets[n]; ok {
			classes = append(classes, classFor(p))
		}
	}
	return strings.Join(classes, " ")
}

// Attrs returns the data attributes the browser script needs to trigger the
// named presets. Hover and loop presets are pure CSS and contribute nothing.
func (d *Driver) Attrs(names ...string) g.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var nodes g.Group
	for _, n := range names {
		p, ok := d.presets[n]
		if !ok {
			continue
		}
		switch p.Trigger {
		case TriggerViewport:
			nodes = append(nodes, h.Data("motion", "viewport"))
			if p.Once {
				nodes = append(nodes, h.Data("motion-once", "true"))
			}
			if p.Margin != "" {
				nodes = append(nodes, h.Data("motion-margin", p.Margin))
			}
			return nodes
		case TriggerMount:
			nodes = append(nodes, h.Data("motion", "mount"))
			return nodes
		}
	}
	return nodes
}

// DelayStyle returns an inline declaration that overrides the delay of the
// element's entrance or loop preset.
func DelayStyle(d time.Duration) string {
	return "--motion-delay: " + seconds(d) + ";"
}

// CSS renders every registered preset, sorted by name.
func (d *Driver) CSS() string {
	d.mu.RLock()
	presets := make([]Preset, 0, len(d.presets))
	for _, p := range d.presets {
		presets = append(presets, p)
	}
	d.mu.RUnlock()
	slices.SortFunc(presets, func(a, b Preset) int { return strings.Compare(a.Name, b.Name) })

	var b strings.Builder
	for _, p := range presets {
		writePreset(&b, p)
	}
	for _, e := range presets {
		if e.Trigger != TriggerMount && e.Trigger != TriggerViewport {
			continue
		}
		for _, hv := range presets {
			if hv.Trigger == TriggerHover {
				writeCombined(&b, e, hv)
			}
		}
	}
	// Without the script every entrance preset shows its final frame.
	b.WriteString("html:not(.js) [data-motion] {\n  opacity: 1 !important;\n  transform: none !important;\n}\n")
	b.WriteString("@media (prefers-reduced-motion: reduce) {\n  [data-motion], [class*=\"ml-\"], [class*=\"mh-\"] {\n    animation: none !important;\n    transition: none !important;\n  }\n}\n")
	return b.String()
}

func writePreset(b *strings.Builder, p Preset) {
	dur, ease := p.timing()
	cls := "." + classFor(p)
	delay := "var(--motion-delay, " + seconds(p.Delay) + ")"

	switch p.Trigger {
	case TriggerMount, TriggerViewport:
		fmt.Fprintf(b, "%s {\n  opacity: %s;\n  transform: %s;\n  transition: opacity %s %s %s, transform %s %s %s;\n}\n",
			cls, num(p.From.Opacity), transform(p.From),
			seconds(dur), ease, delay, seconds(dur), ease, delay)
		fmt.Fprintf(b, "%s.is-visible {\n  opacity: %s;\n  transform: %s;\n}\n",
			cls, num(p.To.Opacity), transform(p.To))
	case TriggerHover:
		fmt.Fprintf(b, "%s {\n  transition: transform %s %s;\n}\n", cls, seconds(dur), ease)
		fmt.Fprintf(b, "%s:hover, %s.is-visible:hover, %s[data-hovered], %s.is-visible[data-hovered] {\n  transform: %s;\n}\n",
			cls, cls, cls, cls, transform(p.To))
	case TriggerLoop:
		fmt.Fprintf(b, "@keyframes m-%s {\n", p.Name)
		for _, k := range p.Keyframes {
			fmt.Fprintf(b, "  %s%% { transform: %s; }\n", num(k.Offset*100), transform(k.Frame))
		}
		b.WriteString("}\n")
		fmt.Fprintf(b, "%s {\n  animation: m-%s %s %s %s infinite;\n}\n", cls, p.Name, seconds(dur), ease, delay)
	}
}

// writeCombined keeps the entrance transition on an element that also
// carries a hover preset. The hover timing applies only once motion.js marks
// the entrance as settled.
func writeCombined(b *strings.Builder, entrance, hover Preset) {
	eDur, eEase := entrance.timing()
	hDur, hEase := hover.timing()
	sel := "." + classFor(entrance) + "." + classFor(hover)
	enter := seconds(eDur) + " " + eEase + " var(--motion-delay, " + seconds(entrance.Delay) + ")"

	fmt.Fprintf(b, "%s {\n  transition: opacity %s, transform %s;\n}\n", sel, enter, enter)
	fmt.Fprintf(b, "%s.is-settled {\n  transition: opacity %s, transform %s %s;\n}\n",
		sel, enter, seconds(hDur), hEase)
}

func transform(f Frame) string {
	if f.X == 0 && f.Y == 0 && f.scale() == 1 {
		return "none"
	}
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", num(f.X), num(f.Y), num(f.scale()))
}

func seconds(d time.Duration) string {
	return num(d.Seconds()) + "s"
}

// num formats v with at most three decimals, dropping float noise such as
// 0.33*100 = 33.00000000000001.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
