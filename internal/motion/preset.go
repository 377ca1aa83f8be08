// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package motion describes animations as data. A Preset says what moves,
// when it starts and how long it takes; the Driver turns presets into CSS
// and element attributes that the browser-side script acts on.
package motion

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

// Trigger selects when a preset runs.
type Trigger string

const (
	// TriggerMount runs once as soon as the page is ready.
	TriggerMount Trigger = "mount"
	// TriggerViewport runs the first time the element scrolls into view.
	TriggerViewport Trigger = "viewport"
	// TriggerHover runs while the pointer is over the element.
	TriggerHover Trigger = "hover"
	// TriggerLoop runs keyframes forever.
	TriggerLoop Trigger = "loop"
)

func (t Trigger) valid() bool {
	switch t {
	case TriggerMount, TriggerViewport, TriggerHover, TriggerLoop:
		return true
	}
	return false
}

// Frame is a visual state. Scale 0 means 1.
type Frame struct {
	Opacity float64
	X       float64
	Y       float64
	Scale   float64
}

// Identity is the resting frame.
var Identity = Frame{Opacity: 1, Scale: 1}

func (f Frame) scale() float64 {
	if f.Scale == 0 {
		return 1
	}
	return f.Scale
}

// Keyframe is a frame at an offset in [0, 1] of a loop.
type Keyframe struct {
	Offset float64
	Frame  Frame
}

// Spring parameters for a unit mass.
type Spring struct {
	Stiffness float64
	Damping   float64
}

// Settle is the approximate time until the spring comes to rest.
func (s Spring) Settle() time.Duration {
	if s.Damping <= 0 {
		return 0
	}
	return time.Duration(8 / s.Damping * float64(time.Second))
}

// Underdamped reports whether the spring overshoots its target.
func (s Spring) Underdamped() bool {
	return s.Damping < 2*math.Sqrt(s.Stiffness)
}

const (
	easeOvershoot = "cubic-bezier(0.34, 1.56, 0.64, 1)"
	easeSettle    = "cubic-bezier(0.22, 1, 0.36, 1)"
)

// Easing returns the CSS timing function approximating the spring.
func (s Spring) Easing() string {
	if s.Underdamped() {
		return easeOvershoot
	}
	return easeSettle
}

// Preset is a declarative animation.
type Preset struct {
	Name     string
	Trigger  Trigger
	Duration time.Duration
	Delay    time.Duration
	// Easing is a CSS timing function or one of easeIn, easeOut, easeInOut,
	// linear. Ignored when Spring is set.
	Easing    string
	Spring    *Spring
	From      Frame
	To        Frame
	Keyframes []Keyframe
	// Once stops a viewport preset from re-running when the element leaves
	// and re-enters the viewport.
	Once bool
	// Margin grows or shrinks the viewport box, e.g. "-50px".
	Margin string
}

var (
	// ErrInvalidPreset wraps every preset validation failure.
	ErrInvalidPreset = errors.New("invalid motion preset")

	nameRE   = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	marginRE = regexp.MustCompile(`^-?\d+(px|%)$`)
)

// Validate checks that the preset can be rendered.
func (p Preset) Validate() error {
	var errs []error
	if !nameRE.MatchString(p.Name) {
		errs = append(errs, fmt.Errorf("name %q must be lower-case kebab", p.Name))
	}
	if !p.Trigger.valid() {
		errs = append(errs, fmt.Errorf("unknown trigger %q", p.Trigger))
	}
	if p.Spring == nil && p.Duration <= 0 {
		errs = append(errs, errors.New("duration must be positive without a spring"))
	}
	if p.Spring != nil && (p.Spring.Stiffness <= 0 || p.Spring.Damping <= 0) {
		errs = append(errs, errors.New("spring stiffness and damping must be positive"))
	}
	if p.Delay < 0 {
		errs = append(errs, errors.New("delay must not be negative"))
	}
	if p.Margin != "" && !marginRE.MatchString(p.Margin) {
		errs = append(errs, fmt.Errorf("margin %q must be a px or %% length", p.Margin))
	}
	switch p.Trigger {
	case TriggerLoop:
		if len(p.Keyframes) < 2 {
			errs = append(errs, errors.New("loop needs at least two keyframes"))
			break
		}
		if p.Keyframes[0].Offset != 0 || p.Keyframes[len(p.Keyframes)-1].Offset != 1 {
			errs = append(errs, errors.New("loop keyframes must start at 0 and end at 1"))
		}
		for i := 1; i < len(p.Keyframes); i++ {
			if p.Keyframes[i].Offset <= p.Keyframes[i-1].Offset {
				errs = append(errs, errors.New("loop keyframe offsets must increase"))
				break
			}
		}
	case TriggerHover:
		if p.Once {
			errs = append(errs, errors.New("hover presets cannot be once"))
		}
	}
	if p.Trigger != TriggerViewport && p.Margin != "" {
		errs = append(errs, errors.New("margin only applies to viewport presets"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidPreset, p.Name, errors.Join(errs...))
}

// Total is the time the preset takes to finish one run, delay included.
func (p Preset) Total() time.Duration {
	d := p.Duration
	if p.Spring != nil {
		d = p.Spring.Settle()
	}
	return p.Delay + d
}

func (p Preset) timing() (time.Duration, string) {
	if p.Spring != nil {
		return p.Spring.Settle(), p.Spring.Easing()
	}
	return p.Duration, cssEasing(p.Easing)
}

func cssEasing(name string) string {
	switch name {
	case "", "easeOut":
		return "ease-out"
	case "easeIn":
		return "ease-in"
	case "easeInOut":
		return "ease-in-out"
	case "linear":
		return "linear"
	}
	return name
}

// StaggerDelay is the delay of the i-th child of a staggered group.
func StaggerDelay(i int) time.Duration {
	return 200*time.Millisecond + time.Duration(i)*100*time.Millisecond
}

// Built-in preset names.
const (
	FadeUp       = "fade-up"
	ScaleIn      = "scale-in"
	SlideInRight = "slide-in-right"
	SlideInLeft  = "slide-in-left"
	StaggerItem  = "stagger-item"
	RiseIn       = "rise-in"
	HoverLift    = "hover-lift"
	HoverLiftSm  = "hover-lift-sm"
	HoverScale   = "hover-scale"
	HoverNudge   = "hover-nudge"
	Float        = "float"
	Blob         = "blob"
)

// Builtins returns the presets used across the site.
func Builtins() []Preset {
	hoverSpring := &Spring{Stiffness: 400, Damping: 17}
	cardSpring := &Spring{Stiffness: 100, Damping: 15}
	return []Preset{
		{
			Name:     FadeUp,
			Trigger:  TriggerViewport,
			Duration: 500 * time.Millisecond,
			Easing:   "easeOut",
			From:     Frame{Opacity: 0, Y: 20},
			To:       Identity,
			Once:     true,
			Margin:   "-50px",
		},
		{
			Name:    RiseIn,
			Trigger: TriggerViewport,
			Spring:  cardSpring,
			From:    Frame{Opacity: 0, Y: 30},
			To:      Identity,
			Once:    true,
			Margin:  "-50px",
		},
		{
			Name:    ScaleIn,
			Trigger: TriggerViewport,
			Spring:  cardSpring,
			From:    Frame{Opacity: 0, Scale: 0.8},
			To:      Identity,
			Once:    true,
		},
		{
			Name:     SlideInRight,
			Trigger:  TriggerMount,
			Duration: 800 * time.Millisecond,
			Delay:    300 * time.Millisecond,
			From:     Frame{Opacity: 0, X: 50},
			To:       Identity,
		},
		{
			Name:    SlideInLeft,
			Trigger: TriggerViewport,
			Spring:  &Spring{Stiffness: 80, Damping: 20},
			From:    Frame{Opacity: 0, X: -30},
			To:      Identity,
			Once:    true,
			Margin:  "-100px",
		},
		{
			Name:    StaggerItem,
			Trigger: TriggerMount,
			Spring:  cardSpring,
			From:    Frame{Opacity: 0, Y: 20},
			To:      Identity,
		},
		{
			Name:    HoverLift,
			Trigger: TriggerHover,
			Spring:  hoverSpring,
			From:    Identity,
			To:      Frame{Opacity: 1, Y: -8},
		},
		{
			Name:    HoverLiftSm,
			Trigger: TriggerHover,
			Spring:  hoverSpring,
			From:    Identity,
			To:      Frame{Opacity: 1, Y: -5},
		},
		{
			Name:    HoverScale,
			Trigger: TriggerHover,
			Spring:  hoverSpring,
			From:    Identity,
			To:      Frame{Opacity: 1, Scale: 1.05},
		},
		{
			Name:    HoverNudge,
			Trigger: TriggerHover,
			Spring:  hoverSpring,
			From:    Identity,
			To:      Frame{Opacity: 1, Y: -2, Scale: 1.05},
		},
		{
			Name:     Float,
			Trigger:  TriggerLoop,
			Duration: 3 * time.Second,
			Easing:   "easeInOut",
			Keyframes: []Keyframe{
				{Offset: 0, Frame: Identity},
				{Offset: 0.5, Frame: Frame{Opacity: 1, Y: -15}},
				{Offset: 1, Frame: Identity},
			},
		},
		{
			Name:     Blob,
			Trigger:  TriggerLoop,
			Duration: 7 * time.Second,
			Easing:   "easeInOut",
			Keyframes: []Keyframe{
				{Offset: 0, Frame: Identity},
				{Offset: 0.33, Frame: Frame{Opacity: 1, X: 30, Y: -50, Scale: 1.1}},
				{Offset: 0.66, Frame: Frame{Opacity: 1, X: -20, Y: 20, Scale: 0.9}},
				{Offset: 1, Frame: Identity},
			},
		},
	}
}
