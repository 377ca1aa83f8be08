// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package motion

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsAreValid(t *testing.T) {
	for _, p := range Builtins() {
		assert.NoError(t, p.Validate(), p.Name)
	}
}

func TestSpring(t *testing.T) {
	s := Spring{Stiffness: 100, Damping: 15}
	assert.Equal(t, 533*time.Millisecond, s.Settle().Truncate(time.Millisecond))
	assert.True(t, s.Underdamped())
	assert.Equal(t, easeOvershoot, s.Easing())

	critical := Spring{Stiffness: 100, Damping: 20}
	assert.False(t, critical.Underdamped())
	assert.Equal(t, easeSettle, critical.Easing())

	assert.Zero(t, Spring{}.Settle())
}

func TestPreset_Total(t *testing.T) {
	d := NewDriver()
	p, ok := d.Lookup(SlideInRight)
	require.True(t, ok)
	assert.Equal(t, 1100*time.Millisecond, p.Total())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		preset Preset
		want   string
	}{
		{"bad name", Preset{Name: "Fade Up", Trigger: TriggerMount, Duration: time.Second}, "kebab"},
		{"bad trigger", Preset{Name: "x", Trigger: "scroll", Duration: time.Second}, "unknown trigger"},
		{"no duration", Preset{Name: "x", Trigger: TriggerMount}, "duration must be positive"},
		{"bad spring", Preset{Name: "x", Trigger: TriggerMount, Spring: &Spring{Stiffness: 1}}, "spring stiffness"},
		{"bad margin", Preset{Name: "x", Trigger: TriggerViewport, Duration: time.Second, Margin: "50"}, "margin"},
		{"margin off viewport", Preset{Name: "x", Trigger: TriggerMount, Duration: time.Second, Margin: "-5px"}, "only applies"},
		{"hover once", Preset{Name: "x", Trigger: TriggerHover, Duration: time.Second, Once: true}, "cannot be once"},
		{"short loop", Preset{Name: "x", Trigger: TriggerLoop, Duration: time.Second, Keyframes: []Keyframe{{Offset: 0}}}, "at least two"},
		{"loop bounds", Preset{Name: "x", Trigger: TriggerLoop, Duration: time.Second, Keyframes: []Keyframe{{Offset: 0}, {Offset: 0.5}}}, "start at 0 and end at 1"},
		{"loop order", Preset{Name: "x", Trigger: TriggerLoop, Duration: time.Second, Keyframes: []Keyframe{{Offset: 0}, {Offset: 0.6}, {Offset: 0.4}, {Offset: 1}}}, "must increase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPreset))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDriver_RegisterRejectsInvalid(t *testing.T) {
	d := NewDriver()
	err := d.Register(Preset{Name: "broken", Trigger: TriggerMount})
	require.ErrorIs(t, err, ErrInvalidPreset)
	_, ok := d.Lookup("broken")
	assert.False(t, ok)
}

func TestDriver_Class(t *testing.T) {
	d := NewDriver()
	assert.Equal(t, "m-fade-up mh-hover-lift ml-float", d.Class(FadeUp, HoverLift, Float, "unknown"))
	assert.Equal(t, "", d.Class())
}

func TestDriver_Attrs(t *testing.T) {
	d := NewDriver()
	var buf bytes.Buffer
	require.NoError(t, d.Attrs(HoverLift, FadeUp).Render(&buf))
	assert.Equal(t, ` data-motion="viewport" data-motion-once="true" data-motion-margin="-50px"`, buf.String())

	buf.Reset()
	require.NoError(t, d.Attrs(SlideInRight).Render(&buf))
	assert.Equal(t, ` data-motion="mount"`, buf.String())

	buf.Reset()
	require.NoError(t, d.Attrs(HoverScale, Blob).Render(&buf))
	assert.Empty(t, buf.String())
}

func TestDriver_CSS(t *testing.T) {
	d := NewDriver()
	css := d.CSS()
	assert.Equal(t, css, d.CSS())

	for _, want := range []string{
		".m-fade-up {\n  opacity: 0;\n  transform: translate(0px, 20px) scale(1);\n  transition: opacity 0.5s ease-out var(--motion-delay, 0s), transform 0.5s ease-out var(--motion-delay, 0s);\n}",
		".m-fade-up.is-visible {\n  opacity: 1;\n  transform: none;\n}",
		".mh-hover-lift {\n  transition: transform 0.471s cubic-bezier(0.34, 1.56, 0.64, 1);\n}",
		"transform: translate(0px, -8px) scale(1);",
		"@keyframes m-blob {\n  0% { transform: none; }\n  33% { transform: translate(30px, -50px) scale(1.1); }\n  66% { transform: translate(-20px, 20px) scale(0.9); }\n  100% { transform: none; }\n}",
		".ml-blob {\n  animation: m-blob 7s ease-in-out var(--motion-delay, 0s) infinite;\n}",
		"transition: opacity 0.8s ease-out var(--motion-delay, 0.3s)",
		"prefers-reduced-motion",
	} {
		assert.Contains(t, css, want)
	}
	assert.Less(t, bytes.Index([]byte(css), []byte(".ml-blob")), bytes.Index([]byte(css), []byte(".m-fade-up")))
}

func TestDriver_CSS_EntranceWithHover(t *testing.T) {
	css := NewDriver().CSS()

	tests := []struct {
		name string
		want string
	}{
		{
			name: "fade_up_keeps_opacity_transition",
			want: ".m-fade-up.mh-hover-lift {\n  transition: opacity 0.5s ease-out var(--motion-delay, 0s), transform 0.5s ease-out var(--motion-delay, 0s);\n}",
		},
		{
			name: "settled_fade_up_uses_hover_timing",
			want: ".m-fade-up.mh-hover-lift.is-settled {\n  transition: opacity 0.5s ease-out var(--motion-delay, 0s), transform 0.471s cubic-bezier(0.34, 1.56, 0.64, 1);\n}",
		},
		{
			name: "rise_in_keeps_entrance_timing",
			want: ".m-rise-in.mh-hover-lift-sm {\n  transition: opacity ",
		},
		{
			name: "hover_wins_over_visible_frame",
			want: ".mh-hover-lift.is-visible:hover, .mh-hover-lift[data-hovered], .mh-hover-lift.is-visible[data-hovered] {",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, css, tt.want)
		})
	}

	// The combined rules come after both single-class rules so they also win
	// on order, not only on specificity.
	combined := strings.Index(css, ".m-fade-up.mh-hover-lift {")
	assert.Greater(t, combined, strings.Index(css, ".mh-hover-lift {"))
	assert.Greater(t, combined, strings.Index(css, ".m-rise-in {"))

	// Loop presets never pair with hover presets.
	assert.NotContains(t, css, ".ml-blob.mh-")
}

func TestDelayStyle(t *testing.T) {
	assert.Equal(t, "--motion-delay: 0.3s;", DelayStyle(StaggerDelay(1)))
	assert.Equal(t, "--motion-delay: 0.2s;", DelayStyle(StaggerDelay(0)))
}
