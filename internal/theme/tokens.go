// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package theme defines the design tokens of the site and renders them as a
// stylesheet of CSS custom properties and utility classes.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette is the site color scheme.
type Palette struct {
	Primary        string
	PrimaryLight   string
	PrimaryDark    string
	Secondary      string
	SecondaryLight string
	SecondaryDark  string
	ContrastText   string
	Success        string
	Warning        string
	Error          string
	Background     string
	Paper          string
	TextPrimary    string
	TextSecondary  string
	TextDisabled   string
}

// TextStyle is one entry of the type scale. Zero values are omitted from CSS.
type TextStyle struct {
	FontSize      string
	FontWeight    int
	LineHeight    float64
	TextTransform string
}

// Typography is the font family and type scale.
type Typography struct {
	FontFamily string
	H1         TextStyle
	H2         TextStyle
	H3         TextStyle
	H4         TextStyle
	H5         TextStyle
	H6         TextStyle
	Body1      TextStyle
	Body2      TextStyle
	Button     TextStyle
}

// Gradients are the named background gradients.
type Gradients struct {
	Primary string
	Accent  string
	Dark    string
	Hero    string
}

// GlassKind names a frosted-glass surface preset.
type GlassKind string

const (
	GlassLight  GlassKind = "light"
	GlassMedium GlassKind = "medium"
	GlassDark   GlassKind = "dark"
	GlassNavbar GlassKind = "navbar"
	GlassAccent GlassKind = "accent"
)

// GlassKinds lists the presets in stylesheet order.
func GlassKinds() []GlassKind {
	return []GlassKind{GlassLight, GlassMedium, GlassDark, GlassNavbar, GlassAccent}
}

// Glass is a frosted surface: translucent fill, backdrop blur, hairline
// border and soft shadow. BorderBottomOnly draws only the bottom edge.
type Glass struct {
	Background       string
	BlurPx           int
	Border           string
	BorderBottomOnly bool
	Shadow           string
}

// Shape holds corner radii in pixels.
type Shape struct {
	Radius     int
	CardRadius int
}

// Shadows are the elevation shadows of buttons and cards.
type Shadows struct {
	Button      string
	ButtonHover string
	Card        string
	Hero        string
}

// Theme is the complete token set.
type Theme struct {
	Palette    Palette
	Typography Typography
	Gradients  Gradients
	Glass      map[GlassKind]Glass
	Shape      Shape
	Shadows    Shadows
}

// Default returns the Bigeen brand theme.
func Default() Theme {
	return Theme{
		Palette: Palette{
			Primary:        "#1a237e",
			PrimaryLight:   "#534bae",
			PrimaryDark:    "#000051",
			Secondary:      "#3B82F6",
			SecondaryLight: "#6CB4FF",
			SecondaryDark:  "#0053BF",
			ContrastText:   "#ffffff",
			Success:        "#10B981",
			Warning:        "#F59E0B",
			Error:          "#EF4444",
			Background:     "#F8FAFC",
			Paper:          "#FFFFFF",
			TextPrimary:    "#0F172A",
			TextSecondary:  "#64748B",
			TextDisabled:   "#94A3B8",
		},
		Typography: Typography{
			FontFamily: "'Inter', 'Roboto', 'Segoe UI', sans-serif",
			H1:         TextStyle{FontSize: "3.5rem", FontWeight: 800, LineHeight: 1.1},
			H2:         TextStyle{FontSize: "2.5rem", FontWeight: 700, LineHeight: 1.2},
			H3:         TextStyle{FontSize: "2rem", FontWeight: 700, LineHeight: 1.3},
			H4:         TextStyle{FontSize: "1.5rem", FontWeight: 600},
			H5:         TextStyle{FontSize: "1.25rem", FontWeight: 600},
			H6:         TextStyle{FontSize: "1rem", FontWeight: 600},
			Body1:      TextStyle{FontSize: "1rem", LineHeight: 1.7},
			Body2:      TextStyle{FontSize: "0.875rem", LineHeight: 1.6},
			Button:     TextStyle{FontSize: "0.95rem", FontWeight: 600, TextTransform: "none"},
		},
		Gradients: Gradients{
			Primary: "linear-gradient(135deg, #1a237e 0%, #3B82F6 100%)",
			Accent:  "linear-gradient(135deg, #7C3AED 0%, #3B82F6 100%)",
			Dark:    "linear-gradient(135deg, #0F172A 0%, #1E293B 100%)",
			Hero:    "linear-gradient(135deg, #F3E8FF 0%, #E0E7FF 50%, #F8FAFC 100%)",
		},
		Glass: map[GlassKind]Glass{
			GlassLight: {
				Background: "rgba(255, 255, 255, 0.7)",
				BlurPx:     20,
				Border:     "1px solid rgba(255, 255, 255, 0.3)",
				Shadow:     "0 8px 32px rgba(0, 0, 0, 0.08)",
			},
			GlassMedium: {
				Background: "rgba(255, 255, 255, 0.85)",
				BlurPx:     16,
				Border:     "1px solid rgba(255, 255, 255, 0.4)",
				Shadow:     "0 8px 32px rgba(0, 0, 0, 0.1)",
			},
			GlassDark: {
				Background: "rgba(15, 23, 42, 0.6)",
				BlurPx:     20,
				Border:     "1px solid rgba(255, 255, 255, 0.1)",
				Shadow:     "0 8px 32px rgba(0, 0, 0, 0.3)",
			},
			GlassNavbar: {
				Background:       "rgba(255, 255, 255, 0.8)",
				BlurPx:           20,
				Border:           "1px solid rgba(255, 255, 255, 0.3)",
				BorderBottomOnly: true,
				Shadow:           "0 4px 30px rgba(0, 0, 0, 0.05)",
			},
			GlassAccent: {
				Background: "linear-gradient(135deg, rgba(124, 58, 237, 0.1) 0%, rgba(59, 130, 246, 0.1) 100%)",
				BlurPx:     20,
				Border:     "1px solid rgba(124, 58, 237, 0.2)",
				Shadow:     "0 8px 32px rgba(124, 58, 237, 0.15)",
			},
		},
		Shape: Shape{Radius: 8, CardRadius: 16},
		Shadows: Shadows{
			Button:      "0 4px 14px rgba(26, 35, 126, 0.25)",
			ButtonHover: "0 6px 20px rgba(26, 35, 126, 0.35)",
			Card:        "0 4px 20px rgba(0, 0, 0, 0.05)",
			Hero:        "0 24px 60px rgba(0, 0, 0, 0.25)",
		},
	}
}

// WithAlpha converts a #RGB or #RRGGBB color into an rgba() expression.
func WithAlpha(hex string, alpha float64) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", v>>16&0xff, v>>8&0xff, v&0xff,
		strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}

// MustWithAlpha is WithAlpha for compile-time constant colors.
func MustWithAlpha(hex string, alpha float64) string {
	s, err := WithAlpha(hex, alpha)
	if err != nil {
		panic(err)
	}
	return s
}

// Accents are the default category chip colors, applied in rotation when a
// record does not carry its own.
var Accents = []string{"#667eea", "#3B82F6", "#10B981", "#F59E0B"}

// DefaultAccent is the accent color of feature cards.
const DefaultAccent = "#667eea"
