// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Stylesheet renders t as CSS. The output is deterministic so it can be
// served with a stable ETag.
func Stylesheet(t Theme) string {
	var b strings.Builder
	p := t.Palette

	b.WriteString(":root {\n")
	vars := [][2]string{
		{"--color-primary", p.Primary},
		{"--color-primary-light", p.PrimaryLight},
		{"--color-primary-dark", p.PrimaryDark},
		{"--color-secondary", p.Secondary},
		{"--color-secondary-light", p.SecondaryLight},
		{"--color-secondary-dark", p.SecondaryDark},
		{"--color-contrast", p.ContrastText},
		{"--color-success", p.Success},
		{"--color-warning", p.Warning},
		{"--color-error", p.Error},
		{"--color-bg", p.Background},
		{"--color-paper", p.Paper},
		{"--color-text", p.TextPrimary},
		{"--color-text-secondary", p.TextSecondary},
		{"--color-text-disabled", p.TextDisabled},
		{"--font-family", t.Typography.FontFamily},
		{"--gradient-primary", t.Gradients.Primary},
		{"--gradient-accent", t.Gradients.Accent},
		{"--gradient-dark", t.Gradients.Dark},
		{"--gradient-hero", t.Gradients.Hero},
		{"--radius", px(t.Shape.Radius)},
		{"--radius-card", px(t.Shape.CardRadius)},
		{"--shadow-button", t.Shadows.Button},
		{"--shadow-button-hover", t.Shadows.ButtonHover},
		{"--shadow-card", t.Shadows.Card},
		{"--shadow-hero", t.Shadows.Hero},
	}
	for _, v := range vars {
		if v[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s;\n", v[0], v[1])
	}
	b.WriteString("}\n")

	rule(&b, "body", [][2]string{
		{"margin", "0"},
		{"font-family", "var(--font-family)"},
		{"background", "var(--color-bg)"},
		{"color", "var(--color-text)"},
	})

	ty := t.Typography
	for _, s := range []struct {
		sel   string
		style TextStyle
	}{
		{"h1, .text-h1", ty.H1},
		{"h2, .text-h2", ty.H2},
		{"h3, .text-h3", ty.H3},
		{"h4, .text-h4", ty.H4},
		{"h5, .text-h5", ty.H5},
		{"h6, .text-h6", ty.H6},
		{"p, .text-body1", ty.Body1},
		{".text-body2", ty.Body2},
		{".btn", ty.Button},
	} {
		rule(&b, s.sel, textDecls(s.style))
	}

	rule(&b, ".btn", [][2]string{
		{"display", "inline-flex"},
		{"align-items", "center"},
		{"gap", "8px"},
		{"border-radius", "var(--radius)"},
		{"padding", "10px 24px"},
		{"text-decoration", "none"},
		{"cursor", "pointer"},
		{"border", "1px solid transparent"},
	})
	rule(&b, ".btn-primary", [][2]string{
		{"background", "var(--gradient-primary)"},
		{"color", "var(--color-contrast)"},
		{"box-shadow", "var(--shadow-button)"},
	})
	rule(&b, ".btn-primary:hover", [][2]string{
		{"background", "var(--gradient-accent)"},
		{"box-shadow", "var(--shadow-button-hover)"},
	})
	rule(&b, ".card", [][2]string{
		{"border-radius", "var(--radius-card)"},
		{"box-shadow", "var(--shadow-card)"},
		{"background", "var(--color-paper)"},
	})
	rule(&b, ".gradient-text", [][2]string{
		{"background", "var(--gradient-accent)"},
		{"-webkit-background-clip", "text"},
		{"background-clip", "text"},
		{"-webkit-text-fill-color", "transparent"},
	})
	for _, name := range []string{"primary", "accent", "dark", "hero"} {
		rule(&b, ".bg-gradient-"+name, [][2]string{{"background", "var(--gradient-" + name + ")"}})
	}

	for _, kind := range GlassKinds() {
		g, ok := t.Glass[kind]
		if !ok {
			continue
		}
		rule(&b, ".glass-"+string(kind), glassDecls(g))
	}
	return b.String()
}

func textDecls(s TextStyle) [][2]string {
	var out [][2]string
	if s.FontSize != "" {
		out = append(out, [2]string{"font-size", s.FontSize})
	}
	if s.FontWeight != 0 {
		out = append(out, [2]string{"font-weight", strconv.Itoa(s.FontWeight)})
	}
	if s.LineHeight != 0 {
		out = append(out, [2]string{"line-height", strconv.FormatFloat(s.LineHeight, 'f', -1, 64)})
	}
	if s.TextTransform != "" {
		out = append(out, [2]string{"text-transform", s.TextTransform})
	}
	return out
}

func glassDecls(g Glass) [][2]string {
	blur := fmt.Sprintf("blur(%dpx)", g.BlurPx)
	border := "border"
	if g.BorderBottomOnly {
		border = "border-bottom"
	}
	return [][2]string{
		{"background", g.Background},
		{"backdrop-filter", blur},
		{"-webkit-backdrop-filter", blur},
		{border, g.Border},
		{"box-shadow", g.Shadow},
	}
}

func rule(b *strings.Builder, selector string, decls [][2]string) {
	if len(decls) == 0 {
		return
	}
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		fmt.Fprintf(b, "  %s: %s;\n", d[0], d[1])
	}
	b.WriteString("}\n")
}

func px(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n) + "px"
}
