// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package shell

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/pages"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/theme"
	"github.com/bigeen/site/internal/ui"
)

func newShell() *Shell {
	kit := ui.NewKit(theme.Default(), nil)
	return New(pages.New(kit, content.Default(), ""), kit)
}

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		want pages.Page
		ok   bool
	}{
		{"/", pages.Home, true},
		{"/about", pages.About, true},
		{"/about/", pages.About, true},
		{"/roadmap", pages.Roadmap, true},
		{"/contact", pages.Contact, true},
		{"/blog", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, ok := Lookup(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r.Page)
		})
	}
}

func TestRoutes_CoverEveryPage(t *testing.T) {
	var got []pages.Page
	for _, r := range Routes() {
		got = append(got, r.Page)
	}
	assert.Equal(t, pages.All(), got)
}

func TestPage_Document(t *testing.T) {
	s := newShell()
	r, ok := Lookup("/about")
	require.True(t, ok)

	n, err := s.Page(r, store.New(content.ModeTech))
	require.NoError(t, err)
	out := render(t, n)

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>About | Bigeen Solutions</title>")
	assert.Contains(t, out, `href="`+ThemeCSSPath+`"`)
	assert.Contains(t, out, `src="`+FormJSPath+`"`)
	assert.Contains(t, out, `<body class="mode-tech" data-mode="tech">`)
	assert.Contains(t, out, `class="navbar__link is-active" href="/about" aria-current="page"`)
	assert.Contains(t, out, `class="navbar__link" href="/roadmap"`)
	assert.Contains(t, out, `name="return_to" value="/about"`)
	assert.Contains(t, out, `value="tech" class="mode-switch__option is-active"`)
	assert.Contains(t, out, "The Business Operating System for African SMEs.")
}

func TestPage_ModeFollowsStore(t *testing.T) {
	s := newShell()
	st := store.New(content.ModeTech)
	r, _ := Lookup("/")

	n, err := s.Page(r, st)
	require.NoError(t, err)
	tech := render(t, n)

	st.Toggle()
	n, err = s.Page(r, st)
	require.NoError(t, err)
	consult := render(t, n)

	assert.Contains(t, tech, content.Default().Get(content.ModeTech).Hero.Headline)
	assert.Contains(t, consult, content.Default().Get(content.ModeConsult).Hero.Headline)
	assert.Contains(t, consult, `data-mode="consult"`)
}

func TestErrorPage(t *testing.T) {
	s := newShell()

	notFound := render(t, s.ErrorPage(http.StatusNotFound, content.ModeConsult, "/blog"))
	assert.Contains(t, notFound, "<title>Page not found | Bigeen Solutions</title>")
	assert.Contains(t, notFound, ">404<")
	assert.NotContains(t, notFound, "navbar__link is-active", "no nav link is active off-route")

	internal := render(t, s.ErrorPage(http.StatusInternalServerError, content.ModeConsult, "/"))
	assert.Contains(t, internal, "Something went wrong")
}
