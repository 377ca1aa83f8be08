// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/theme"
	"github.com/bigeen/site/internal/ui"
)

func newAssembler() *Assembler {
	return New(ui.NewKit(theme.Default(), nil), content.Default(), "")
}

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func renderPage(t *testing.T, a *Assembler, p Page, st *store.Store) string {
	t.Helper()
	n, err := a.Render(p, st)
	require.NoError(t, err)
	return render(t, n)
}

func TestHome_FollowsMode(t *testing.T) {
	a := newAssembler()
	reg := content.Default()

	for _, m := range content.Modes() {
		t.Run(string(m), func(t *testing.T) {
			out := renderPage(t, a, Home, store.New(m))
			rec := reg.Get(m)

			assert.Contains(t, out, rec.Hero.Headline)
			assert.Contains(t, out, `data-mode="`+string(m)+`"`)
			assert.Equal(t, len(rec.Features), strings.Count(out, `class="card feature-card`))
			for _, f := range rec.Features {
				assert.Contains(t, out, `data-feature="`+f.ID+`"`)
			}
			other := reg.Get(m.Toggle())
			assert.NotContains(t, out, other.Hero.Headline)
		})
	}
}

func TestHome_SecondaryCTA(t *testing.T) {
	a := newAssembler()

	tech := renderPage(t, a, Home, store.New(content.ModeTech))
	assert.Contains(t, tech, `href="/roadmap"`)

	consult := renderPage(t, a, Home, store.New(content.ModeConsult))
	assert.Contains(t, consult, `href="#features"`)
	assert.Contains(t, consult, `href="`+ContactFormHref+`"`)
}

func TestHome_StaggersFeatures(t *testing.T) {
	out := renderPage(t, newAssembler(), Home, store.New(content.ModeTech))
	assert.Contains(t, out, "--motion-delay: 0.2s;")
	assert.Contains(t, out, "--motion-delay: 0.3s;")
}

func TestModeSwitch_MarksActive(t *testing.T) {
	out := render(t, ModeSwitch(content.ModeTech, "/about"))

	assert.Contains(t, out, `action="/mode"`)
	assert.Contains(t, out, `name="return_to" value="/about"`)
	assert.Contains(t, out, `value="tech" class="mode-switch__option is-active" aria-pressed="true"`)
	assert.Contains(t, out, `value="consult" class="mode-switch__option" aria-pressed="false"`)
}

func TestAbout(t *testing.T) {
	out := renderPage(t, newAssembler(), About, store.New(content.DefaultMode))
	about := content.Default().Site().About

	assert.Contains(t, out, `id="`+AnchorTeam+`"`)
	assert.Equal(t, len(about.Team), strings.Count(out, `class="card team-card`))
	assert.Equal(t, len(about.Stats), strings.Count(out, `class="card stat-card`))
	assert.Contains(t, out, "<strong>", "rich text emphasis is rendered")
	assert.Contains(t, out, `href="/roadmap#journey"`)
	assert.Contains(t, out, about.CTA.Primary)
}

func TestAbout_IgnoresMode(t *testing.T) {
	a := newAssembler()
	assert.Equal(t,
		renderPage(t, a, About, store.New(content.ModeTech)),
		renderPage(t, a, About, store.New(content.ModeConsult)))
}

func TestRoadmap(t *testing.T) {
	out := renderPage(t, newAssembler(), Roadmap, store.New(content.DefaultMode))
	rm := content.Default().Site().Roadmap

	assert.Contains(t, out, `id="`+AnchorJourney+`"`)
	assert.Contains(t, out, `id="`+AnchorProjects+`"`)
	assert.Equal(t, len(rm.Milestones), strings.Count(out, `class="milestone milestone--`))
	assert.Contains(t, out, "milestone--right")
	assert.Equal(t, len(rm.Projects), strings.Count(out, `data-project="`))
}

func TestJourney_AlternatesUnsidedMilestones(t *testing.T) {
	a := newAssembler()
	out := render(t, a.journey([]content.Milestone{
		{Year: "2020", Title: "A"},
		{Year: "2021", Title: "B"},
	}))
	assert.Equal(t, 1, strings.Count(out, "milestone--left"))
	assert.Equal(t, 1, strings.Count(out, "milestone--right"))
}

func TestContact_FormBindsDraft(t *testing.T) {
	st := store.New(content.DefaultMode)
	require.NoError(t, st.SetContactFormField(store.FieldFullName, `Ada "The" Lovelace`))
	require.NoError(t, st.SetContactFormField(store.FieldTopic, "Partnership"))
	require.NoError(t, st.SetContactFormField(store.FieldMessage, "<b>hi</b>"))

	out := renderPage(t, newAssembler(), Contact, st)

	assert.Contains(t, out, `id="`+AnchorContactForm+`"`)
	assert.Contains(t, out, `action="/contact"`)
	assert.Contains(t, out, `data-field-sync="/contact/fields"`)
	for _, f := range store.Fields() {
		assert.Contains(t, out, `name="`+string(f)+`"`)
	}
	assert.Contains(t, out, `value="Ada &#34;The&#34; Lovelace"`)
	assert.Contains(t, out, `<option value="Partnership" selected>Partnership</option>`)
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;</textarea>")
	assert.NotContains(t, out, "form-banner")
	assert.Equal(t, 3, strings.Count(out, `class="channel-card glass-medium`))
}

func TestContact_KeepsUnknownTopic(t *testing.T) {
	st := store.New(content.DefaultMode)
	require.NoError(t, st.SetContactFormField(store.FieldTopic, "Hiring"))

	out := renderPage(t, newAssembler(), Contact, st)
	assert.Contains(t, out, `<option value="Hiring" selected>Hiring</option>`)
}

func TestContact_SubmissionBanner(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("submitted", func(t *testing.T) {
		st := store.New(content.DefaultMode)
		st.MarkSubmitted("rcpt-1", at)
		out := renderPage(t, newAssembler(), Contact, st)
		assert.Contains(t, out, "form-banner--success")
		assert.Contains(t, out, "Reference: rcpt-1")
	})

	t.Run("field errors", func(t *testing.T) {
		st := store.New(content.DefaultMode)
		st.MarkFailed(map[store.Field]string{store.FieldMessage: "Message is required"}, at)
		out := renderPage(t, newAssembler(), Contact, st)
		assert.Contains(t, out, "form-banner--error")
		assert.Contains(t, out, "Please fill in the highlighted fields.")
		assert.Contains(t, out, `id="field-message-error"`)
		assert.Contains(t, out, "Message is required")
		assert.Equal(t, 1, strings.Count(out, `aria-invalid="true"`))
	})

	t.Run("delivery failure", func(t *testing.T) {
		st := store.New(content.DefaultMode)
		st.MarkFailed(nil, at)
		out := renderPage(t, newAssembler(), Contact, st)
		assert.Contains(t, out, "We could not send your message.")
	})
}

func TestRender_UnknownPage(t *testing.T) {
	_, err := newAssembler().Render(Page("blog"), store.New(content.DefaultMode))
	require.Error(t, err)
}

func TestTitle(t *testing.T) {
	a := newAssembler()
	assert.Equal(t, "Bigeen Solutions", a.Title(Home))
	assert.Equal(t, "About | Bigeen Solutions", a.Title(About))
	assert.Equal(t, "Contact | Bigeen Solutions", a.Title(Contact))
}
