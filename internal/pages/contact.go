// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/ui"
)

// Form endpoints. The field endpoint accepts one field at a time so the
// draft survives navigation without a full submit.
const (
	ContactSubmitPath = "/contact"
	ContactFieldsPath = "/contact/fields"
)

func (a *Assembler) contact(snap store.Snapshot) g.Node {
	c := a.registry.Site().Contact
	return g.Group{
		pageHero("contact", c.Hero),
		Section(Class("contact"),
			Div(Class("container contact__grid"),
				Div(Class("contact__channels "+a.kit.Motion.Class(motion.SlideInLeft)), a.kit.Motion.Attrs(motion.SlideInLeft),
					g.Map(c.Channels, func(ch content.ContactChannel) g.Node {
						return a.kit.ContactChannelCard(ch, ui.WithAccent(a.accent))
					}),
					g.If(len(c.Socials) > 0, Div(Class("contact__socials"),
						P(Class("text-body2"), g.Text("Follow us")),
						ui.SocialLinks(c.Socials, 22),
					)),
				),
				a.contactForm(c, snap),
			),
		),
	}
}

func (a *Assembler) contactForm(c content.Contact, snap store.Snapshot) g.Node {
	errs := snap.Submission.FieldErrors
	return Div(
		ID(AnchorContactForm),
		Class("contact__form card glass-medium "+a.kit.Motion.Class(motion.SlideInRight)),
		a.kit.Motion.Attrs(motion.SlideInRight),
		H2(Class("text-h4"), g.Text(c.FormTitle)),
		submissionBanner(snap.Submission),
		Form(
			Method("post"),
			Action(ContactSubmitPath),
			g.Attr("data-field-sync", ContactFieldsPath),
			g.Attr("novalidate"),
			Div(Class("form-row"),
				textField(store.FieldFullName, "text", "name", snap.Form, errs),
				textField(store.FieldWorkEmail, "email", "email", snap.Form, errs),
			),
			textField(store.FieldCompanyName, "text", "organization", snap.Form, errs),
			topicField(c.Topics, snap.Form.Topic, errs),
			messageField(snap.Form.Message, errs),
			a.kit.SubmitButton("Send Message", ui.WithIcon("arrow-right")),
		),
	)
}

func inputID(f store.Field) string { return "field-" + string(f) }

// fieldWrap renders the label, the control and any error for one field.
func fieldWrap(f store.Field, errs map[store.Field]string, control g.Node) g.Node {
	msg, bad := errs[f]
	class := "form-field"
	if bad {
		class += " has-error"
	}
	return Div(Class(class),
		Label(For(inputID(f)), g.Text(f.Label())),
		control,
		g.If(bad, P(Class("form-field__error"), ID(inputID(f)+"-error"), Role("alert"), g.Text(msg))),
	)
}

func controlAttrs(f store.Field, errs map[store.Field]string) g.Group {
	_, bad := errs[f]
	return g.Group{
		ID(inputID(f)),
		g.Attr("name", string(f)),
		g.If(bad, g.Attr("aria-invalid", "true")),
		g.If(bad, g.Attr("aria-describedby", inputID(f)+"-error")),
	}
}

func textField(f store.Field, typ, autocomplete string, form store.ContactForm, errs map[store.Field]string) g.Node {
	return fieldWrap(f, errs, Input(
		Type(typ),
		Class("input glass-light"),
		controlAttrs(f, errs),
		g.Attr("autocomplete", autocomplete),
		Value(form.Get(f)),
	))
}

// topicField renders the topic select. A stored topic that is not in the
// content list is kept as an extra option so no draft value is lost.
func topicField(topics []string, current string, errs map[store.Field]string) g.Node {
	known := current == ""
	for _, t := range topics {
		if t == current {
			known = true
			break
		}
	}
	opt := func(t string) g.Node {
		return Option(Value(t), g.If(t == current, Selected()), g.Text(t))
	}
	return fieldWrap(store.FieldTopic, errs, Select(
		Class("input glass-light"),
		controlAttrs(store.FieldTopic, errs),
		Option(Value(""), g.If(current == "", Selected()), g.Text("Select a topic")),
		g.Map(topics, opt),
		g.If(!known, opt(current)),
	))
}

func messageField(current string, errs map[store.Field]string) g.Node {
	return fieldWrap(store.FieldMessage, errs, Textarea(
		Class("input glass-light"),
		controlAttrs(store.FieldMessage, errs),
		g.Attr("rows", "5"),
		g.Text(current),
	))
}

func submissionBanner(s store.Submission) g.Node {
	switch s.Status {
	case store.StatusSubmitted:
		return Div(Class("form-banner form-banner--success"), Role("status"),
			ui.Icon("check-circle", 20),
			Span(g.Text("Thanks! Your message has been sent.")),
			g.If(s.ReceiptID != "", Span(Class("form-banner__receipt"), g.Text("Reference: "+s.ReceiptID))),
		)
	case store.StatusFailed:
		text := "We could not send your message. Please try again."
		if len(s.FieldErrors) > 0 {
			text = "Please fill in the highlighted fields."
		}
		return Div(Class("form-banner form-banner--error"), Role("alert"),
			ui.Icon("warning", 20),
			Span(g.Text(text)),
		)
	default:
		return nil
	}
}
