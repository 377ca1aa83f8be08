// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by the site's spans.
const (
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"
	HTTPRequestIDKey  = "http.request_id"

	SiteModeKey = "site.mode"
	SitePageKey = "site.page"

	SessionNewKey = "session.new"

	ContactOutcomeKey = "contact.outcome"
	ContactFieldKey   = "contact.field"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// PageAttributes describes a rendered page. Empty values are omitted.
func PageAttributes(page, mode string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if page != "" {
		attrs = append(attrs, attribute.String(SitePageKey, page))
	}
	if mode != "" {
		attrs = append(attrs, attribute.String(SiteModeKey, mode))
	}
	return attrs
}

// ContactAttributes describes a contact form submission.
func ContactAttributes(outcome string, fieldErrors int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ContactOutcomeKey, outcome),
		attribute.Int("contact.field_errors", fieldErrors),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
