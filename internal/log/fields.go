// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRequestID = "request_id"
	FieldSessionID = "session_id"
	FieldReceiptID = "receipt_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Site state fields
	FieldMode    = "mode"
	FieldOldMode = "old_mode"
	FieldNewMode = "new_mode"
	FieldField   = "field"
	FieldTopic   = "topic"
	FieldOutcome = "outcome"

	// HTTP fields
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldBytes      = "bytes"
	FieldDurationMS = "duration_ms"
	FieldRemoteAddr = "remote_addr"
)
