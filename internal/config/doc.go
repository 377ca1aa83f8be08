// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for the site daemon.
//
// Precedence is ENV (BIGEEN_*) > YAML file > defaults. The file is parsed
// strictly: unknown keys and trailing documents are errors. Holder reloads
// the file on change and keeps the previous configuration when the new one
// does not validate.
package config
