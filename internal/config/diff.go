// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"reflect"
	"sort"
	"strings"
)

// ChangeSummary describes the result of comparing two AppConfigs.
type ChangeSummary struct {
	ChangedFields   []string // YAML paths of changed fields, sorted
	RestartRequired bool     // True if any changed field is not hot-reloadable
}

// hotReloadable lists the fields applied without a restart.
var hotReloadable = map[string]struct{}{
	"log_level":              {},
	"site.default_mode":      {},
	"contact.require_fields": {},
}

// HotReloadable reports whether a change to path takes effect live.
func HotReloadable(path string) bool {
	_, ok := hotReloadable[path]
	return ok
}

// Diff compares two configurations and returns a summary of changes.
func Diff(old, next AppConfig) ChangeSummary {
	var s ChangeSummary
	s.compareStruct("", reflect.ValueOf(old), reflect.ValueOf(next))
	sort.Strings(s.ChangedFields)
	return s
}

// Empty reports whether nothing changed.
func (s ChangeSummary) Empty() bool { return len(s.ChangedFields) == 0 }

func (s *ChangeSummary) compareStruct(prefix string, oldVal, nextVal reflect.Value) {
	t := oldVal.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if !f.IsExported() || name == "-" {
			continue
		}

		fieldPath := name
		if prefix != "" {
			fieldPath = prefix + "." + name
		}

		ov := oldVal.Field(i)
		nv := nextVal.Field(i)
		if ov.Kind() == reflect.Struct {
			s.compareStruct(fieldPath, ov, nv)
			continue
		}
		if !reflect.DeepEqual(ov.Interface(), nv.Interface()) {
			s.ChangedFields = append(s.ChangedFields, fieldPath)
			if !HotReloadable(fieldPath) {
				s.RestartRequired = true
			}
		}
	}
}
