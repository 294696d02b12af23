// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go struct JSON tags and the CUE schema field names
// aligned, so a renamed field cannot be silently dropped while loading.

// cueFields returns the regular field names of a CUE struct definition.
func cueFields(t *testing.T, val cue.Value) map[string]bool {
	t.Helper()

	fields := make(map[string]bool)
	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields[strings.TrimSuffix(sel.String(), "?")] = true
	}
	return fields
}

// goJSONTags returns the JSON names of the exported fields of typ.
func goJSONTags(t *testing.T, typ reflect.Type) map[string]bool {
	t.Helper()

	if typ.Kind() != reflect.Struct {
		t.Fatalf("expected struct type, got %s", typ.Kind())
	}

	fields := make(map[string]bool)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = true
	}
	return fields
}

func TestSchemaSync(t *testing.T) {
	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{"#Config", reflect.TypeFor[Config]()},
		{"#ProjectConfig", reflect.TypeFor[ProjectConfig]()},
		{"#ToolchainConfig", reflect.TypeFor[ToolchainConfig]()},
		{"#SearchConfig", reflect.TypeFor[SearchConfig]()},
		{"#UIConfig", reflect.TypeFor[UIConfig]()},
		{"#LogConfig", reflect.TypeFor[LogConfig]()},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			def := schema.LookupPath(cue.ParsePath(tt.def))
			if def.Err() != nil {
				t.Fatalf("failed to lookup CUE definition %s: %v", tt.def, def.Err())
			}

			cueNames := cueFields(t, def)
			goNames := goJSONTags(t, tt.typ)

			for name := range cueNames {
				if !goNames[name] {
					t.Errorf("CUE field %q not found in Go struct %s", name, tt.typ.Name())
				}
			}
			for name := range goNames {
				if !cueNames[name] {
					t.Errorf("Go JSON tag %q of %s not found in CUE schema", name, tt.typ.Name())
				}
			}
		})
	}
}
