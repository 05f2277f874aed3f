package profile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/tree"
)

const customProfile = `
name: custom
version: 0.1.0
codes:
  - {code: I, arg: '\d{2}'}
  - {code: R, arg: '\d{2}'}
boundaries:
  - code: R01
  - code: I80
    subdocuments: [I89]
heading: I74
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultMatchesPackageDefaults(t *testing.T) {
	p := Default()
	if p.Name != "uscode" {
		t.Errorf("Name = %q, want %q", p.Name, "uscode")
	}
	if !reflect.DeepEqual(p.Codes, locator.DefaultCodes) {
		t.Errorf("Codes = %v, want locator.DefaultCodes", p.Codes)
	}

	c, err := p.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !reflect.DeepEqual(c.Boundaries, group.DefaultBoundaries()) {
		t.Errorf("Boundaries = %+v, want %+v", c.Boundaries, group.DefaultBoundaries())
	}
	if !reflect.DeepEqual(c.Rules, tree.DefaultRules()) {
		t.Errorf("Rules = %+v, want %+v", c.Rules, tree.DefaultRules())
	}

	line, ok := c.Decoder.DecodeString("\x07I80§ 1")
	if !ok || line.CodeArg().String() != "I80" {
		t.Errorf("Decoder.DecodeString() = %v, %v", line, ok)
	}
}

func TestParseCodeArg(t *testing.T) {
	tests := []struct {
		input   string
		want    locator.CodeArg
		wantErr bool
	}{
		{input: "I80", want: locator.CodeArg{Code: "I", Arg: "80"}},
		{input: "F5800", want: locator.CodeArg{Code: "F", Arg: "5800"}},
		{input: "K", want: locator.CodeArg{Code: "K"}},
		{input: "gs", want: locator.CodeArg{Code: "gs"}},
		{input: "80", wantErr: true},
		{input: "I8x", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCodeArg(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCodeArg(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCodeArg(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
		fields []string
	}{
		{name: "default is valid", mutate: func(p *Profile) {}},
		{
			name:   "missing name and version",
			mutate: func(p *Profile) { p.Name, p.Version = "", "" },
			fields: []string{"name", "version"},
		},
		{
			name:   "bad name",
			mutate: func(p *Profile) { p.Name = "US Code" },
			fields: []string{"name"},
		},
		{
			name:   "bad arg regex",
			mutate: func(p *Profile) { p.Codes = []locator.CodeSpec{{Code: "I", Arg: `(\d{2}`}} },
			fields: []string{"codes[0].arg"},
		},
		{
			name: "bad boundary codes",
			mutate: func(p *Profile) {
				p.Boundaries = []BoundaryRule{{Code: "80", Subdocuments: []string{"I89", "?"}}}
			},
			fields: []string{"boundaries[0].code", "boundaries[0].subdocuments[1]"},
		},
		{
			name:   "self continuation",
			mutate: func(p *Profile) { p.Continuations = []ContinuationRule{{Code: "I32", Extends: "I32"}} },
			fields: []string{"continuations[0]"},
		},
		{
			name:   "no heading",
			mutate: func(p *Profile) { p.Heading = "" },
			fields: []string{"heading"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := p.Validate()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			if !reflect.DeepEqual(got, tt.fields) {
				t.Errorf("Validate() fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", customProfile)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Path != path || p.Version != "0.1.0" {
		t.Errorf("Load() = %+v", p)
	}

	c, err := p.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := c.Boundaries.Top[locator.CodeArg{Code: "R", Arg: "01"}]; len(got) != 0 {
		t.Errorf("R01 sub-boundaries = %v, want none", got)
	}
	if c.Rules.Continuations != nil || !c.Rules.FootnoteDefinition.IsZero() {
		t.Errorf("Rules = %+v, want empty", c.Rules)
	}
	if _, ok := c.Decoder.DecodeString("\x07F5800"); ok {
		t.Error("custom decoder accepted an F code it does not define")
	}

	bad := writeFile(t, dir, "bad.yaml", "name: [")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("Load(bad) error = %v, want YAML error", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) should return error")
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry(nil)

	if err := registry.Register(Default()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(Default()); err == nil {
		t.Error("Register() duplicate should return error")
	}
	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) should return error")
	}

	next := Default()
	next.Version = "1.1.0"
	if err := registry.Register(next); err != nil {
		t.Errorf("Register() new version error = %v", err)
	}
	if p, _ := registry.Get("uscode"); p.Version != "1.1.0" {
		t.Errorf("Get() version = %s, want 1.1.0", p.Version)
	}

	if err := registry.Unregister("uscode"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
	if err := registry.Unregister("uscode"); err == nil {
		t.Error("Unregister() missing should return error")
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}
}

func TestRegistryLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", customProfile)
	writeFile(t, dir, "uscode.yml", string(defaultProfile))
	writeFile(t, dir, "README.md", "not a profile")

	registry := NewRegistry(nil)
	if err := registry.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}

	var names []string
	for _, p := range registry.List() {
		names = append(names, p.Name)
	}
	if want := []string{"custom", "uscode"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	writeFile(t, dir, "broken.yaml", "name: broken\n")
	if err := registry.Reload(); err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("Reload() error = %v, want broken.yaml reported", err)
	}
	if registry.Count() != 2 {
		t.Errorf("Count() after Reload() = %d, want 2", registry.Count())
	}
}

func TestRegistryLoadDirectoryNonExistent(t *testing.T) {
	registry := NewRegistry(nil)
	if err := registry.LoadDirectory(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDirectory() error = %v, want nil", err)
	}
	if err := NewRegistry(nil).Reload(); err == nil {
		t.Error("Reload() without directory should return error")
	}
	if err := NewRegistry(nil).Watch(); err == nil {
		t.Error("Watch() without directory should return error")
	}
}

func TestRegistryWatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping watch test in short mode")
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", customProfile)

	registry := NewRegistry(nil)
	if err := registry.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}

	changed := make(chan string, 8)
	registry.SetOnChange(func(event string, p *Profile) {
		changed <- event
	})
	if err := registry.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer registry.StopWatch()

	time.Sleep(100 * time.Millisecond)
	updated := strings.Replace(customProfile, "version: 0.1.0", "version: 0.2.0", 1)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Skip("Watch() did not report the change in time (may be CI environment)")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p, ok := registry.Get("custom"); ok && p.Version == "0.2.0" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("registry did not pick up the new version")
}
