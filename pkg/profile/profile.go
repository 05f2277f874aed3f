// Package profile describes a locator dialect in YAML: its control codes,
// document boundaries and tree-building quirks. Profiles compile into the
// tables used by the locator, group and tree packages.
package profile

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/tree"
)

//go:embed uscode.yaml
var defaultProfile []byte

// Profile is the YAML form of a locator dialect.
type Profile struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`

	Codes              []locator.CodeSpec `yaml:"codes"`
	Boundaries         []BoundaryRule     `yaml:"boundaries"`
	Heading            string             `yaml:"heading"`
	Continuations      []ContinuationRule `yaml:"continuations,omitempty"`
	FootnoteDefinition string             `yaml:"footnote_definition,omitempty"`

	// Path is the file the profile was loaded from, if any.
	Path string `yaml:"-"`
}

// BoundaryRule opens a top-level document at Code. Subdocuments lists the
// codes that open sub-documents inside it.
type BoundaryRule struct {
	Code         string   `yaml:"code"`
	Subdocuments []string `yaml:"subdocuments,omitempty"`
}

// ContinuationRule places lines coded Code under the parent of the last
// node coded Extends.
type ContinuationRule struct {
	Code    string `yaml:"code"`
	Extends string `yaml:"extends"`
}

// Compiled holds the runtime tables of a profile.
type Compiled struct {
	Decoder    *locator.Decoder
	Boundaries group.Boundaries
	Rules      tree.Rules
}

// Default returns the built-in US Code profile.
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("profile: built-in profile is invalid: %v", err))
	}
	return p
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads, decodes and validates the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

var codeArgPattern = regexp.MustCompile(`^([A-Za-z]+)(\d*)$`)

// ParseCodeArg splits a codearg such as "I80" into code and argument.
func ParseCodeArg(s string) (locator.CodeArg, error) {
	m := codeArgPattern.FindStringSubmatch(s)
	if m == nil {
		return locator.CodeArg{}, fmt.Errorf("invalid codearg %q", s)
	}
	return locator.CodeArg{Code: m[1], Arg: m[2]}, nil
}

// Compile builds the decoder, boundary table and tree rules of the profile.
func (p *Profile) Compile() (*Compiled, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	decoder, err := locator.NewDecoder(p.Codes, locator.DefaultEscapes)
	if err != nil {
		return nil, fmt.Errorf("compiling codes of %q: %w", p.Name, err)
	}

	c := &Compiled{
		Decoder: decoder,
		Boundaries: group.Boundaries{
			Top: make(map[locator.CodeArg][]locator.CodeArg, len(p.Boundaries)),
		},
	}
	for _, rule := range p.Boundaries {
		top, _ := ParseCodeArg(rule.Code)
		subs := make([]locator.CodeArg, 0, len(rule.Subdocuments))
		for _, s := range rule.Subdocuments {
			sub, _ := ParseCodeArg(s)
			subs = append(subs, sub)
		}
		c.Boundaries.Top[top] = subs
	}
	c.Boundaries.Heading, _ = ParseCodeArg(p.Heading)

	if len(p.Continuations) > 0 {
		c.Rules.Continuations = make(map[locator.CodeArg]locator.CodeArg, len(p.Continuations))
	}
	for _, rule := range p.Continuations {
		code, _ := ParseCodeArg(rule.Code)
		extends, _ := ParseCodeArg(rule.Extends)
		c.Rules.Continuations[code] = extends
	}
	if p.FootnoteDefinition != "" {
		c.Rules.FootnoteDefinition, _ = ParseCodeArg(p.FootnoteDefinition)
	}
	return c, nil
}
