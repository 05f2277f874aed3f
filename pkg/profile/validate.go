package profile

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError is one problem found in a profile.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a profile.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no errors"
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(errs), strings.Join(messages, "\n  - "))
}

var (
	namePattern    = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// Validate checks the profile and returns ValidationErrors, or nil.
func (p *Profile) Validate() error {
	var errs ValidationErrors
	add := func(field, message string, value interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: message, Value: value})
	}

	switch {
	case p.Name == "":
		add("name", "required field is missing", nil)
	case !namePattern.MatchString(p.Name):
		add("name", "must be lowercase alphanumeric with hyphens, starting with a letter", p.Name)
	}

	switch {
	case p.Version == "":
		add("version", "required field is missing", nil)
	case !versionPattern.MatchString(p.Version):
		add("version", "must be semantic version (e.g., 1.0.0)", p.Version)
	}

	if len(p.Codes) == 0 {
		add("codes", "at least one code is required", nil)
	}
	for i, spec := range p.Codes {
		field := fmt.Sprintf("codes[%d]", i)
		if spec.Code == "" {
			add(field+".code", "required field is missing", nil)
		} else if _, err := regexp.Compile(spec.Code); err != nil {
			add(field+".code", "invalid regex", spec.Code)
		}
		if spec.Arg != "" {
			if _, err := regexp.Compile(spec.Arg); err != nil {
				add(field+".arg", "invalid regex", spec.Arg)
			}
		}
	}

	if len(p.Boundaries) == 0 {
		add("boundaries", "at least one boundary is required", nil)
	}
	seen := make(map[string]bool)
	for i, rule := range p.Boundaries {
		field := fmt.Sprintf("boundaries[%d]", i)
		checkCodeArg(add, field+".code", rule.Code)
		if seen[rule.Code] {
			add(field+".code", "duplicate boundary", rule.Code)
		}
		seen[rule.Code] = true
		for j, sub := range rule.Subdocuments {
			checkCodeArg(add, fmt.Sprintf("%s.subdocuments[%d]", field, j), sub)
		}
	}

	if p.Heading == "" {
		add("heading", "required field is missing", nil)
	} else {
		checkCodeArg(add, "heading", p.Heading)
	}

	for i, rule := range p.Continuations {
		field := fmt.Sprintf("continuations[%d]", i)
		checkCodeArg(add, field+".code", rule.Code)
		checkCodeArg(add, field+".extends", rule.Extends)
		if rule.Code != "" && rule.Code == rule.Extends {
			add(field, "a code cannot extend itself", rule.Code)
		}
	}

	if p.FootnoteDefinition != "" {
		checkCodeArg(add, "footnote_definition", p.FootnoteDefinition)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkCodeArg(add func(string, string, interface{}), field, value string) {
	if value == "" {
		add(field, "required field is missing", nil)
		return
	}
	if _, err := ParseCodeArg(value); err != nil {
		add(field, "must be a code followed by an optional number (e.g., I80)", value)
	}
}
