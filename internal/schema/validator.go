// Package schema is the acceptance gate for canonical schedule
// documents: tier one checks the document against the declarative base
// schema, tier two (strict mode) enforces institution-specific feature
// rules from the college config.
//
// Well-formed-but-invalid data never produces a Go error — every
// violation is collected into the returned list. Errors are reserved
// for malformed input: unreadable files, invalid JSON, bad schemas.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jmcpheron/ccc-schedule/internal/transform"
)

// Validator validates canonical documents against a base schema plus
// optional institution feature rules. Safe for concurrent use once
// constructed.
type Validator struct {
	schema *jsonschema.Schema
	cfg    *transform.Config
}

// New compiles the base schema and attaches an optional institution
// config for strict-mode checks (pass nil to validate structure only).
func New(baseSchema []byte, cfg *transform.Config) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("base.json", bytes.NewReader(baseSchema)); err != nil {
		return nil, fmt.Errorf("load base schema: %w", err)
	}
	compiled, err := compiler.Compile("base.json")
	if err != nil {
		return nil, fmt.Errorf("compile base schema: %w", err)
	}
	return &Validator{schema: compiled, cfg: cfg}, nil
}

// NewFromFiles reads the base schema and optional institution config
// (empty path to skip) from disk.
func NewFromFiles(schemaPath, configPath string) (*Validator, error) {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read base schema: %w", err)
	}

	var cfg *transform.Config
	if configPath != "" {
		cfg, err = transform.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}
	return New(schemaData, cfg)
}

// Validate checks a canonical document. It returns validity plus every
// violation found; base-schema checking does not short-circuit, and
// strict feature rules run only when strict is set and an institution
// config was supplied.
func (v *Validator) Validate(doc map[string]any, strict bool) (bool, []string) {
	var violations []string

	if err := v.schema.Validate(normalize(doc)); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			violations = append(violations, flatten(ve)...)
		} else {
			violations = append(violations, fmt.Sprintf("Base schema: %v", err))
		}
	}

	if strict && v.cfg != nil {
		violations = append(violations, v.checkFeatures(doc)...)
	}

	return len(violations) == 0, violations
}

// flatten walks the validation error tree and reports each leaf cause,
// so every independent violation surfaces instead of just the root.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("Base schema: %s: %s", loc, ve.Message)}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}

// checkFeatures runs tier-two validation for each enabled feature flag
// in the institution config.
func (v *Validator) checkFeatures(doc map[string]any) []string {
	var violations []string
	features := v.cfg.Features

	if featureEnabled(features, "textbook_cost") {
		violations = append(violations, v.checkTextbookCost(doc)...)
	}
	if featureEnabled(features, "instruction_modes") {
		violations = append(violations, v.checkInstructionModes(doc)...)
	}
	if featureEnabled(features, "enrollment_tracking") {
		violations = append(violations, v.checkEnrollmentTracking(doc)...)
	}

	return violations
}

func (v *Validator) checkTextbookCost(doc map[string]any) []string {
	valid := map[string]bool{}
	feature, _ := v.cfg.Features["textbook_cost"].(map[string]any)
	categories, _ := feature["categories"].([]any)
	for _, c := range categories {
		if cat, ok := c.(map[string]any); ok {
			if code, ok := cat["code"].(string); ok {
				valid[code] = true
			}
		}
	}

	var violations []string
	eachSection(doc, func(section map[string]any) {
		attributes, _ := section["attributes"].(map[string]any)
		cost, _ := attributes["textbook_cost"].(string)
		if cost != "" && !valid[cost] {
			violations = append(violations, fmt.Sprintf(
				"Invalid textbook cost '%s' in section %v. Valid values: %v",
				cost, section["crn"], sortedKeys(valid)))
		}
	})
	return violations
}

func (v *Validator) checkInstructionModes(doc map[string]any) []string {
	// Mode configs come in two forms: a flat set of codes, or
	// descriptors keyed by internal name with a "code" field. Both
	// normalize to the same valid-code set.
	valid := map[string]bool{}
	feature, _ := v.cfg.Features["instruction_modes"].(map[string]any)
	modes, _ := feature["modes"].(map[string]any)
	for key, info := range modes {
		if desc, ok := info.(map[string]any); ok {
			if code, ok := desc["code"].(string); ok {
				valid[code] = true
				continue
			}
		}
		valid[key] = true
	}

	var violations []string
	eachSection(doc, func(section map[string]any) {
		mode, _ := section["instruction_mode"].(string)
		if mode != "" && !valid[mode] {
			violations = append(violations, fmt.Sprintf(
				"Invalid instruction mode '%s' in section %v. Valid values: %v",
				mode, section["crn"], sortedKeys(valid)))
		}
	})
	return violations
}

func (v *Validator) checkEnrollmentTracking(doc map[string]any) []string {
	feature, _ := v.cfg.Features["enrollment_tracking"].(map[string]any)
	rawFields, _ := feature["fields"].([]any)
	required := make([]string, 0, len(rawFields))
	for _, f := range rawFields {
		if name, ok := f.(string); ok {
			required = append(required, name)
		}
	}

	var violations []string
	eachSection(doc, func(section map[string]any) {
		attributes, _ := section["attributes"].(map[string]any)
		var missing []string
		for _, name := range required {
			if _, ok := attributes[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			violations = append(violations, fmt.Sprintf(
				"Section %v missing enrollment tracking fields: %v",
				section["crn"], missing))
		}
	})
	return violations
}

// eachSection visits every section of every course in a canonical
// document, tolerating either the wrapped or bare document form.
func eachSection(doc map[string]any, visit func(section map[string]any)) {
	root := doc
	if wrapped, ok := doc["schedule"].(map[string]any); ok {
		root = wrapped
	}

	courses, _ := root["courses"].([]any)
	for _, c := range courses {
		course, ok := c.(map[string]any)
		if !ok {
			continue
		}
		sections, _ := course["sections"].([]any)
		for _, s := range sections {
			if section, ok := s.(map[string]any); ok {
				visit(section)
			}
		}
	}
}

func featureEnabled(features map[string]any, name string) bool {
	feature, _ := features[name].(map[string]any)
	enabled, _ := feature["enabled"].(bool)
	return enabled
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize rebuilds the document with only JSON-native types so the
// schema library sees exactly what a decoded JSON payload would
// contain. Transformer output is already JSON-native apart from typed
// slices, which re-decode cleanly.
func normalize(doc map[string]any) any {
	return normalizeValue(doc)
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	case int:
		return float64(t)
	default:
		return v
	}
}
