// Package transform converts per-institution raw schedule feeds into
// canonical schedule documents. Each source institution supplies a
// Transformer implementing the five variant-specific operations; the
// shared orchestration in Transform assembles the document around them.
//
// Transformers are tolerant by design: source data is inherently messy,
// so field-level extraction failures (missing optional fields, malformed
// dates or times) degrade to defaults and are never fatal. Structural
// validation downstream is the single place such data is flagged.
package transform

import (
	"time"

	"github.com/jmcpheron/ccc-schedule/internal/mapper"
)

// DocumentVersion is the canonical schedule schema version emitted by
// all transformers.
const DocumentVersion = "1.0.0"

// Transformer is the capability set every source institution must
// implement. Inputs are generic JSON trees decoded from the raw feed;
// outputs are fragments of the canonical document.
type Transformer interface {
	// Source is the registry name of the institution feed, e.g. "rio-hondo".
	Source() string
	// Config exposes the institution configuration the transformer was
	// built from.
	Config() *Config
	// ExtractTermInfo derives the term block (code, name, start_date,
	// end_date) from the raw feed, applying the institution's default
	// date policy when the source omits term dates.
	ExtractTermInfo(input map[string]any) map[string]any
	// TransformCourses folds the feed's flat records into canonical
	// course entries, grouped by (subject, course_number) in first-seen
	// order, appending a transformed section per record. It fails only
	// when a record is missing a key the source contract guarantees;
	// optional-field problems degrade silently.
	TransformCourses(input map[string]any) ([]map[string]any, error)
	// TransformMeetings produces the canonical meeting list for one raw
	// section record. Implementations must return at least one meeting,
	// synthesizing an arranged placeholder when the source lists none.
	TransformMeetings(section map[string]any) []map[string]any
	// TransformInstructor returns the instructor block for a section, or
	// nil when the source names no real instructor (e.g. "TBA").
	TransformInstructor(section map[string]any) map[string]any
	// TransformDates returns the section date block, or nil when the
	// institution tracks no section dates.
	TransformDates(section map[string]any) map[string]any
}

// Transform runs the shared orchestration: metadata from static config
// plus the variant's term extraction, then the course fold. The result
// is a canonical document wrapped in the top-level "schedule" key.
func Transform(t Transformer, input map[string]any) (map[string]any, error) {
	cfg := t.Config()

	college := map[string]any{
		"id":   cfg.College["id"],
		"name": cfg.College["name"],
	}
	if district, ok := cfg.College["district"]; ok {
		college["district"] = district
	}

	metadata := map[string]any{
		"version":      DocumentVersion,
		"last_updated": time.Now().Format(time.RFC3339),
		"college":      college,
	}
	if term := t.ExtractTermInfo(input); len(term) > 0 {
		metadata["term"] = term
	}

	courses, err := t.TransformCourses(input)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"schedule": map[string]any{
			"metadata": metadata,
			"courses":  courses,
		},
	}, nil
}

// Base supplies the default mapping-driven extraction shared by
// transformers; embed it and override where the institution needs
// bespoke rules.
type Base struct {
	cfg *Config
}

// NewBase wraps a parsed institution config.
func NewBase(cfg *Config) Base {
	return Base{cfg: cfg}
}

// Config returns the institution configuration.
func (b Base) Config() *Config {
	return b.cfg
}

// Section builds a canonical section from the config's section
// mappings. Optional blocks (instruction mode, instructor, dates,
// attributes) are included only when they resolve to something.
func (b Base) Section(t Transformer, raw map[string]any) map[string]any {
	mappings := b.cfg.SectionMappings()

	section := map[string]any{
		"crn":        mapper.MapField(raw, mappings["crn"]),
		"status":     mapper.MapField(raw, mappings["status"]),
		"enrollment": b.Enrollment(raw),
		"meetings":   t.TransformMeetings(raw),
	}

	if modeMapping, ok := mappings["instruction_mode"]; ok {
		if mode := mapper.MapField(raw, modeMapping); mode != nil {
			section["instruction_mode"] = mode
		}
	}
	if instructor := t.TransformInstructor(raw); instructor != nil {
		section["instructor"] = instructor
	}
	if dates := t.TransformDates(raw); dates != nil {
		section["dates"] = dates
	}
	if attributes := b.Attributes(raw); len(attributes) > 0 {
		section["attributes"] = attributes
	}

	return section
}

// Enrollment extracts seat counts. Enrolled and capacity are always
// emitted (defaulting to 0); available and waitlist only when the
// config maps them and the source provides a value.
func (b Base) Enrollment(raw map[string]any) map[string]any {
	mappings, _ := b.cfg.SectionMappings()["enrollment"].(map[string]any)

	enrollment := map[string]any{
		"enrolled": intOrZero(mapper.MapField(raw, mappings["enrolled"])),
		"capacity": intOrZero(mapper.MapField(raw, mappings["capacity"])),
	}

	if availMapping, ok := mappings["available"]; ok {
		enrollment["available"] = intOrZero(mapper.MapField(raw, availMapping))
	}
	if wlMapping, ok := mappings["waitlist"]; ok {
		if waitlist := mapper.MapField(raw, wlMapping); waitlist != nil {
			enrollment["waitlist"] = waitlist
		}
	}

	return enrollment
}

// Attributes collects the open-ended institution-specific extras
// declared under the section attribute mappings. Only keys that resolve
// against the source are emitted.
func (b Base) Attributes(raw map[string]any) map[string]any {
	mappings, _ := b.cfg.SectionMappings()["attributes"].(map[string]any)

	attributes := map[string]any{}
	for name, attrMapping := range mappings {
		if value := mapper.MapField(raw, attrMapping); value != nil {
			attributes[name] = value
		}
	}
	return attributes
}

func intOrZero(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
