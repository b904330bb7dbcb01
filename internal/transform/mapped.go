package transform

import (
	"fmt"

	"github.com/jmcpheron/ccc-schedule/internal/mapper"
)

func init() {
	Register("mapped", func(cfg *Config) Transformer {
		return &Mapped{Base: NewBase(cfg)}
	})
}

// Mapped is a purely configuration-driven transformer for sources that
// need no bespoke business rules: every canonical field is resolved
// through the institution config's data_mappings, including status and
// instruction-mode remap tables. Institutions onboarding a new Banner
// or Colleague export usually start here and only graduate to a
// dedicated variant when the feed needs custom parsing.
type Mapped struct {
	Base
}

// Source implements Transformer.
func (t *Mapped) Source() string {
	return "mapped"
}

// ExtractTermInfo implements Transformer. Term fields come from the
// config's term mappings; defaults for the date range come from the
// config itself since a generic adapter has no per-term calendar.
func (t *Mapped) ExtractTermInfo(input map[string]any) map[string]any {
	mappings, ok := t.Config().DataMappings["term"].(map[string]any)
	if !ok {
		return nil
	}

	term := map[string]any{}
	for _, key := range []string{"code", "name", "start_date", "end_date"} {
		if value := mapper.MapField(input, mappings[key]); value != nil {
			term[key] = value
		}
	}
	return term
}

// TransformCourses implements Transformer.
func (t *Mapped) TransformCourses(input map[string]any) ([]map[string]any, error) {
	courseMappings, _ := t.Config().DataMappings["course"].(map[string]any)

	recordsPath, _ := t.Config().DataMappings["records"].(string)
	if recordsPath == "" {
		recordsPath = "courses"
	}
	records, _ := mapper.GetNestedValue(input, recordsPath).([]any)

	var order []string
	courses := map[string]map[string]any{}

	for i, rec := range records {
		record, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("mapped: course record %d is not an object", i)
		}

		subject := mapper.Stringify(mapper.MapField(record, valueOr(courseMappings, "subject", "subject")))
		number := mapper.Stringify(mapper.MapField(record, valueOr(courseMappings, "course_number", "course_number")))
		if subject == "" || number == "" {
			return nil, fmt.Errorf("mapped: course record %d missing subject or course_number", i)
		}

		key := subject + "-" + number
		course, seen := courses[key]
		if !seen {
			course = map[string]any{
				"course_id":     key,
				"subject":       subject,
				"course_number": number,
				"title":         mapper.MapField(record, valueOr(courseMappings, "title", "title")),
				"units":         parseUnits(mapper.MapField(record, valueOr(courseMappings, "units", "units"))),
				"sections":      []map[string]any{},
			}
			if tmpl, ok := courseMappings["description_template"].(string); ok {
				course["description"] = mapper.ApplyTemplate(tmpl, record)
			}
			courses[key] = course
			order = append(order, key)
		}

		sections := course["sections"].([]map[string]any)
		course["sections"] = append(sections, t.Section(t, record))
	}

	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		out = append(out, courses[key])
	}
	return out, nil
}

// TransformMeetings implements Transformer. The generic adapter expects
// meeting entries with pre-split day strings and 12-hour times under the
// configured meetings path; sections without any entries get an arranged
// placeholder so every section carries at least one meeting.
func (t *Mapped) TransformMeetings(record map[string]any) []map[string]any {
	mappings := t.Config().SectionMappings()
	meetingsPath, _ := mappings["meetings"].(string)
	if meetingsPath == "" {
		meetingsPath = "meetings"
	}

	location := mapper.Stringify(mapper.MapField(record, valueOr(mappings, "location", "location")))

	var meetings []map[string]any
	raw, _ := mapper.GetNestedValue(record, meetingsPath).([]any)
	for _, rm := range raw {
		entry, ok := rm.(map[string]any)
		if !ok {
			continue
		}

		days := ParseDays(mapper.Stringify(valueOr(entry, "days", "")))
		start, _ := ParseTime(mapper.Stringify(valueOr(entry, "start_time", "")))
		end, _ := ParseTime(mapper.Stringify(valueOr(entry, "end_time", "")))

		if len(days) == 0 && start == "" && end == "" {
			meetings = append(meetings, arrangedMeeting(orDefault(location, "ARR")))
			continue
		}

		meetings = append(meetings, map[string]any{
			"type":       "Lecture",
			"days":       days,
			"start_time": nullable(start),
			"end_time":   nullable(end),
			"location":   ParseLocation(location),
		})
	}

	if len(meetings) == 0 {
		meetings = append(meetings, arrangedMeeting(orDefault(location, "TBD")))
	}
	return meetings
}

// TransformInstructor implements Transformer.
func (t *Mapped) TransformInstructor(record map[string]any) map[string]any {
	mappings, _ := t.Config().SectionMappings()["instructor"].(map[string]any)
	if mappings == nil {
		return nil
	}

	name := mapper.Stringify(mapper.MapField(record, valueOr(mappings, "name", "instructor")))
	if name == "" || name == "TBA" {
		return nil
	}

	instructor := map[string]any{"name": name}
	if email := mapper.MapField(record, mappings["email"]); email != nil {
		instructor["email"] = email
	}
	return instructor
}

// TransformDates implements Transformer.
func (t *Mapped) TransformDates(record map[string]any) map[string]any {
	mappings, _ := t.Config().SectionMappings()["dates"].(map[string]any)
	if mappings == nil {
		return nil
	}

	dates := map[string]any{}
	if start := mapper.MapField(record, mappings["start"]); start != nil {
		dates["start"] = start
	}
	if end := mapper.MapField(record, mappings["end"]); end != nil {
		dates["end"] = end
	}
	if weeks := mapper.MapField(record, mappings["duration_weeks"]); weeks != nil {
		dates["duration_weeks"] = weeks
	}
	if len(dates) == 0 {
		return nil
	}
	return dates
}
