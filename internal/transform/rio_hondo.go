package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmcpheron/ccc-schedule/internal/mapper"
)

// Rio Hondo term date policy. The live feed carries no term calendar,
// so partial dates are completed against the term year and missing
// section dates fall back to the published term bounds.
const (
	rioHondoTermYear  = 2025
	rioHondoTermStart = "2025-08-25"
	rioHondoTermEnd   = "2025-12-20"
)

// rioHondoStatusMap normalizes the feed's status vocabulary.
// Unrecognized raw codes pass through unchanged; the strict schema
// validator decides whether they are acceptable.
var rioHondoStatusMap = map[string]string{
	"OPEN":       "Open",
	"CLOSED":     "Closed",
	"Waitlisted": "Waitlist",
	"CANCELLED":  "Cancelled",
}

// rioHondoModeMap is the exact delivery-method table; anything outside
// it goes through the substring heuristics in InferInstructionMode.
var rioHondoModeMap = map[string]string{
	"Online":      "ONL",
	"Online SYNC": "SYNC",
	"Hybrid":      "HYB",
	"Arranged":    "ARR",
	"In Person":   "INP",
}

var rioHondoModeCodes = ModeCodes{
	Online:   "ONL",
	Sync:     "SYNC",
	Hybrid:   "HYB",
	Arranged: "ARR",
	InPerson: "INP",
}

func init() {
	Register("rio-hondo", func(cfg *Config) Transformer {
		return &RioHondo{Base: NewBase(cfg)}
	})
}

// RioHondo transforms the Rio Hondo College collector feed. The feed is
// a flat list of section-grained records under "courses"; grouping into
// catalog courses happens here.
type RioHondo struct {
	Base
}

// Source implements Transformer.
func (t *RioHondo) Source() string {
	return "rio-hondo"
}

// ExtractTermInfo implements Transformer.
func (t *RioHondo) ExtractTermInfo(input map[string]any) map[string]any {
	return map[string]any{
		"code":       mapper.Stringify(valueOr(input, "term_code", "")),
		"name":       mapper.Stringify(valueOr(input, "term", "")),
		"start_date": rioHondoTermStart,
		"end_date":   rioHondoTermEnd,
	}
}

// TransformCourses implements Transformer. Records are folded into an
// ordered course map keyed by subject-number so output order matches
// first encounter in the feed.
func (t *RioHondo) TransformCourses(input map[string]any) ([]map[string]any, error) {
	records, _ := input["courses"].([]any)

	var order []string
	courses := map[string]map[string]any{}

	for i, rec := range records {
		record, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rio-hondo: course record %d is not an object", i)
		}

		subject, _ := record["subject"].(string)
		number := mapper.Stringify(valueOr(record, "course_number", ""))
		if subject == "" || number == "" {
			return nil, fmt.Errorf("rio-hondo: course record %d missing subject or course_number", i)
		}

		key := subject + "-" + number
		course, seen := courses[key]
		if !seen {
			title, _ := record["title"].(string)
			units := parseUnits(record["units"])
			course = map[string]any{
				"course_id":     key,
				"subject":       subject,
				"course_number": number,
				"title":         title,
				"units":         units,
				"description": mapper.ApplyTemplate("{{title}} - {{units}} units", map[string]any{
					"title": title,
					"units": record["units"],
				}),
				"sections": []map[string]any{},
			}
			courses[key] = course
			order = append(order, key)
		}

		sections := course["sections"].([]map[string]any)
		course["sections"] = append(sections, t.transformSection(record))
	}

	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		out = append(out, courses[key])
	}
	return out, nil
}

// transformSection builds one canonical section from a feed record.
func (t *RioHondo) transformSection(record map[string]any) map[string]any {
	rawStatus := mapper.Stringify(valueOr(record, "status", "Open"))
	status := rawStatus
	if mapped, ok := rioHondoStatusMap[rawStatus]; ok {
		status = mapped
	}

	delivery := mapper.Stringify(valueOr(record, "delivery_method", ""))
	enrollment, _ := record["enrollment"].(map[string]any)

	section := map[string]any{
		"crn":              mapper.Stringify(valueOr(record, "crn", "")),
		"status":           status,
		"instruction_mode": InferInstructionMode(delivery, rioHondoModeMap, rioHondoModeCodes),
		"enrollment": map[string]any{
			"enrolled":  intOrZero(enrollment["actual"]),
			"capacity":  intOrZero(enrollment["capacity"]),
			"available": intOrZero(enrollment["remaining"]),
		},
		"meetings": t.TransformMeetings(record),
	}

	if instructor := t.TransformInstructor(record); instructor != nil {
		section["instructor"] = instructor
	}
	if dates := t.TransformDates(record); dates != nil {
		section["dates"] = dates
	}

	attributes := map[string]any{}
	for _, key := range []string{"zero_textbook_cost", "section_type", "weeks"} {
		if value, ok := record[key]; ok {
			attributes[key] = value
		}
	}
	if len(attributes) > 0 {
		section["attributes"] = attributes
	}

	return section
}

// TransformMeetings implements Transformer. Every section ends up with
// at least one meeting: an arranged placeholder is synthesized when the
// feed lists none.
func (t *RioHondo) TransformMeetings(record map[string]any) []map[string]any {
	location := mapper.Stringify(valueOr(record, "location", ""))

	var meetings []map[string]any
	rawMeetings, _ := record["meeting_times"].([]any)
	for _, rm := range rawMeetings {
		raw, ok := rm.(map[string]any)
		if !ok {
			continue
		}

		if arranged, _ := raw["is_arranged"].(bool); arranged {
			meetings = append(meetings, arrangedMeeting(orDefault(location, "ARR")))
			continue
		}

		start, _ := ParseTime(mapper.Stringify(valueOr(raw, "start_time", "")))
		end, _ := ParseTime(mapper.Stringify(valueOr(raw, "end_time", "")))
		meetings = append(meetings, map[string]any{
			"type":       "Lecture",
			"days":       ParseDays(mapper.Stringify(valueOr(raw, "days", ""))),
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

// TransformInstructor implements Transformer. Placeholder names ("TBA")
// omit the instructor block entirely rather than emitting an empty one.
func (t *RioHondo) TransformInstructor(record map[string]any) map[string]any {
	name := mapper.Stringify(valueOr(record, "instructor", ""))
	if name == "" || name == "TBA" {
		return nil
	}

	email := mapper.Stringify(valueOr(record, "instructor_email", ""))
	if email == "" {
		email = strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@riohondo.edu"
	}

	return map[string]any{"name": name, "email": email}
}

// TransformDates implements Transformer. MM/DD fragments are completed
// against the term year; missing dates take the term bounds.
func (t *RioHondo) TransformDates(record map[string]any) map[string]any {
	dates := map[string]any{}

	if start := mapper.Stringify(valueOr(record, "start_date", "")); start != "" {
		dates["start"] = CompleteDate(start, rioHondoTermYear)
	} else {
		dates["start"] = rioHondoTermStart
	}

	if end := mapper.Stringify(valueOr(record, "end_date", "")); end != "" {
		dates["end"] = CompleteDate(end, rioHondoTermYear)
	} else {
		dates["end"] = rioHondoTermEnd
	}

	if weeks, ok := record["weeks"]; ok {
		dates["duration_weeks"] = weeks
	}

	return dates
}

func arrangedMeeting(room string) map[string]any {
	return map[string]any{
		"type":       "Lecture",
		"days":       []string{},
		"start_time": nil,
		"end_time":   nil,
		"location":   map[string]any{"building": "TBD", "room": room},
	}
}

// parseUnits reads a unit count that sources ship as either a number or
// a numeric string. Unparseable input degrades to 0.
func parseUnits(v any) float64 {
	switch u := v.(type) {
	case float64:
		return u
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(u), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func valueOr(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return fallback
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
