package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mappedConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := ParseConfig([]byte(`{
		"college": {"id": "west-valley", "name": "West Valley College"},
		"features": {},
		"data_mappings": {
			"records": "data.classes",
			"term": {
				"code": "term.srcdb",
				"name": "term.name"
			},
			"course": {
				"subject": "subjectCode",
				"course_number": "catalogNumber",
				"title": "courseTitle",
				"units": "creditHours",
				"description_template": "{{courseTitle}} ({{creditHours}} units)"
			},
			"section": {
				"crn": "registrationNumber",
				"status": {
					"field": "enrollmentStatus",
					"mapping": {"A": "Open", "C": "Closed"}
				},
				"instruction_mode": {
					"field": "deliveryCode",
					"mapping": {"W": "ONL", "P": "INP"}
				},
				"enrollment": {
					"enrolled": "seats.taken",
					"capacity": "seats.total",
					"waitlist": "seats.waitlist"
				},
				"attributes": {
					"zero_textbook_cost": "ztc"
				},
				"meetings": "meetingTimes",
				"location": "room",
				"instructor": {"name": "facultyName", "email": "facultyEmail"},
				"dates": {"start": "startDate", "end": "endDate"}
			}
		}
	}`))
	require.NoError(t, err)
	return cfg
}

func TestMappedTransform(t *testing.T) {
	transformer, err := New("mapped", mappedConfig(t))
	require.NoError(t, err)

	input := map[string]any{
		"term": map[string]any{"srcdb": "202570", "name": "Fall 2025"},
		"data": map[string]any{
			"classes": []any{
				map[string]any{
					"registrationNumber": "90210",
					"subjectCode":        "ENGL",
					"catalogNumber":      "1A",
					"courseTitle":        "English Composition",
					"creditHours":        float64(4),
					"enrollmentStatus":   "A",
					"deliveryCode":       "W",
					"seats":              map[string]any{"taken": float64(20), "total": float64(30), "waitlist": float64(2)},
					"ztc":                true,
					"room":               "Online",
					"facultyName":        "Okafor, Sam",
					"facultyEmail":       "sokafor@wvc.edu",
					"startDate":          "2025-08-25",
					"endDate":            "2025-12-20",
					"meetingTimes": []any{
						map[string]any{"days": "MW", "start_time": "10:00am", "end_time": "11:15am"},
					},
				},
			},
		},
	}

	doc, err := Transform(transformer, input)
	require.NoError(t, err)

	schedule := doc["schedule"].(map[string]any)
	term := schedule["metadata"].(map[string]any)["term"].(map[string]any)
	assert.Equal(t, "202570", term["code"])
	assert.Equal(t, "Fall 2025", term["name"])

	courses := schedule["courses"].([]map[string]any)
	require.Len(t, courses, 1)

	course := courses[0]
	assert.Equal(t, "ENGL-1A", course["course_id"])
	assert.Equal(t, 4.0, course["units"])
	assert.Equal(t, "English Composition (4 units)", course["description"])

	section := course["sections"].([]map[string]any)[0]
	assert.Equal(t, "90210", section["crn"])
	assert.Equal(t, "Open", section["status"])
	assert.Equal(t, "ONL", section["instruction_mode"])

	enrollment := section["enrollment"].(map[string]any)
	assert.Equal(t, 20, enrollment["enrolled"])
	assert.Equal(t, 30, enrollment["capacity"])
	assert.Equal(t, float64(2), enrollment["waitlist"])

	attributes := section["attributes"].(map[string]any)
	assert.Equal(t, true, attributes["zero_textbook_cost"])

	instructor := section["instructor"].(map[string]any)
	assert.Equal(t, "Okafor, Sam", instructor["name"])
	assert.Equal(t, "sokafor@wvc.edu", instructor["email"])

	meetings := section["meetings"].([]map[string]any)
	require.Len(t, meetings, 1)
	assert.Equal(t, []string{"M", "W"}, meetings[0]["days"])
	assert.Equal(t, "10:00", meetings[0]["start_time"])
	assert.Equal(t, "11:15", meetings[0]["end_time"])
	assert.Equal(t, map[string]any{"building": "Online", "room": "Online"}, meetings[0]["location"])

	dates := section["dates"].(map[string]any)
	assert.Equal(t, "2025-08-25", dates["start"])
	assert.Equal(t, "2025-12-20", dates["end"])
}

func TestMappedUnknownVocabPassthrough(t *testing.T) {
	transformer, err := New("mapped", mappedConfig(t))
	require.NoError(t, err)

	input := map[string]any{
		"data": map[string]any{
			"classes": []any{
				map[string]any{
					"registrationNumber": "90001",
					"subjectCode":        "HIST",
					"catalogNumber":      "17A",
					"courseTitle":        "US History",
					"creditHours":        float64(3),
					"enrollmentStatus":   "X",
				},
			},
		},
	}

	doc, err := Transform(transformer, input)
	require.NoError(t, err)

	courses := doc["schedule"].(map[string]any)["courses"].([]map[string]any)
	section := courses[0]["sections"].([]map[string]any)[0]
	assert.Equal(t, "X", section["status"])

	// No meeting entries: an arranged placeholder is synthesized.
	meetings := section["meetings"].([]map[string]any)
	require.Len(t, meetings, 1)
	assert.Nil(t, meetings[0]["start_time"])
}
