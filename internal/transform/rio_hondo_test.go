package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rioHondoConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := ParseConfig([]byte(`{
		"college": {"id": "rio-hondo", "name": "Rio Hondo College", "district": "Rio Hondo Community College District"},
		"features": {}
	}`))
	require.NoError(t, err)
	return cfg
}

func rioHondoFeed() map[string]any {
	return map[string]any{
		"term":      "Fall 2025",
		"term_code": "202570",
		"courses": []any{
			map[string]any{
				"crn":             "70126",
				"subject":         "CS",
				"course_number":   "101",
				"title":           "Introduction to Computer Science",
				"units":           "3.0",
				"status":          "OPEN",
				"delivery_method": "Online SYNC",
				"instructor":      "Rivera, Ana",
				"enrollment":      map[string]any{"capacity": float64(35), "actual": float64(28), "remaining": float64(7)},
				"meeting_times": []any{
					map[string]any{"days": "TR", "start_time": "06:00pm", "end_time": "07:25pm"},
				},
				"start_date": "08/25",
				"end_date":   "12/20",
				"weeks":      float64(16),
			},
			map[string]any{
				"crn":             "70127",
				"subject":         "CS",
				"course_number":   "101",
				"title":           "Introduction to Computer Science",
				"units":           "3.0",
				"status":          "OPEN",
				"delivery_method": "Arranged",
				"instructor":      "TBA",
				"enrollment":      map[string]any{"capacity": float64(25), "actual": float64(10), "remaining": float64(15)},
				"meeting_times":   []any{},
			},
		},
	}
}

func TestRioHondoTransform(t *testing.T) {
	transformer, err := New("rio-hondo", rioHondoConfig(t))
	require.NoError(t, err)

	doc, err := Transform(transformer, rioHondoFeed())
	require.NoError(t, err)

	schedule := doc["schedule"].(map[string]any)
	metadata := schedule["metadata"].(map[string]any)
	assert.Equal(t, DocumentVersion, metadata["version"])
	assert.NotEmpty(t, metadata["last_updated"])

	college := metadata["college"].(map[string]any)
	assert.Equal(t, "rio-hondo", college["id"])
	assert.Equal(t, "Rio Hondo Community College District", college["district"])

	term := metadata["term"].(map[string]any)
	assert.Equal(t, "202570", term["code"])
	assert.Equal(t, "Fall 2025", term["name"])
	assert.Equal(t, "2025-08-25", term["start_date"])
	assert.Equal(t, "2025-12-20", term["end_date"])

	courses := schedule["courses"].([]map[string]any)
	require.Len(t, courses, 1, "same subject+number records fold into one course")

	course := courses[0]
	assert.Equal(t, "CS-101", course["course_id"])
	assert.Equal(t, 3.0, course["units"])
	assert.Equal(t, "Introduction to Computer Science - 3.0 units", course["description"])

	sections := course["sections"].([]map[string]any)
	require.Len(t, sections, 2)

	first := sections[0]
	assert.Equal(t, "70126", first["crn"])
	assert.Equal(t, "Open", first["status"])
	assert.Equal(t, "SYNC", first["instruction_mode"])

	enrollment := first["enrollment"].(map[string]any)
	assert.Equal(t, 28, enrollment["enrolled"])
	assert.Equal(t, 35, enrollment["capacity"])
	assert.Equal(t, 7, enrollment["available"])

	instructor := first["instructor"].(map[string]any)
	assert.Equal(t, "Rivera, Ana", instructor["name"])
	assert.Equal(t, "rivera,.ana@riohondo.edu", instructor["email"])

	meetings := first["meetings"].([]map[string]any)
	require.Len(t, meetings, 1)
	assert.Equal(t, []string{"T", "R"}, meetings[0]["days"])
	assert.Equal(t, "18:00", meetings[0]["start_time"])
	assert.Equal(t, "19:25", meetings[0]["end_time"])

	dates := first["dates"].(map[string]any)
	assert.Equal(t, "2025-08-25", dates["start"])
	assert.Equal(t, "2025-12-20", dates["end"])
	assert.Equal(t, float64(16), dates["duration_weeks"])

	second := sections[1]
	assert.Equal(t, "ARR", second["instruction_mode"])
	_, hasInstructor := second["instructor"]
	assert.False(t, hasInstructor, "TBA omits the instructor block")

	// Empty meeting list synthesizes one arranged placeholder.
	arranged := second["meetings"].([]map[string]any)
	require.Len(t, arranged, 1)
	assert.Equal(t, []string{}, arranged[0]["days"])
	assert.Nil(t, arranged[0]["start_time"])
	assert.Nil(t, arranged[0]["end_time"])

	// Missing section dates fall back to the term bounds.
	dates = second["dates"].(map[string]any)
	assert.Equal(t, "2025-08-25", dates["start"])
	assert.Equal(t, "2025-12-20", dates["end"])
}

func TestRioHondoStatusPassthrough(t *testing.T) {
	transformer, err := New("rio-hondo", rioHondoConfig(t))
	require.NoError(t, err)

	feed := map[string]any{
		"courses": []any{
			map[string]any{
				"crn":           "70001",
				"subject":       "BIO",
				"course_number": "1",
				"title":         "Biology",
				"units":         "4.0",
				"status":        "FROZEN",
			},
		},
	}

	doc, err := Transform(transformer, feed)
	require.NoError(t, err)

	courses := doc["schedule"].(map[string]any)["courses"].([]map[string]any)
	section := courses[0]["sections"].([]map[string]any)[0]
	// Unknown status vocabulary passes through; strict schema
	// validation decides later whether it is acceptable.
	assert.Equal(t, "FROZEN", section["status"])
}

func TestRioHondoRejectsBadRecords(t *testing.T) {
	transformer, err := New("rio-hondo", rioHondoConfig(t))
	require.NoError(t, err)

	_, err = transformer.TransformCourses(map[string]any{
		"courses": []any{"not an object"},
	})
	assert.Error(t, err)

	_, err = transformer.TransformCourses(map[string]any{
		"courses": []any{map[string]any{"title": "No Subject"}},
	})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Sources(), "rio-hondo")
	assert.Contains(t, Sources(), "mapped")

	_, err := New("no-such-college", rioHondoConfig(t))
	assert.Error(t, err)

	assert.Panics(t, func() {
		Register("rio-hondo", func(cfg *Config) Transformer { return nil })
	})
}
