package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleSchedule() *Schedule {
	return &Schedule{
		Metadata: Metadata{
			Version:     "1.0.0",
			LastUpdated: "2025-08-20T06:15:00Z",
			Terms:       []Term{{Code: "202570", Name: "Fall 2025", StartDate: "2025-08-25", EndDate: "2025-12-20"}},
			Colleges:    []College{{ID: "rio-hondo", Name: "Rio Hondo College", Abbreviation: "RHC"}},
		},
		Subjects:    []Subject{{Code: "CS", Name: "Computer Science"}},
		Instructors: []Instructor{{ID: "arivera", Name: "Rivera, Ana", Email: "arivera@riohondo.edu"}},
		Courses: []Course{
			{
				CourseKey:    "CS-101",
				Subject:      "CS",
				CourseNumber: "101",
				Title:        "Introduction to Computer Science",
				Units:        3,
				Attributes: &CourseAttributes{
					Transferable:     Transferable{CSU: true, UC: true},
					DegreeApplicable: true,
				},
				Sections: []Section{
					{
						CRN:             "70126",
						Term:            "202570",
						College:         "rio-hondo",
						InstructionMode: "SYNC",
						Status:          "Open",
						Enrollment:      Enrollment{Enrolled: 28, Capacity: 35},
						Meetings: []Meeting{
							{
								Type:      "Lecture",
								Days:      []string{"T", "R"},
								StartTime: strPtr("18:00"),
								EndTime:   strPtr("19:25"),
								Location:  Location{Building: "Online", Room: "Online"},
							},
							{Type: "Lecture", Days: []string{}},
						},
						Dates:    SectionDates{Start: "2025-08-25", End: "2025-12-20", DurationWeeks: 16},
						Textbook: Textbook{Required: true, CostCategory: "ZTC"},
					},
				},
			},
		},
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	original := sampleSchedule()

	data, err := original.MarshalDocument()
	require.NoError(t, err)

	parsed, err := ParseSchedule(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)

	// Arranged meetings keep their explicit null times through the trip.
	meeting := parsed.Courses[0].Sections[0].Meetings[1]
	assert.Nil(t, meeting.StartTime)
	assert.Nil(t, meeting.EndTime)
}

func TestParseScheduleBareDocument(t *testing.T) {
	parsed, err := ParseSchedule([]byte(`{
		"metadata": {"version": "1.0.0"},
		"courses": [{"course_key": "CS-101", "units": 3}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", parsed.Metadata.Version)
	require.Len(t, parsed.Courses, 1)
	assert.Equal(t, "CS-101", parsed.Courses[0].CourseKey)
}

func TestParseScheduleWrappedDocument(t *testing.T) {
	parsed, err := ParseSchedule([]byte(`{
		"schedule": {"metadata": {"version": "1.0.0"}, "courses": []}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", parsed.Metadata.Version)
}

func TestParseScheduleRejectsBadJSON(t *testing.T) {
	_, err := ParseSchedule([]byte("{"))
	assert.Error(t, err)
}

func TestWithSectionsCopies(t *testing.T) {
	course := sampleSchedule().Courses[0]
	trimmed := course.WithSections(nil)

	assert.Empty(t, trimmed.Sections)
	assert.Len(t, course.Sections, 1, "receiver is unchanged")
	assert.Equal(t, course.CourseKey, trimmed.CourseKey)
}
