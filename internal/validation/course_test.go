package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCourse() map[string]any {
	return map[string]any{
		"course_id": "CS101",
		"title":     "Introduction to Computer Science",
		"units":     3.0,
		"college":   "rio-hondo",
		"term":      "202570",
	}
}

func TestValidateCoursePasses(t *testing.T) {
	result := ValidateCourse(validCourse())
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, result.ValidCount)
}

func TestValidateCourseRequiredFields(t *testing.T) {
	result := ValidateCourse(map[string]any{
		"course_id": "CS101",
		"title":     "   ",
		"units":     3.0,
	})
	require.False(t, result.IsValid())

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	// Blank title counts as missing, as do absent college and term.
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "college")
	assert.Contains(t, fields, "term")
}

func TestValidateCourseIDFormat(t *testing.T) {
	for _, id := range []string{"CS101", "MATH123A", "CS 101", "ENGL 1A"} {
		course := validCourse()
		course["course_id"] = id
		assert.True(t, ValidateCourse(course).IsValid(), "course_id %q should pass", id)
	}

	for _, id := range []string{"C101", "COMPSCI101", "CS", "101", "cs101"} {
		course := validCourse()
		course["course_id"] = id
		assert.False(t, ValidateCourse(course).IsValid(), "course_id %q should fail", id)
	}
}

func TestValidateCourseUnits(t *testing.T) {
	course := validCourse()
	course["units"] = "three"
	assert.False(t, ValidateCourse(course).IsValid())

	course["units"] = 120.0
	assert.False(t, ValidateCourse(course).IsValid())

	// Numeric strings are tolerated at this layer.
	course["units"] = "3.5"
	assert.True(t, ValidateCourse(course).IsValid())
}

func TestValidateCourseTermWarning(t *testing.T) {
	course := validCourse()
	course["term"] = "Fall 2025"

	result := ValidateCourse(course)
	// Term format drift warns but does not invalidate.
	assert.True(t, result.IsValid())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "term", result.Warnings[0].Field)
}

func TestValidateSectionCRN(t *testing.T) {
	for crn, wantValid := range map[string]bool{
		"70126":  true,
		"1234":   false,
		"123456": false,
		"7012a":  false,
	} {
		course := validCourse()
		course["sections"] = []any{map[string]any{"crn": crn}}
		assert.Equal(t, wantValid, ValidateCourse(course).IsValid(), "crn %q", crn)
	}

	course := validCourse()
	course["sections"] = []any{map[string]any{}}
	result := ValidateCourse(course)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Errors[0].Message, "missing CRN")
}

func TestValidateSectionTimes(t *testing.T) {
	section := map[string]any{
		"crn":       "70126",
		"startTime": "18:00",
		"endTime":   "19:25",
	}
	course := validCourse()
	course["sections"] = []any{section}
	assert.True(t, ValidateCourse(course).IsValid())

	// End before start is an ordering error.
	section["endTime"] = "09:00"
	result := ValidateCourse(course)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Errors[0].Message, "must be after start time")

	// End equal to start is also rejected.
	section["endTime"] = "18:00"
	assert.False(t, ValidateCourse(course).IsValid())

	section["startTime"] = "6pm"
	section["endTime"] = "19:25"
	result = ValidateCourse(course)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Errors[0].Message, "Invalid time format")

	// A single bound present skips time checks entirely.
	section["startTime"] = ""
	assert.True(t, ValidateCourse(course).IsValid())
}

func TestValidateSectionEnrollment(t *testing.T) {
	course := validCourse()
	section := map[string]any{
		"crn":          "70126",
		"enrollStatus": "Open",
		"capacity":     30.0,
		"enrolled":     35.0,
	}
	course["sections"] = []any{section}

	result := ValidateCourse(course)
	// Overbooking warns, it does not fail.
	assert.True(t, result.IsValid())

	var messages []string
	for _, w := range result.Warnings {
		messages = append(messages, w.Message)
	}
	assert.Contains(t, messages, "Enrolled (35) exceeds capacity (30)")
	assert.Contains(t, messages, "Status is 'Open' but class appears full")

	section["capacity"] = -1.0
	section["enrolled"] = -2.0
	result = ValidateCourse(course)
	assert.False(t, result.IsValid())
	assert.Len(t, result.Errors, 2)

	section["capacity"] = 30.0
	section["enrolled"] = 10.0
	section["enrollStatus"] = "Closed"
	result = ValidateCourse(course)
	assert.True(t, result.IsValid())
	assert.Contains(t, result.Warnings[0].Message, "available seats")

	section["enrollStatus"] = "Frozen"
	assert.False(t, ValidateCourse(course).IsValid())
}

func TestValidateSectionInstructor(t *testing.T) {
	course := validCourse()
	section := map[string]any{
		"crn":             "70126",
		"instructorName":  "Rivera, Ana",
		"instructorEmail": "arivera@riohondo.edu",
	}
	course["sections"] = []any{section}
	result := ValidateCourse(course)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)

	section["instructorEmail"] = "not-an-email"
	assert.False(t, ValidateCourse(course).IsValid())

	section["instructorEmail"] = ""
	result = ValidateCourse(course)
	assert.True(t, result.IsValid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "email is missing")
}

func TestValidateSectionVocabularies(t *testing.T) {
	course := validCourse()
	section := map[string]any{
		"crn":          "70126",
		"instrMethod":  "INP",
		"days":         "MWF",
		"textbookCost": "ZTC",
	}
	course["sections"] = []any{section}
	assert.True(t, ValidateCourse(course).IsValid())

	section["instrMethod"] = "ONL"
	assert.False(t, ValidateCourse(course).IsValid(), "ONL is not in the submission vocabulary")

	section["instrMethod"] = "INP"
	section["days"] = "MXZ"
	assert.False(t, ValidateCourse(course).IsValid())

	section["days"] = "MWF"
	section["textbookCost"] = "FREE"
	result := ValidateCourse(course)
	assert.True(t, result.IsValid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "textbook cost")
}

func TestValidateCoursesBatch(t *testing.T) {
	bad := validCourse()
	bad["course_id"] = "bad id"

	result := ValidateCourses([]map[string]any{validCourse(), bad})
	assert.False(t, result.IsValid())
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.ValidCount)
	// Findings carry the batch index prefix.
	assert.Contains(t, result.Errors[0].Field, "course[1]")
}
