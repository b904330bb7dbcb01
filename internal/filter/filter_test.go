package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcpheron/ccc-schedule/internal/model"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func sampleCourses() []model.Course {
	return []model.Course{
		{
			CourseKey:    "CS-101",
			Subject:      "CS",
			CourseNumber: "101",
			Title:        "Introduction to Computer Science",
			Description:  "Programming fundamentals",
			Units:        3,
			Attributes: &model.CourseAttributes{
				Transferable:     model.Transferable{CSU: true, UC: true},
				GeneralEducation: model.GeneralEducation{CSUArea: []string{"B4"}},
			},
			Sections: []model.Section{
				{
					CRN:             "70126",
					Term:            "202570",
					College:         "rio-hondo",
					InstructionMode: "SYNC",
					Status:          "Open",
					Textbook:        model.Textbook{CostCategory: "ZTC"},
					Meetings: []model.Meeting{
						{Days: []string{"T", "R"}, StartTime: strPtr("18:00"), EndTime: strPtr("19:25")},
					},
				},
				{
					CRN:             "70127",
					Term:            "202570",
					College:         "rio-hondo",
					InstructionMode: "INP",
					Status:          "Closed",
					Textbook:        model.Textbook{CostCategory: "REG"},
					Meetings: []model.Meeting{
						{Days: []string{"M", "W"}, StartTime: strPtr("09:00"), EndTime: strPtr("10:15")},
					},
				},
			},
		},
		{
			CourseKey:    "MATH-190",
			Subject:      "MATH",
			CourseNumber: "190",
			Title:        "Calculus I",
			Description:  "Limits and derivatives",
			Units:        4,
			Attributes: &model.CourseAttributes{
				Transferable: model.Transferable{CSU: true},
			},
			Sections: []model.Section{
				{
					CRN:             "70348",
					Term:            "202570",
					College:         "rio-hondo",
					InstructionMode: "INP",
					Status:          "Open",
					Meetings: []model.Meeting{
						{Days: []string{"M", "W", "F"}, StartTime: strPtr("11:00"), EndTime: strPtr("12:15")},
					},
				},
			},
		},
		{
			CourseKey: "ART-110",
			Subject:   "ART",
			Title:     "Drawing Fundamentals",
			Units:     1.5,
			Sections: []model.Section{
				{
					CRN:             "70412",
					Term:            "202570",
					College:         "rio-hondo",
					InstructionMode: "ARR",
					Status:          "Open",
					Meetings:        []model.Meeting{{Days: []string{}}},
				},
			},
		},
	}
}

func TestFilterNoConstraints(t *testing.T) {
	courses := sampleCourses()
	out := Courses(courses, model.FilterOptions{})
	assert.Len(t, out, 3, "empty options match everything")
}

func TestFilterSubjectAndMode(t *testing.T) {
	out := Courses(sampleCourses(), model.FilterOptions{Subject: "CS"})
	require.Len(t, out, 1)
	assert.Equal(t, "CS-101", out[0].CourseKey)

	out = Courses(sampleCourses(), model.FilterOptions{InstructionMode: "INP"})
	require.Len(t, out, 2)
	// The CS course survives with only its in-person section.
	assert.Len(t, out[0].Sections, 1)
	assert.Equal(t, "70127", out[0].Sections[0].CRN)
}

func TestFilterCascade(t *testing.T) {
	// Open-only prunes the closed CS section but keeps the course; a
	// course whose sections all drop disappears entirely.
	out := Courses(sampleCourses(), model.FilterOptions{OpenOnly: true, InstructionMode: "INP"})
	require.Len(t, out, 1)
	assert.Equal(t, "MATH-190", out[0].CourseKey)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	courses := sampleCourses()
	_ = Courses(courses, model.FilterOptions{OpenOnly: true})
	assert.Len(t, courses[0].Sections, 2, "input course keeps its full section list")
}

func TestFilterIdempotent(t *testing.T) {
	opts := model.FilterOptions{OpenOnly: true, Subject: "CS"}
	once := Courses(sampleCourses(), opts)
	twice := Courses(once, opts)
	assert.Equal(t, once, twice)
}

func TestFilterMonotone(t *testing.T) {
	loose := Courses(sampleCourses(), model.FilterOptions{Subject: "CS"})
	tight := Courses(sampleCourses(), model.FilterOptions{Subject: "CS", OpenOnly: true})
	assert.LessOrEqual(t, len(tight), len(loose))
}

func TestFilterUnits(t *testing.T) {
	out := Courses(sampleCourses(), model.FilterOptions{UnitsMin: f64Ptr(3), UnitsMax: f64Ptr(3)})
	require.Len(t, out, 1, "bounds are inclusive, min=max selects exactly that unit count")
	assert.Equal(t, "CS-101", out[0].CourseKey)

	out = Courses(sampleCourses(), model.FilterOptions{UnitsMax: f64Ptr(3.5)})
	assert.Len(t, out, 2)
}

func TestFilterTimeWindowAndDays(t *testing.T) {
	out := Courses(sampleCourses(), model.FilterOptions{Days: []string{"F"}})
	require.Len(t, out, 1)
	assert.Equal(t, "MATH-190", out[0].CourseKey)

	out = Courses(sampleCourses(), model.FilterOptions{StartTime: "08:00", EndTime: "13:00"})
	require.Len(t, out, 2)
	// Arranged sections have no scheduled time and never match a window.
	for _, c := range out {
		assert.NotEqual(t, "ART-110", c.CourseKey)
	}
}

func TestFilterAttributes(t *testing.T) {
	out := Courses(sampleCourses(), model.FilterOptions{Transferable: "UC"})
	require.Len(t, out, 2)
	// ART-110 has no attributes block, so transferability cannot
	// exclude it.
	keys := []string{out[0].CourseKey, out[1].CourseKey}
	assert.Contains(t, keys, "CS-101")
	assert.Contains(t, keys, "ART-110")

	out = Courses(sampleCourses(), model.FilterOptions{GEArea: "B4"})
	require.Len(t, out, 2)

	out = Courses(sampleCourses(), model.FilterOptions{TextbookCost: "ZTC"})
	require.Len(t, out, 1)
	assert.Len(t, out[0].Sections, 1)
}

func TestFilterKeyword(t *testing.T) {
	out := Courses(sampleCourses(), model.FilterOptions{Keyword: "calculus"})
	require.Len(t, out, 1)
	assert.Equal(t, "MATH-190", out[0].CourseKey)

	out = Courses(sampleCourses(), model.FilterOptions{Keyword: "fundamentals"})
	assert.Len(t, out, 2, "keyword matches title or description")

	out = Courses(sampleCourses(), model.FilterOptions{Keyword: "cs-101"})
	require.Len(t, out, 1, "keyword matches the course key")
}

func TestByUnits(t *testing.T) {
	out := ByUnits(sampleCourses(), 3, 4)
	assert.Len(t, out, 2)

	out = ByUnits(sampleCourses(), 0, 2)
	require.Len(t, out, 1)
	assert.Equal(t, "ART-110", out[0].CourseKey)
}
