// Package filter evaluates structured filter criteria against canonical
// schedule data. Course-level predicates gate each course; section-level
// predicates then prune its sections, and a course survives only if at
// least one section does. Inputs are never mutated — retained courses
// are copies with reduced section lists.
package filter

import (
	"strings"

	"github.com/jmcpheron/ccc-schedule/internal/model"
)

// Courses applies the filter options to a course list. Output ordering
// matches input ordering, for courses and for sections within each
// retained course.
func Courses(courses []model.Course, opts model.FilterOptions) []model.Course {
	var filtered []model.Course

	for _, course := range courses {
		if !matchesCourse(course, opts) {
			continue
		}

		var sections []model.Section
		for _, section := range course.Sections {
			if matchesSection(section, opts) {
				sections = append(sections, section)
			}
		}

		// Cascade: a course with no surviving sections drops entirely.
		if len(sections) > 0 {
			filtered = append(filtered, course.WithSections(sections))
		}
	}

	return filtered
}

// ByUnits keeps courses whose units fall in [min, max], both bounds
// inclusive.
func ByUnits(courses []model.Course, min, max float64) []model.Course {
	var filtered []model.Course
	for _, course := range courses {
		if course.Units >= min && course.Units <= max {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

func matchesCourse(course model.Course, opts model.FilterOptions) bool {
	if opts.UnitsMin != nil && course.Units < *opts.UnitsMin {
		return false
	}
	if opts.UnitsMax != nil && course.Units > *opts.UnitsMax {
		return false
	}
	if opts.Subject != "" && course.Subject != opts.Subject {
		return false
	}

	// Transferability and GE area only constrain courses that carry
	// attributes; a course without attributes never fails them.
	if opts.Transferable != "" && course.Attributes != nil {
		t := course.Attributes.Transferable
		if (opts.Transferable == "CSU" && !t.CSU) || (opts.Transferable == "UC" && !t.UC) {
			return false
		}
	}

	if opts.GEArea != "" && course.Attributes != nil {
		ge := course.Attributes.GeneralEducation
		if !containsArea(ge.CSUArea, opts.GEArea) &&
			!containsArea(ge.IGETCArea, opts.GEArea) &&
			!containsArea(ge.Local, opts.GEArea) {
			return false
		}
	}

	if opts.Keyword != "" {
		keyword := strings.ToLower(opts.Keyword)
		if !strings.Contains(strings.ToLower(course.Title), keyword) &&
			!strings.Contains(strings.ToLower(course.Description), keyword) &&
			!strings.Contains(strings.ToLower(course.CourseKey), keyword) {
			return false
		}
	}

	return true
}

func matchesSection(section model.Section, opts model.FilterOptions) bool {
	if opts.Term != "" && section.Term != opts.Term {
		return false
	}
	if opts.College != "" && section.College != opts.College {
		return false
	}
	if opts.InstructionMode != "" && section.InstructionMode != opts.InstructionMode {
		return false
	}
	if opts.OpenOnly && section.Status != "Open" {
		return false
	}
	if opts.TextbookCost != "" && section.Textbook.CostCategory != opts.TextbookCost {
		return false
	}

	if len(opts.Days) > 0 && !daysOverlap(section, opts.Days) {
		return false
	}

	if (opts.StartTime != "" || opts.EndTime != "") && !withinTimeWindow(section, opts) {
		return false
	}

	return true
}

// daysOverlap reports whether any requested day appears in the union of
// the section's meeting days.
func daysOverlap(section model.Section, days []string) bool {
	meetingDays := map[string]bool{}
	for _, meeting := range section.Meetings {
		for _, day := range meeting.Days {
			meetingDays[day] = true
		}
	}
	for _, day := range days {
		if meetingDays[day] {
			return true
		}
	}
	return false
}

// withinTimeWindow reports whether any meeting lies inside the window:
// start at or after opts.StartTime and end at or before opts.EndTime.
// Times are zero-padded 24-hour strings, so lexicographic comparison is
// chronological. A section with no meetings never matches.
func withinTimeWindow(section model.Section, opts model.FilterOptions) bool {
	for _, meeting := range section.Meetings {
		if opts.StartTime != "" && (meeting.StartTime == nil || *meeting.StartTime < opts.StartTime) {
			continue
		}
		if opts.EndTime != "" && (meeting.EndTime == nil || *meeting.EndTime > opts.EndTime) {
			continue
		}
		return true
	}
	return false
}

func containsArea(areas []string, area string) bool {
	for _, a := range areas {
		if a == area {
			return true
		}
	}
	return false
}
