package filter

import (
	"sort"

	"github.com/jmcpheron/ccc-schedule/internal/model"
)

// UniqueValues are the distinct values available for each filter
// criterion in a schedule, used to populate search front-end controls.
// Terms, colleges, and subjects keep their insertion order from the
// schedule metadata; the scanned collections are sorted.
type UniqueValues struct {
	Terms            []string `json:"terms"`
	Colleges         []string `json:"colleges"`
	Subjects         []string `json:"subjects"`
	InstructionModes []string `json:"instruction_modes"`
	TextbookCosts    []string `json:"textbook_costs"`
	GEAreas          []string `json:"ge_areas"`
}

// GetUniqueValues extracts filterable values from a schedule: term,
// college, and subject codes straight from metadata, and instruction
// modes, textbook cost categories, and GE areas by scanning every
// course and section.
func GetUniqueValues(schedule *model.Schedule) UniqueValues {
	values := UniqueValues{
		Terms:    make([]string, 0, len(schedule.Metadata.Terms)),
		Colleges: make([]string, 0, len(schedule.Metadata.Colleges)),
		Subjects: make([]string, 0, len(schedule.Subjects)),
	}

	for _, term := range schedule.Metadata.Terms {
		values.Terms = append(values.Terms, term.Code)
	}
	for _, college := range schedule.Metadata.Colleges {
		values.Colleges = append(values.Colleges, college.ID)
	}
	for _, subject := range schedule.Subjects {
		values.Subjects = append(values.Subjects, subject.Code)
	}

	modes := map[string]bool{}
	costs := map[string]bool{}
	areas := map[string]bool{}

	for _, course := range schedule.Courses {
		if course.Attributes != nil {
			ge := course.Attributes.GeneralEducation
			for _, area := range ge.CSUArea {
				areas[area] = true
			}
			for _, area := range ge.IGETCArea {
				areas[area] = true
			}
			for _, area := range ge.Local {
				areas[area] = true
			}
		}

		for _, section := range course.Sections {
			if section.InstructionMode != "" {
				modes[section.InstructionMode] = true
			}
			if section.Textbook.CostCategory != "" {
				costs[section.Textbook.CostCategory] = true
			}
		}
	}

	values.InstructionModes = sortedSet(modes)
	values.TextbookCosts = sortedSet(costs)
	values.GEAreas = sortedSet(areas)
	return values
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
