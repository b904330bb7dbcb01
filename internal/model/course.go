package model

// Transferable flags which university systems accept a course for
// transfer credit. The three flags are independent.
type Transferable struct {
	CSU     bool `json:"csu"`
	UC      bool `json:"uc"`
	Private bool `json:"private"`
}

// GeneralEducation lists the GE requirement areas a course satisfies,
// per taxonomy (CSU GE, IGETC, local district).
type GeneralEducation struct {
	CSUArea   []string `json:"csu_area"`
	IGETCArea []string `json:"igetc_area"`
	Local     []string `json:"local"`
}

// CourseAttributes carries articulation metadata. DegreeApplicable
// defaults to true and BasicSkills to false when absent from source data.
type CourseAttributes struct {
	Transferable     Transferable     `json:"transferable"`
	GeneralEducation GeneralEducation `json:"general_education"`
	CID              string           `json:"c_id,omitempty"`
	DegreeApplicable bool             `json:"degree_applicable"`
	BasicSkills      bool             `json:"basic_skills"`
}

// Course is one catalog course with its offered sections. CourseKey is
// the identity (e.g. "CS-101").
type Course struct {
	CourseKey     string            `json:"course_key"`
	Subject       string            `json:"subject"`
	CourseNumber  string            `json:"course_number"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Units         float64           `json:"units"`
	UnitType      string            `json:"unit_type"`
	Prerequisites string            `json:"prerequisites"`
	Corequisites  string            `json:"corequisites"`
	Advisory      string            `json:"advisory"`
	Attributes    *CourseAttributes `json:"attributes,omitempty"`
	Sections      []Section         `json:"sections"`
}

// WithSections returns a copy of the course whose section list is
// replaced by the given slice. The receiver is not modified; the filter
// engine relies on this copy-on-filter behavior.
func (c Course) WithSections(sections []Section) Course {
	c.Sections = sections
	return c
}
