package model

// Enrollment tracks seat counts for a section. Enrolled exceeding
// Capacity is legal data (overbooking) and is only ever a warning.
type Enrollment struct {
	Enrolled         int `json:"enrolled"`
	Capacity         int `json:"capacity"`
	Waitlist         int `json:"waitlist"`
	WaitlistCapacity int `json:"waitlist_capacity"`
}

// Location is where a meeting takes place.
type Location struct {
	Building string `json:"building"`
	Room     string `json:"room"`
	Campus   string `json:"campus,omitempty"`
}

// Meeting is one recurring meeting pattern of a section. StartTime and
// EndTime are 24-hour "HH:MM" strings and are nil for arranged
// meetings with no scheduled time.
type Meeting struct {
	Type      string   `json:"type"`
	Days      []string `json:"days"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Location  Location `json:"location"`
}

// SectionDates bounds a section in time.
type SectionDates struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	DurationWeeks int    `json:"duration_weeks"`
}

// Textbook describes the required-materials cost for a section.
type Textbook struct {
	Required     bool   `json:"required"`
	CostCategory string `json:"cost_category"`
	Details      string `json:"details"`
}

// Section is one enrollable offering of a course, identified by its
// 5-digit CRN within a term+college scope.
type Section struct {
	CRN             string       `json:"crn"`
	SectionNumber   string       `json:"section_number"`
	Term            string       `json:"term"`
	College         string       `json:"college"`
	InstructionMode string       `json:"instruction_mode"`
	Status          string       `json:"status"`
	Enrollment      Enrollment   `json:"enrollment"`
	Meetings        []Meeting    `json:"meetings"`
	Instructors     []string     `json:"instructors"`
	Dates           SectionDates `json:"dates"`
	Textbook        Textbook     `json:"textbook"`
	Notes           string       `json:"notes"`
	Fees            float64      `json:"fees"`
}
