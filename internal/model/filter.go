package model

// FilterOptions is a flat set of optional query criteria. A zero value
// for any field means "no constraint": empty strings and nil slices
// match everything, and the nil unit bounds are unbounded.
//
// The form tags allow the options to be bound straight from HTTP query
// parameters.
type FilterOptions struct {
	Term            string   `json:"term,omitempty" form:"term"`
	College         string   `json:"college,omitempty" form:"college"`
	Subject         string   `json:"subject,omitempty" form:"subject"`
	InstructionMode string   `json:"instruction_mode,omitempty" form:"instruction_mode"`
	Days            []string `json:"days,omitempty" form:"days"`
	StartTime       string   `json:"start_time,omitempty" form:"start_time"`
	EndTime         string   `json:"end_time,omitempty" form:"end_time"`
	UnitsMin        *float64 `json:"units_min,omitempty" form:"units_min"`
	UnitsMax        *float64 `json:"units_max,omitempty" form:"units_max"`
	GEArea          string   `json:"ge_area,omitempty" form:"ge_area"`
	Transferable    string   `json:"transferable,omitempty" form:"transferable"`
	TextbookCost    string   `json:"textbook_cost,omitempty" form:"textbook_cost"`
	OpenOnly        bool     `json:"open_only,omitempty" form:"open_only"`
	Keyword         string   `json:"keyword,omitempty" form:"keyword"`
}
