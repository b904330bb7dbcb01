package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validation patterns for submission fields.
var (
	crnPattern      = regexp.MustCompile(`^\d{5}$`)
	courseIDPattern = regexp.MustCompile(`^[A-Z]{2,4}\s*\d{1,4}[A-Z]?$`)
	timePattern     = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	termPattern     = regexp.MustCompile(`^\d{6}$`)
)

// Accepted vocabularies.
var (
	validInstructionModes = []string{"AON", "FLX", "HYB", "INP", "SON", "TUT", "WRK"}
	validCreditTypes      = []string{"CR", "NC"}
	validEnrollmentStatus = []string{"Open", "Closed", "Waitlist"}
	validMeetingDays      = []string{"M", "T", "W", "R", "F", "S", "U"}
	validTextbookCosts    = []string{"ZTC", "LTC", "REG"}
)

var requiredCourseFields = []string{"course_id", "title", "units", "college", "term"}

// ValidateCourse validates a single course submission and all of its
// nested sections.
func ValidateCourse(course map[string]any) *Result {
	result := &Result{TotalCount: 1}

	validateRequiredFields(course, result)
	validateCourseFields(course, result)

	if sections, ok := course["sections"].([]any); ok {
		for i, s := range sections {
			section, ok := s.(map[string]any)
			if !ok {
				result.AddError(fmt.Sprintf("sections[%d]", i), "Section must be an object", s)
				continue
			}
			validateSection(section, i, result)
		}
	}

	if result.IsValid() {
		result.ValidCount = 1
	}
	return result
}

// ValidateCourses validates a batch, aggregating per-item results under
// an indexed field-path prefix.
func ValidateCourses(courses []map[string]any) *Result {
	result := &Result{TotalCount: len(courses)}

	for i, course := range courses {
		courseResult := ValidateCourse(course)
		result.Merge(courseResult, fmt.Sprintf("course[%d]", i))
		if courseResult.IsValid() {
			result.ValidCount++
		}
	}
	return result
}

// validateRequiredFields checks presence; empty strings count as missing.
func validateRequiredFields(course map[string]any, result *Result) {
	for _, field := range requiredCourseFields {
		value, ok := course[field]
		if !ok || value == nil {
			result.AddError(field, fmt.Sprintf("Required field '%s' is missing", field), nil)
			continue
		}
		if s, isStr := value.(string); isStr && strings.TrimSpace(s) == "" {
			result.AddError(field, fmt.Sprintf("Required field '%s' is empty", field), nil)
		}
	}
}

func validateCourseFields(course map[string]any, result *Result) {
	if courseID, _ := course["course_id"].(string); courseID != "" && !courseIDPattern.MatchString(courseID) {
		result.AddError("course_id",
			fmt.Sprintf("Invalid course ID format: '%s'. Expected format: 'CS101' or 'MATH123A'", courseID),
			courseID)
	}

	if units, ok := course["units"]; ok && units != nil {
		if f, err := toFloat(units); err != nil {
			result.AddError("units", fmt.Sprintf("Units must be a number, got '%v'", units), units)
		} else if f < 0 || f > 99 {
			result.AddError("units", fmt.Sprintf("Units must be between 0 and 99, got %g", f), units)
		}
	}

	if creditType, _ := course["creditType"].(string); creditType != "" && !contains(validCreditTypes, creditType) {
		result.AddError("creditType",
			fmt.Sprintf("Invalid credit type '%s'. Must be one of: %s", creditType, strings.Join(validCreditTypes, ", ")),
			creditType)
	}

	// Format drift in term codes is tolerated; flag it, don't fail it.
	if term, ok := course["term"]; ok && term != nil {
		if termStr := stringify(term); termStr != "" && !termPattern.MatchString(termStr) {
			result.AddWarning("term", fmt.Sprintf("Term '%s' doesn't match expected format YYYYMM", termStr))
		}
	}
}

func validateSection(section map[string]any, index int, result *Result) {
	prefix := fmt.Sprintf("sections[%d]", index)

	if crn, ok := section["crn"]; ok && crn != nil && stringify(crn) != "" {
		if crnStr := stringify(crn); !crnPattern.MatchString(crnStr) {
			result.AddError(prefix+".crn",
				fmt.Sprintf("Invalid CRN format: '%s'. CRN must be exactly 5 digits", crnStr), crn)
		}
	} else {
		result.AddError(prefix+".crn", "Section missing CRN", nil)
	}

	if mode, _ := section["instrMethod"].(string); mode != "" && !contains(validInstructionModes, mode) {
		result.AddError(prefix+".instrMethod",
			fmt.Sprintf("Invalid instruction mode '%s'. Must be one of: %s", mode, strings.Join(validInstructionModes, ", ")),
			mode)
	}

	validateSectionTimes(section, prefix, result)

	if days, _ := section["days"].(string); days != "" {
		var invalid []string
		for _, d := range strings.Split(days, "") {
			if !contains(validMeetingDays, d) {
				invalid = append(invalid, d)
			}
		}
		if len(invalid) > 0 {
			result.AddError(prefix+".days",
				fmt.Sprintf("Invalid meeting days: %s. Valid days are: %s",
					strings.Join(invalid, ", "), strings.Join(validMeetingDays, ", ")),
				days)
		}
	}

	validateEnrollment(section, prefix, result)
	validateInstructor(section, prefix, result)

	if cost, _ := section["textbookCost"].(string); cost != "" && !contains(validTextbookCosts, cost) {
		result.AddWarning(prefix+".textbookCost", fmt.Sprintf("Unknown textbook cost type '%s'", cost))
	}
}

// validateSectionTimes checks format and ordering when both bounds are
// present. Both classes of violation are errors: a malformed or
// inverted time range makes the section unusable.
func validateSectionTimes(section map[string]any, prefix string, result *Result) {
	startTime, _ := section["startTime"].(string)
	endTime, _ := section["endTime"].(string)
	if startTime == "" || endTime == "" {
		return
	}

	switch {
	case !timePattern.MatchString(startTime):
		result.AddError(prefix+".startTime",
			fmt.Sprintf("Invalid time format: '%s'. Use HH:MM format (24-hour)", startTime), startTime)
	case !timePattern.MatchString(endTime):
		result.AddError(prefix+".endTime",
			fmt.Sprintf("Invalid time format: '%s'. Use HH:MM format (24-hour)", endTime), endTime)
	case minutes(endTime) <= minutes(startTime):
		result.AddError(prefix+".time",
			fmt.Sprintf("End time (%s) must be after start time (%s)", endTime, startTime), nil)
	}
}

func validateEnrollment(section map[string]any, prefix string, result *Result) {
	status, _ := section["enrollStatus"].(string)
	if status != "" && !contains(validEnrollmentStatus, status) {
		result.AddError(prefix+".enrollStatus",
			fmt.Sprintf("Invalid enrollment status '%s'. Must be one of: %s", status, strings.Join(validEnrollmentStatus, ", ")),
			status)
	}

	capacity, hasCapacity := section["capacity"]
	enrolled, hasEnrolled := section["enrolled"]

	if hasCapacity && capacity != nil && hasEnrolled && enrolled != nil {
		cap, capErr := toInt(capacity)
		enr, enrErr := toInt(enrolled)

		if capErr != nil || enrErr != nil {
			result.AddError(prefix+".enrollment", "Capacity and enrolled must be valid integers", nil)
		} else {
			if cap < 0 {
				result.AddError(prefix+".capacity", "Capacity cannot be negative", capacity)
			}
			if enr < 0 {
				result.AddError(prefix+".enrolled", "Enrolled count cannot be negative", enrolled)
			}
			if enr > cap {
				result.AddWarning(prefix+".enrollment",
					fmt.Sprintf("Enrolled (%d) exceeds capacity (%d)", enr, cap))
			}

			// Source data legitimately lags live enrollment, so
			// status/count mismatches are warnings, not errors.
			if status == "Open" && enr >= cap {
				result.AddWarning(prefix+".enrollStatus", "Status is 'Open' but class appears full")
			} else if status == "Closed" && enr < cap {
				result.AddWarning(prefix+".enrollStatus", "Status is 'Closed' but class has available seats")
			}
		}
	}

	if waitlist, ok := section["waitlist"]; ok && waitlist != nil {
		if wl, err := toInt(waitlist); err != nil {
			result.AddError(prefix+".waitlist", "Waitlist must be a valid integer", waitlist)
		} else if wl < 0 {
			result.AddError(prefix+".waitlist", "Waitlist count cannot be negative", waitlist)
		}
	}
}

func validateInstructor(section map[string]any, prefix string, result *Result) {
	name, _ := section["instructorName"].(string)
	email, _ := section["instructorEmail"].(string)

	if email != "" && !emailPattern.MatchString(email) {
		result.AddError(prefix+".instructorEmail",
			fmt.Sprintf("Invalid email format: '%s'", email), email)
	}

	if email != "" && name == "" {
		result.AddWarning(prefix+".instructor", "Instructor email provided but name is missing")
	} else if name != "" && email == "" {
		result.AddWarning(prefix+".instructor", "Instructor name provided but email is missing")
	}
}

func minutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	return 0, fmt.Errorf("not an integer: %v", v)
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'g', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
