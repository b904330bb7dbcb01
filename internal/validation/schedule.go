package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// ValidateSchedule validates a complete schedule document: metadata
// presence and freshness format, then every course via the batch course
// validator. The document may be wrapped in a top-level "schedule" key.
func ValidateSchedule(doc map[string]any) *Result {
	result := &Result{}

	if wrapped, ok := doc["schedule"].(map[string]any); ok {
		doc = wrapped
	}

	if metadata, ok := doc["metadata"].(map[string]any); ok {
		validateMetadata(metadata, result)
	} else {
		result.AddError("metadata", "Missing metadata section", nil)
	}

	rawCourses, ok := doc["courses"].([]any)
	if !ok {
		result.AddError("courses", "Missing courses section", nil)
		return result
	}

	courses := make([]map[string]any, 0, len(rawCourses))
	for _, c := range rawCourses {
		if course, ok := c.(map[string]any); ok {
			courses = append(courses, course)
		}
	}

	coursesResult := ValidateCourses(courses)
	result.Errors = append(result.Errors, coursesResult.Errors...)
	result.Warnings = append(result.Warnings, coursesResult.Warnings...)
	result.TotalCount = coursesResult.TotalCount
	result.ValidCount = coursesResult.ValidCount

	return result
}

func validateMetadata(metadata map[string]any, result *Result) {
	for _, field := range []string{"version", "last_updated"} {
		if _, ok := metadata[field]; !ok {
			result.AddError("metadata."+field, fmt.Sprintf("Missing required field '%s'", field), nil)
		}
	}

	if lastUpdated, _ := metadata["last_updated"].(string); lastUpdated != "" {
		// RFC 3339 with the trailing "Z" normalized; bare ISO stamps
		// without a zone are also accepted.
		normalized := strings.Replace(lastUpdated, "Z", "+00:00", 1)
		if !parseableTimestamp(normalized) {
			result.AddError("metadata.last_updated",
				fmt.Sprintf("Invalid date format: '%s'. Use ISO format (YYYY-MM-DDTHH:MM:SSZ)", lastUpdated),
				lastUpdated)
		}
	}
}

func parseableTimestamp(ts string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999"} {
		if _, err := time.Parse(layout, ts); err == nil {
			return true
		}
	}
	return false
}

// ValidateScheduleFile reads and validates a schedule JSON file.
// Unreadable files and invalid JSON are reported as errors on the
// result rather than returned as Go errors, so CLI callers get one
// uniform report.
func ValidateScheduleFile(path string) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		result := &Result{}
		result.AddError("file", fmt.Sprintf("Error reading file: %v", err), nil)
		return result
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		result := &Result{}
		result.AddError("json", fmt.Sprintf("Invalid JSON: %v", err), nil)
		return result
	}

	return ValidateSchedule(doc)
}

// QuickCheck is a fast structural sanity check over decoded course
// maps, used by the CLI before deeper validation: required keys present
// and units a non-negative number. The first violation is returned as
// an error.
func QuickCheck(courses []map[string]any) error {
	required := []string{"course_id", "title", "units", "description"}

	for i, course := range courses {
		for _, field := range required {
			if _, ok := course[field]; !ok {
				return fmt.Errorf("course at index %d missing required field: %s", i, field)
			}
		}
		units, ok := course["units"].(float64)
		if !ok {
			return fmt.Errorf("course at index %d has invalid units value", i)
		}
		if units < 0 {
			return fmt.Errorf("course at index %d has negative units", i)
		}
	}
	return nil
}
