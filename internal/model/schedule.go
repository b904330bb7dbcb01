package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Term is one academic term (e.g. "202530" = Fall 2025).
type Term struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CollegeTheme holds the primary/secondary brand colors for a college.
type CollegeTheme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// College identifies a participating institution.
type College struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Abbreviation string       `json:"abbreviation"`
	LogoURL      string       `json:"logo_url"`
	Theme        CollegeTheme `json:"theme"`
}

// Metadata describes a schedule document: schema version, freshness,
// and the terms/colleges the document covers.
type Metadata struct {
	Version     string    `json:"version"`
	LastUpdated string    `json:"last_updated"`
	Terms       []Term    `json:"terms"`
	Colleges    []College `json:"colleges"`
}

// Subject is an academic subject code (e.g. "CS").
type Subject struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Instructor is referenced from sections by ID.
type Instructor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Departments []string `json:"departments"`
}

// Schedule is the root aggregate: all schedule data for a set of
// terms and colleges, owned by value.
type Schedule struct {
	Metadata    Metadata     `json:"metadata"`
	Subjects    []Subject    `json:"subjects"`
	Instructors []Instructor `json:"instructors"`
	Courses     []Course     `json:"courses"`
}

// scheduleEnvelope is the optional top-level wrapper used by persisted
// canonical documents: {"schedule": {...}}.
type scheduleEnvelope struct {
	Schedule json.RawMessage `json:"schedule"`
}

// ParseSchedule decodes a canonical schedule document. The payload may
// be either a bare Schedule object or wrapped in a top-level "schedule"
// key; both forms are accepted.
func ParseSchedule(data []byte) (*Schedule, error) {
	var env scheduleEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse schedule document: %w", err)
	}
	if len(env.Schedule) > 0 && !bytes.Equal(env.Schedule, []byte("null")) {
		data = env.Schedule
	}

	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schedule document: %w", err)
	}
	return &s, nil
}

// MarshalDocument encodes a Schedule as a canonical document wrapped in
// the top-level "schedule" key, indented for human-diffable persistence.
func (s *Schedule) MarshalDocument() ([]byte, error) {
	doc := map[string]*Schedule{"schedule": s}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schedule document: %w", err)
	}
	return out, nil
}
