package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcpheron/ccc-schedule/internal/transform"
)

var testSchema = []byte(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["schedule"],
	"properties": {
		"schedule": {
			"type": "object",
			"required": ["metadata", "courses"],
			"properties": {
				"metadata": {
					"type": "object",
					"required": ["version"],
					"properties": {"version": {"type": "string"}}
				},
				"courses": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["course_id", "units"],
						"properties": {
							"course_id": {"type": "string"},
							"units": {"type": "number"},
							"sections": {
								"type": "array",
								"items": {
									"type": "object",
									"properties": {
										"crn": {"type": "string", "pattern": "^\\d{5}$"}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}`)

func strictConfig(t *testing.T) *transform.Config {
	t.Helper()
	cfg, err := transform.ParseConfig([]byte(`{
		"college": {"id": "rio-hondo", "name": "Rio Hondo College"},
		"features": {
			"textbook_cost": {
				"enabled": true,
				"categories": [{"code": "ZTC"}, {"code": "LTC"}, {"code": "REG"}]
			},
			"instruction_modes": {
				"enabled": true,
				"modes": {
					"online": {"code": "ONL"},
					"in_person": {"code": "INP"}
				}
			},
			"enrollment_tracking": {
				"enabled": true,
				"fields": ["enrollment_date"]
			}
		}
	}`))
	require.NoError(t, err)
	return cfg
}

func validDocument() map[string]any {
	return map[string]any{
		"schedule": map[string]any{
			"metadata": map[string]any{"version": "1.0.0"},
			"courses": []any{
				map[string]any{
					"course_id": "CS-101",
					"units":     3.0,
					"sections": []any{
						map[string]any{
							"crn":              "70126",
							"instruction_mode": "ONL",
							"attributes": map[string]any{
								"textbook_cost":   "ZTC",
								"enrollment_date": "2025-08-01",
							},
						},
					},
				},
			},
		},
	}
}

func TestValidateConformingDocument(t *testing.T) {
	v, err := New(testSchema, strictConfig(t))
	require.NoError(t, err)

	valid, violations := v.Validate(validDocument(), true)
	assert.True(t, valid)
	assert.Empty(t, violations)
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	v, err := New(testSchema, nil)
	require.NoError(t, err)

	doc := map[string]any{
		"schedule": map[string]any{
			"metadata": map[string]any{},
			"courses": []any{
				map[string]any{"units": "three"},
			},
		},
	}

	valid, violations := v.Validate(doc, false)
	assert.False(t, valid)
	// Missing version, missing course_id, and wrong units type all
	// surface; validation does not stop at the first violation.
	assert.GreaterOrEqual(t, len(violations), 3)
}

func TestStrictFeatureRules(t *testing.T) {
	v, err := New(testSchema, strictConfig(t))
	require.NoError(t, err)

	doc := validDocument()
	schedule := doc["schedule"].(map[string]any)
	course := schedule["courses"].([]any)[0].(map[string]any)
	section := course["sections"].([]any)[0].(map[string]any)
	section["instruction_mode"] = "TELE"
	section["attributes"] = map[string]any{"textbook_cost": "FREE"}

	valid, violations := v.Validate(doc, true)
	assert.False(t, valid)
	require.Len(t, violations, 3)
	assert.Contains(t, violations[0], "FREE")
	assert.Contains(t, violations[0], "70126")
	assert.Contains(t, violations[1], "TELE")
	assert.Contains(t, violations[2], "enrollment_date")
}

func TestStrictSkippedWithoutFlag(t *testing.T) {
	v, err := New(testSchema, strictConfig(t))
	require.NoError(t, err)

	doc := validDocument()
	schedule := doc["schedule"].(map[string]any)
	course := schedule["courses"].([]any)[0].(map[string]any)
	section := course["sections"].([]any)[0].(map[string]any)
	section["instruction_mode"] = "TELE"

	// Structurally fine; feature rules only run in strict mode.
	valid, violations := v.Validate(doc, false)
	assert.True(t, valid)
	assert.Empty(t, violations)
}

func TestFlatModeSetForm(t *testing.T) {
	cfg, err := transform.ParseConfig([]byte(`{
		"college": {"id": "x", "name": "X"},
		"features": {
			"instruction_modes": {
				"enabled": true,
				"modes": {"ONL": true, "INP": true}
			}
		}
	}`))
	require.NoError(t, err)

	v, err := New(testSchema, cfg)
	require.NoError(t, err)

	doc := validDocument()
	valid, violations := v.Validate(doc, true)
	assert.True(t, valid, "%v", violations)
}

func TestNormalizesTypedSlices(t *testing.T) {
	v, err := New(testSchema, nil)
	require.NoError(t, err)

	// Transformer output carries []map[string]any and int values; the
	// validator must treat them as their JSON-native equivalents.
	doc := map[string]any{
		"schedule": map[string]any{
			"metadata": map[string]any{"version": "1.0.0"},
			"courses": []map[string]any{
				{
					"course_id": "CS-101",
					"units":     3,
					"sections": []map[string]any{
						{"crn": "70126", "days": []string{"M", "W"}},
					},
				},
			},
		},
	}

	valid, violations := v.Validate(doc, false)
	assert.True(t, valid, "%v", violations)
}

func TestNewRejectsBadSchema(t *testing.T) {
	_, err := New([]byte(`{"type": 42}`), nil)
	assert.Error(t, err)
}
