package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"college": {"id": "rio-hondo", "name": "Rio Hondo College"},
		"features": {"textbook_cost": {"enabled": true}},
		"data_mappings": {"section": {"crn": "crn"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "rio-hondo", cfg.College["id"])
	assert.Equal(t, "crn", cfg.SectionMappings()["crn"])
}

func TestParseConfigMissingSections(t *testing.T) {
	_, err := ParseConfig([]byte(`{"features": {}}`))
	assert.ErrorIs(t, err, ErrMissingCollege)

	_, err = ParseConfig([]byte(`{"college": {"id": "x"}}`))
	assert.ErrorIs(t, err, ErrMissingFeatures)

	_, err = ParseConfig([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseConfigOptionalMappings(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"college": {"id": "x"}, "features": {}}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.DataMappings)
	assert.Empty(t, cfg.SectionMappings())
}
