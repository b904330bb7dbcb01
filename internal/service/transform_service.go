package service

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jmcpheron/ccc-schedule/internal/config"
	"github.com/jmcpheron/ccc-schedule/internal/transform"
)

// TransformService turns raw institution feeds into canonical schedule
// documents using the registered per-source transformers.
type TransformService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewTransformService creates a TransformService.
func NewTransformService(cfg *config.Config, log zerolog.Logger) *TransformService {
	return &TransformService{
		cfg: cfg,
		log: log.With().Str("component", "transform_service").Logger(),
	}
}

// TransformFeed decodes a raw feed and runs the transformer registered
// for source, configured from the college's institution config file.
// The resulting canonical document is returned as indented JSON.
func (s *TransformService) TransformFeed(source, collegeID string, raw []byte) ([]byte, error) {
	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("invalid feed JSON: %w", err)
	}

	configPath := filepath.Join(s.cfg.ConfigDir, collegeID+".json")
	instCfg, err := transform.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	transformer, err := transform.New(source, instCfg)
	if err != nil {
		return nil, err
	}

	doc, err := transform.Transform(transformer, input)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode canonical document: %w", err)
	}

	s.log.Info().
		Str("source", source).
		Str("college", collegeID).
		Msg("Feed transformed")
	return out, nil
}

// Sources lists the registered transformer source names.
func (s *TransformService) Sources() []string {
	return transform.Sources()
}
