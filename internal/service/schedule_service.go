package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jmcpheron/ccc-schedule/internal/config"
	"github.com/jmcpheron/ccc-schedule/internal/filter"
	"github.com/jmcpheron/ccc-schedule/internal/model"
	"github.com/jmcpheron/ccc-schedule/internal/repository"
	"github.com/jmcpheron/ccc-schedule/internal/schema"
	"github.com/jmcpheron/ccc-schedule/internal/transform"
	"github.com/jmcpheron/ccc-schedule/internal/validation"
)

// ErrSchemaViolations is returned by Ingest when the acceptance gate
// rejects a document; the violation list travels alongside.
var ErrSchemaViolations = errors.New("schedule document failed schema validation")

// ErrNoTerm is returned when an ingested document names no term to key
// the stored schedule by.
var ErrNoTerm = errors.New("schedule document names no term")

// IngestReport is the outcome of an accepted ingest: the storage key
// plus the semantic validation findings surfaced for human review.
type IngestReport struct {
	CollegeID  string                `json:"college_id"`
	TermCode   string                `json:"term_code"`
	ValidCount int                   `json:"valid_count"`
	TotalCount int                   `json:"total_count"`
	Warnings   []validation.Warning  `json:"warnings"`
	Errors     []validation.FieldError `json:"errors"`
}

// ScheduleService owns the canonical schedule lifecycle: ingest through
// the structural acceptance gate, persistence, Redis read-through
// caching, and query-time filtering.
type ScheduleService struct {
	cfg          *config.Config
	scheduleRepo *repository.ScheduleRepository
	rdb          *redis.Client
	log          zerolog.Logger
	baseSchema   []byte

	mu         sync.Mutex
	validators map[string]*schema.Validator
}

// NewScheduleService reads the base schema eagerly so a bad schema
// fails startup rather than the first ingest.
func NewScheduleService(
	cfg *config.Config,
	scheduleRepo *repository.ScheduleRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) (*ScheduleService, error) {
	baseSchema, err := os.ReadFile(cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("read base schema: %w", err)
	}

	// Compile once up front to surface schema errors at startup.
	if _, err := schema.New(baseSchema, nil); err != nil {
		return nil, err
	}

	return &ScheduleService{
		cfg:          cfg,
		scheduleRepo: scheduleRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "schedule_service").Logger(),
		baseSchema:   baseSchema,
		validators:   map[string]*schema.Validator{},
	}, nil
}

// Ingest validates a canonical document against the base schema (plus
// the college's feature rules when strict) and persists it on success.
// Structural violations reject the document; semantic findings from the
// record validator are reported but never block.
func (s *ScheduleService) Ingest(ctx context.Context, collegeID string, document []byte, strict bool) (*IngestReport, []string, error) {
	doc, err := decodeDocument(document)
	if err != nil {
		return nil, nil, err
	}

	validator, err := s.validatorFor(collegeID)
	if err != nil {
		return nil, nil, err
	}

	if ok, violations := validator.Validate(doc, strict); !ok {
		return nil, violations, ErrSchemaViolations
	}

	termCode, err := termCodeOf(doc)
	if err != nil {
		return nil, nil, err
	}

	if err := s.scheduleRepo.Upsert(ctx, collegeID, termCode, document); err != nil {
		return nil, nil, fmt.Errorf("store schedule: %w", err)
	}
	s.invalidate(ctx, collegeID, termCode)

	semantic := validation.ValidateSchedule(doc)
	s.log.Info().
		Str("college", collegeID).
		Str("term", termCode).
		Int("courses", semantic.TotalCount).
		Int("warnings", len(semantic.Warnings)).
		Msg("Schedule ingested")

	return &IngestReport{
		CollegeID:  collegeID,
		TermCode:   termCode,
		ValidCount: semantic.ValidCount,
		TotalCount: semantic.TotalCount,
		Warnings:   semantic.Warnings,
		Errors:     semantic.Errors,
	}, nil, nil
}

// GetDocument returns the raw canonical document for a college and
// term, reading through the Redis cache. An empty term resolves to the
// most recently updated document for the college.
func (s *ScheduleService) GetDocument(ctx context.Context, collegeID, termCode string) ([]byte, error) {
	if termCode == "" {
		stored, err := s.scheduleRepo.GetLatest(ctx, collegeID)
		if err != nil {
			return nil, err
		}
		return stored.Document, nil
	}

	key := config.CacheKey.ScheduleDocumentKey(collegeID, termCode)
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.Nil) {
		// A cache outage degrades to Postgres reads; not fatal.
		s.log.Warn().Err(err).Msg("Cache read failed")
	}

	stored, err := s.scheduleRepo.Get(ctx, collegeID, termCode)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, key, stored.Document, s.cfg.CacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Cache write failed")
	}
	return stored.Document, nil
}

// GetSchedule returns the typed schedule for a college and term.
func (s *ScheduleService) GetSchedule(ctx context.Context, collegeID, termCode string) (*model.Schedule, error) {
	document, err := s.GetDocument(ctx, collegeID, termCode)
	if err != nil {
		return nil, err
	}
	return model.ParseSchedule(document)
}

// FilterCourses loads a schedule and applies the filter options.
func (s *ScheduleService) FilterCourses(ctx context.Context, collegeID, termCode string, opts model.FilterOptions) ([]model.Course, error) {
	schedule, err := s.GetSchedule(ctx, collegeID, termCode)
	if err != nil {
		return nil, err
	}
	return filter.Courses(schedule.Courses, opts), nil
}

// UniqueValues returns the distinct filterable values for a schedule.
func (s *ScheduleService) UniqueValues(ctx context.Context, collegeID, termCode string) (*filter.UniqueValues, error) {
	schedule, err := s.GetSchedule(ctx, collegeID, termCode)
	if err != nil {
		return nil, err
	}
	values := filter.GetUniqueValues(schedule)
	return &values, nil
}

// ListSchedules returns the stored (college, term) keys.
func (s *ScheduleService) ListSchedules(ctx context.Context) ([]repository.StoredSchedule, error) {
	return s.scheduleRepo.List(ctx)
}

// validatorFor lazily builds and caches the per-college schema
// validator. Colleges without a config file get base-schema-only
// validation (strict mode then has no feature rules to add).
func (s *ScheduleService) validatorFor(collegeID string) (*schema.Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.validators[collegeID]; ok {
		return v, nil
	}

	var cfg *transform.Config
	configPath := filepath.Join(s.cfg.ConfigDir, collegeID+".json")
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = transform.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	v, err := schema.New(s.baseSchema, cfg)
	if err != nil {
		return nil, err
	}
	s.validators[collegeID] = v
	return v, nil
}

func (s *ScheduleService) invalidate(ctx context.Context, collegeID, termCode string) {
	keys := []string{
		config.CacheKey.ScheduleDocumentKey(collegeID, termCode),
		config.CacheKey.ScheduleFiltersKey(collegeID, termCode),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}
