// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gridlens/gridlens/internal/adapters/source"
	"github.com/gridlens/gridlens/internal/domain/cleaning"
	"github.com/gridlens/gridlens/internal/domain/query"
	"github.com/gridlens/gridlens/internal/domain/record"
	"github.com/gridlens/gridlens/pkg/logger"
	"github.com/gridlens/gridlens/pkg/metrics"
)

// Service owns the process-wide dataset and answers the query operations.
//
// The dataset is immutable once built; reads never lock. The only mutation
// points are the first load and explicit reloads, both funneled through a
// singleflight group so concurrent callers await one in-flight load instead
// of triggering duplicate reads.
type Service struct {
	mu      sync.Mutex
	started bool

	// Configuration
	sourcePath  string
	nameField   string
	stateField  string
	metricNames []string
	stateCodes  []string
	sentinels   []string

	// State
	dataset   atomic.Pointer[record.Dataset]
	loads     singleflight.Group
	loadCount atomic.Int64
	lastLoad  atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSourcePath sets the CSV file the dataset is loaded from.
func WithSourcePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sourcePath = path
		}
	}
}

// WithNameField sets the source column holding the plant identifier.
func WithNameField(field string) Option {
	return func(s *Service) {
		if field != "" {
			s.nameField = field
		}
	}
}

// WithStateField sets the source column holding the state code.
func WithStateField(field string) Option {
	return func(s *Service) {
		if field != "" {
			s.stateField = field
		}
	}
}

// WithMetrics sets the valid metric names.
func WithMetrics(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.metricNames = names
		}
	}
}

// WithStates sets the valid two-letter state codes.
func WithStates(codes []string) Option {
	return func(s *Service) {
		if len(codes) > 0 {
			s.stateCodes = codes
		}
	}
}

// WithSentinels overrides the metadata sentinel values used during cleaning.
func WithSentinels(sentinels []string) Option {
	return func(s *Service) {
		s.sentinels = sentinels
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourcePath: "data/plants.csv",
		nameField:  "plant_name",
		stateField: "state",
		metricNames: []string{
			"annual_net_generation_mwh",
		},
		stateCodes: []string{"CA", "NY", "TX"},
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the eager initial load. A load failure here is the only
// error that keeps the service from becoming ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading plant dataset", logger.String("source", s.sourcePath))
	ds, err := s.ensureDataset(ctx)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "plant service started",
		logger.Int("plants", ds.Len()),
		logger.Int("metrics", len(s.metricNames)),
	)
	return nil
}

// Stop shuts the service down. There is nothing to release besides state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "plant service stopped")
}

// ensureDataset returns the memoized dataset, loading it on first use.
// Concurrent first calls share a single in-flight load.
func (s *Service) ensureDataset(ctx context.Context) (*record.Dataset, error) {
	if ds := s.dataset.Load(); ds != nil {
		return ds, nil
	}
	v, err, _ := s.loads.Do("dataset", func() (interface{}, error) {
		// Re-check: a concurrent load may have finished before we entered.
		if ds := s.dataset.Load(); ds != nil {
			return ds, nil
		}
		return s.loadDataset(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*record.Dataset), nil
}

// Reload replaces the dataset wholesale with a fresh load. On failure the
// previous dataset keeps serving.
func (s *Service) Reload(ctx context.Context) error {
	_, err, _ := s.loads.Do("dataset", func() (interface{}, error) {
		return s.loadDataset(ctx)
	})
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// loadDataset runs the full load-and-clean path and swaps the dataset
// pointer on success.
func (s *Service) loadDataset(ctx context.Context) (*record.Dataset, error) {
	start := time.Now()

	rows, err := source.New(s.sourcePath).Load(ctx)
	if err != nil {
		metrics.RecordLoadFailure()
		return nil, err
	}

	var opts []cleaning.Option
	if len(s.sentinels) > 0 {
		opts = append(opts, cleaning.WithSentinels(s.sentinels))
	}
	pipeline := cleaning.New(s.nameField, s.stateField, s.metricNames, s.stateCodes, opts...)
	plants, rep, err := pipeline.Run(rows)
	if err != nil {
		metrics.RecordLoadFailure()
		return nil, err
	}

	ds := record.New(plants, s.metricNames, s.stateCodes)
	s.dataset.Store(ds)
	s.loadCount.Add(1)
	s.lastLoad.Store(time.Now().Unix())

	elapsed := time.Since(start)
	metrics.RecordLoad(elapsed)
	metrics.UpdateDatasetRows(ds.Len())
	metrics.RecordRowsDropped("metadata", rep.DroppedMetadata)
	metrics.RecordRowsDropped("numeric", rep.DroppedNumeric)
	metrics.RecordRowsDropped("state", rep.DroppedState)
	metrics.RecordRowsDropped("duplicate", rep.DroppedDuplicate)

	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.Int("input_rows", rep.Input),
			logger.Int("kept", rep.Kept),
			logger.Int("dropped_metadata", rep.DroppedMetadata),
			logger.Int("dropped_numeric", rep.DroppedNumeric),
			logger.Int("dropped_state", rep.DroppedState),
			logger.Int("dropped_duplicate", rep.DroppedDuplicate),
			logger.Duration("elapsed", elapsed),
		)
	}
	return ds, nil
}

// TopPlants returns the top n plants ordered by metric descending.
func (s *Service) TopPlants(ctx context.Context, n int, metric string) ([]record.Plant, error) {
	ds, err := s.ensureDataset(ctx)
	if err != nil {
		metrics.RecordQuery("top_plants", "unavailable")
		return nil, err
	}
	out, err := query.TopPlants(ds, n, metric)
	metrics.RecordQuery("top_plants", outcome(err))
	return out, err
}

// StatesInfo returns the per-state summary of a metric.
func (s *Service) StatesInfo(ctx context.Context, metric string) (map[string]record.StateSummary, error) {
	ds, err := s.ensureDataset(ctx)
	if err != nil {
		metrics.RecordQuery("states_info", "unavailable")
		return nil, err
	}
	out, err := query.StatesInfo(ds, metric)
	metrics.RecordQuery("states_info", outcome(err))
	return out, err
}

// StateDetail returns all plants of one state in dataset order.
func (s *Service) StateDetail(ctx context.Context, state string) ([]record.Plant, error) {
	ds, err := s.ensureDataset(ctx)
	if err != nil {
		metrics.RecordQuery("state_detail", "unavailable")
		return nil, err
	}
	out, err := query.StateDetail(ds, state)
	metrics.RecordQuery("state_detail", outcome(err))
	return out, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	stats := map[string]interface{}{
		"started":    started,
		"sourcePath": s.sourcePath,
		"metrics":    len(s.metricNames),
		"states":     len(s.stateCodes),
		"loadCount":  s.loadCount.Load(),
	}
	if ds := s.dataset.Load(); ds != nil {
		stats["datasetRows"] = ds.Len()
		stats["lastLoadUnix"] = s.lastLoad.Load()
	}
	return stats
}

// outcome classifies a query error for the metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, query.ErrBadMetric):
		return "bad_metric"
	case errors.Is(err, query.ErrInvalidLimit):
		return "invalid_limit"
	case errors.Is(err, query.ErrUnknownState):
		return "unknown_state"
	default:
		return "error"
	}
}
