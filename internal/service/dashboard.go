package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/dto"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// DashboardService is the read model behind the analytics view. Parsed
// records are cached for at most cacheTTL.
type DashboardService struct {
	reader   LogReader
	table    *retailer.Table
	cacheTTL time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu        sync.Mutex
	cached    []domain.LaunchRecord
	fetchedAt time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(reader LogReader, table *retailer.Table, cacheTTL time.Duration, log *zap.Logger) *DashboardService {
	return &DashboardService{
		reader:   reader,
		table:    table,
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
	}
}

// records returns the cached log, refreshing it once it is older than cacheTTL.
func (s *DashboardService) records(ctx context.Context) ([]domain.LaunchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.cacheTTL {
		return s.cached, nil
	}

	snap, err := s.reader.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch log: %w", err)
	}
	records, err := store.DecodeRecords(snap.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse launch log: %w", err)
	}

	s.cached = records
	s.fetchedAt = s.now()
	s.log.Debug("Launch log refreshed", zap.Int("records", len(records)), zap.Bool("exists", snap.Exists))

	return records, nil
}

func (s *DashboardService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

func (s *DashboardService) query(q analytics.Query) analytics.Query {
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	return q
}

// Launches returns the filtered launch table, newest first
func (s *DashboardService) Launches(ctx context.Context, q analytics.Query) ([]domain.LaunchRecord, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	filtered := analytics.Filter(records, s.query(q), s.table)
	analytics.SortByDateDesc(filtered)
	return filtered, nil
}

// Summary returns the headline numbers of a view
func (s *DashboardService) Summary(ctx context.Context, q analytics.Query) (*analytics.Summary, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	q = s.query(q)
	return analytics.Summarize(analytics.Filter(records, q, s.table), q, s.table), nil
}

// Retailers lists the configured retailers in table order
func (s *DashboardService) Retailers() []dto.RetailerInfo {
	out := make([]dto.RetailerInfo, len(s.table.Entries))
	for i, e := range s.table.Entries {
		out[i] = dto.RetailerInfo{
			Name:     e.Name,
			Keywords: e.Keywords,
			Schedule: s.table.Schedule(e.Name),
		}
	}
	return out
}

// RawLog returns the log exactly as stored, bypassing the cache
func (s *DashboardService) RawLog(ctx context.Context) (*store.Snapshot, error) {
	return s.reader.Snapshot(ctx)
}

// ReplaceLog overwrites the log if expectedVersion is still current
func (s *DashboardService) ReplaceLog(ctx context.Context, content []byte, expectedVersion string) (string, error) {
	version, err := s.reader.Replace(ctx, content, expectedVersion)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return version, nil
}
