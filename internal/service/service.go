// Package service orchestrates the readings pipeline: normalize date,
// check cache, fetch, parse, populate cache, return.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/datekey"
	"github.com/verbumdei/lectio/internal/fetch"
	"github.com/verbumdei/lectio/internal/liturgy"
)

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// Cache is the tiered readings cache consumed by the service.
type Cache interface {
	Get(ctx context.Context, key string) (liturgy.DailyReadings, bool)
	Put(ctx context.Context, key string, value liturgy.DailyReadings) error
}

// Racer retrieves a URL through alternate routes when direct fetching
// is blocked.
type Racer interface {
	Race(ctx context.Context, target string) ([]byte, error)
}

// Parser turns raw markup into a readings record.
type Parser interface {
	Parse(markup []byte, date time.Time) (liturgy.DailyReadings, error)
}

// Archiver persists raw page snapshots best-effort.
type Archiver interface {
	Save(ctx context.Context, key string, body []byte) (string, error)
}

// Service is the sole entry point for callers.
type Service struct {
	baseURL string
	fetcher fetch.Fetcher
	racer   Racer
	env     fetch.Environment
	parser  Parser
	cache   Cache
	archive Archiver
	clock   Clock
	logger  *zap.Logger
}

// Options carries the service dependencies. Racer and Archive are
// optional; Cache, Fetcher, Parser, Env and Clock are required.
type Options struct {
	BaseURL string
	Fetcher fetch.Fetcher
	Racer   Racer
	Env     fetch.Environment
	Parser  Parser
	Cache   Cache
	Archive Archiver
	Clock   Clock
	Logger  *zap.Logger
}

// New constructs a Service.
func New(opts Options) *Service {
	return &Service{
		baseURL: opts.BaseURL,
		fetcher: opts.Fetcher,
		racer:   opts.Racer,
		env:     opts.Env,
		parser:  opts.Parser,
		cache:   opts.Cache,
		archive: opts.Archive,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}
}

// GetReadings returns the readings for an encoded MMDDYY key. Date
// key errors propagate unchanged so callers can distinguish malformed
// keys from nonexistent dates.
func (s *Service) GetReadings(ctx context.Context, key string) (liturgy.DailyReadings, error) {
	date, err := datekey.Decode(key)
	if err != nil {
		return liturgy.DailyReadings{}, err
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	body, err := s.retrieve(ctx, key)
	if err != nil {
		return liturgy.DailyReadings{}, err
	}

	readings, err := s.parser.Parse(body, date)
	if err != nil {
		return liturgy.DailyReadings{}, fmt.Errorf("parse readings for %s: %w", key, err)
	}

	s.archiveSnapshot(ctx, key, body)

	if err := s.cache.Put(ctx, key, readings); err != nil {
		// The cache is an optimization; a failed write never fails the request.
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return readings, nil
}

// GetReadingsForDate returns the readings for a calendar date.
func (s *Service) GetReadingsForDate(ctx context.Context, date time.Time) (liturgy.DailyReadings, error) {
	return s.GetReadings(ctx, datekey.Encode(date))
}

// Today returns the readings for the current date.
func (s *Service) Today(ctx context.Context) (liturgy.DailyReadings, error) {
	return s.GetReadingsForDate(ctx, s.clock.Now())
}

// Tomorrow returns the readings for the next calendar date.
func (s *Service) Tomorrow(ctx context.Context) (liturgy.DailyReadings, error) {
	return s.ByOffset(ctx, 1)
}

// ByOffset returns the readings for the current date shifted by n days.
func (s *Service) ByOffset(ctx context.Context, n int) (liturgy.DailyReadings, error) {
	return s.GetReadingsForDate(ctx, s.clock.Now().AddDate(0, 0, n))
}

// GetSeason projects the season for an encoded key.
func (s *Service) GetSeason(ctx context.Context, key string) (liturgy.Season, error) {
	readings, err := s.GetReadings(ctx, key)
	if err != nil {
		return "", err
	}
	return readings.Season, nil
}

// GetRank projects the rank for an encoded key.
func (s *Service) GetRank(ctx context.Context, key string) (liturgy.Rank, error) {
	readings, err := s.GetReadings(ctx, key)
	if err != nil {
		return "", err
	}
	return readings.Rank, nil
}

// PageURL builds the upstream page URL for an encoded key.
func (s *Service) PageURL(key string) string {
	return fmt.Sprintf("%s/%s.cfm", s.baseURL, key)
}

// retrieve fetches the raw page. Direct fetch is always tried first;
// the proxy race exists to defeat cross-origin blocking, so it only
// runs in environments where direct fetches are expected to fail.
// Elsewhere a direct failure propagates as-is.
func (s *Service) retrieve(ctx context.Context, key string) ([]byte, error) {
	target := s.PageURL(key)
	body, err := s.fetcher.Fetch(ctx, target)
	if err == nil {
		return body, nil
	}
	if !s.env.DirectBlocked() || s.racer == nil {
		return nil, fmt.Errorf("fetch readings for %s: %w", key, err)
	}

	s.logger.Debug("direct fetch failed, racing proxy routes",
		zap.String("key", key),
		zap.Error(err),
	)
	body, raceErr := s.racer.Race(ctx, target)
	if raceErr != nil {
		return nil, fmt.Errorf("fetch readings for %s: %w", key, raceErr)
	}
	return body, nil
}

// archiveSnapshot saves the raw page best-effort.
func (s *Service) archiveSnapshot(ctx context.Context, key string, body []byte) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Save(ctx, key, body); err != nil {
		s.logger.Debug("page archive failed", zap.String("key", key), zap.Error(err))
	}
}
