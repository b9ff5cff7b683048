package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/metrics"
)

// Racer retrieves a URL by racing it through alternate forwarding
// routes under one shared deadline. Exactly one outcome is observable:
// the first 2xx body, ErrAllRoutesFailed once every route has failed,
// or ErrRaceTimeout when the deadline fires first. Losing routes are
// cancelled best-effort through the shared context; a late failure can
// never overwrite a winner.
type Racer struct {
	routes   []Route
	client   *http.Client
	deadline time.Duration
	stagger  time.Duration
	maxBody  int64
	logger   *zap.Logger
}

// RacerConfig holds the racing knobs.
type RacerConfig struct {
	Routes []Route
	// Deadline is the shared budget for the whole race.
	Deadline time.Duration
	// Stagger offsets successive route launches to avoid a
	// simultaneous burst against shared proxy infrastructure.
	Stagger time.Duration
	// MaxBodyBytes caps each route's response body read.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 5 << 20

// NewRacer constructs a Racer. The racer keeps its own plain
// net/http client: route requests must be cancellable mid-flight via
// context, which the collector API does not expose.
func NewRacer(cfg RacerConfig, logger *zap.Logger) *Racer {
	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = 6 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Racer{
		routes: cfg.Routes,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        8,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		deadline: deadline,
		stagger:  cfg.Stagger,
		maxBody:  maxBody,
		logger:   logger,
	}
}

type raceResult struct {
	route string
	body  []byte
	err   error
}

// Race fetches target through every configured route and returns the
// first successful body.
func (r *Racer) Race(ctx context.Context, target string) ([]byte, error) {
	if len(r.routes) == 0 {
		return nil, fmt.Errorf("%w: no routes configured", ErrAllRoutesFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	// Buffered so losing goroutines never block after the race settles.
	results := make(chan raceResult, len(r.routes))
	for i, route := range r.routes {
		go r.runRoute(ctx, route, target, time.Duration(i)*r.stagger, results)
	}

	failures := make([]error, 0, len(r.routes))
	for range r.routes {
		select {
		case res := <-results:
			if res.err == nil {
				metrics.ObserveRaceRoute(res.route, metrics.OutcomeWin)
				metrics.ObserveFetch("race", metrics.OutcomeSuccess)
				r.logger.Debug("race settled", zap.String("route", res.route))
				return res.body, nil
			}
			if timeoutErr := r.deadlineError(ctx); timeoutErr != nil {
				return nil, timeoutErr
			}
			metrics.ObserveRaceRoute(res.route, metrics.OutcomeLose)
			failures = append(failures, fmt.Errorf("%s: %w", res.route, res.err))
		case <-ctx.Done():
			if timeoutErr := r.deadlineError(ctx); timeoutErr != nil {
				return nil, timeoutErr
			}
			return nil, ctx.Err()
		}
	}

	metrics.ObserveFetch("race", metrics.OutcomeError)
	return nil, fmt.Errorf("%w: %w", ErrAllRoutesFailed, errors.Join(failures...))
}

// deadlineError reports ErrRaceTimeout once the shared deadline has
// elapsed, so per-route context errors are not misread as route
// failures.
func (r *Racer) deadlineError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		metrics.ObserveFetch("race", metrics.OutcomeTimeout)
		return fmt.Errorf("%w after %s", ErrRaceTimeout, r.deadline)
	}
	return nil
}

// runRoute executes one route attempt after its stagger delay.
func (r *Racer) runRoute(ctx context.Context, route Route, target string, delay time.Duration, results chan<- raceResult) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			results <- raceResult{route: route.Name, err: ctx.Err()}
			return
		}
	}
	body, err := r.fetchRoute(ctx, route.Wrap(target))
	results <- raceResult{route: route.Name, body: body, err: err}
}

func (r *Racer) fetchRoute(ctx context.Context, wrapped string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return body, nil
}
