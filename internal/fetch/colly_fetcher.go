package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/metrics"
)

// CollyFetcher implements Fetcher for direct upstream requests using
// the Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// CollyConfig holds the knobs for the direct fetcher.
type CollyConfig struct {
	UserAgent      string
	RequestTimeout time.Duration
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg CollyConfig, logger *zap.Logger) (*CollyFetcher, error) {
	opts := []colly.CollectorOption{
		colly.UserAgent(cfg.UserAgent),
	}
	base := colly.NewCollector(opts...)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.RequestTimeout)

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves a page via the configured Colly collector. Non-2xx
// responses yield a StatusError; transport failures wrap ErrNetwork.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{body: append([]byte{}, r.Body...)})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			send(fetchResult{err: &StatusError{Code: r.StatusCode}})
			return
		}
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchResult{err: fmt.Errorf("%w: %v", ErrNetwork, err)})
	})

	if err := collector.Visit(rawURL); err != nil {
		metrics.ObserveFetch("direct", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.err != nil {
			metrics.ObserveFetch("direct", metrics.OutcomeError)
			f.logger.Debug("direct fetch failed",
				zap.String("url", rawURL),
				zap.Error(res.err),
			)
			return nil, res.err
		}
		metrics.ObserveFetch("direct", metrics.OutcomeSuccess)
		return res.body, nil
	default:
		metrics.ObserveFetch("direct", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: colly fetch produced no result", ErrNetwork)
	}
}

type fetchResult struct {
	body []byte
	err  error
}
