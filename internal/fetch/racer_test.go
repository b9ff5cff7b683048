package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fixedRoute builds a Route that ignores the target and always hits
// the given URL, standing in for a third-party forwarder.
func fixedRoute(name, url string) Route {
	return Route{
		Name: name,
		Wrap: func(string) string { return url },
	}
}

func newTestRacer(t *testing.T, cfg RacerConfig) *Racer {
	t.Helper()
	return NewRacer(cfg, zap.NewNop())
}

func TestRaceFirstSuccessWins(t *testing.T) {
	t.Parallel()

	winner := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(30 * time.Millisecond)
		_, _ = w.Write([]byte("winning body"))
	}))
	defer winner.Close()

	loser := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer loser.Close()

	racer := newTestRacer(t, RacerConfig{
		Routes: []Route{
			fixedRoute("fast-failure", loser.URL),
			fixedRoute("slow-success", winner.URL),
			fixedRoute("another-failure", loser.URL),
		},
		Deadline: 2 * time.Second,
	})

	body, err := racer.Race(context.Background(), "https://example.org/page")
	if err != nil {
		t.Fatalf("Race error = %v", err)
	}
	if string(body) != "winning body" {
		t.Fatalf("Race body = %q", body)
	}
}

func TestRaceLateFailureDoesNotOverwriteWinner(t *testing.T) {
	t.Parallel()

	winner := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer winner.Close()

	slowLoser := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer slowLoser.Close()

	racer := newTestRacer(t, RacerConfig{
		Routes: []Route{
			fixedRoute("winner", winner.URL),
			fixedRoute("slow-loser", slowLoser.URL),
		},
		Deadline: 2 * time.Second,
	})

	body, err := racer.Race(context.Background(), "https://example.org/page")
	if err != nil {
		t.Fatalf("Race error = %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("Race body = %q", body)
	}
	// Give the losing goroutine time to finish; the settled result
	// must be unaffected.
	time.Sleep(150 * time.Millisecond)
}

func TestRaceAllRoutesFailed(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()

	racer := newTestRacer(t, RacerConfig{
		Routes: []Route{
			fixedRoute("one", failing.URL),
			fixedRoute("two", failing.URL),
			fixedRoute("three", failing.URL),
		},
		Deadline: 2 * time.Second,
	})

	_, err := racer.Race(context.Background(), "https://example.org/page")
	if !errors.Is(err, ErrAllRoutesFailed) {
		t.Fatalf("Race error = %v, want ErrAllRoutesFailed", err)
	}
	if errors.Is(err, ErrRaceTimeout) {
		t.Fatalf("all-routes failure must not also report a timeout: %v", err)
	}
}

func TestRaceTimeout(t *testing.T) {
	t.Parallel()

	hanging := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hanging.Close()

	racer := newTestRacer(t, RacerConfig{
		Routes: []Route{
			fixedRoute("hang-one", hanging.URL),
			fixedRoute("hang-two", hanging.URL),
		},
		Deadline: 100 * time.Millisecond,
	})

	start := time.Now()
	_, err := racer.Race(context.Background(), "https://example.org/page")
	if !errors.Is(err, ErrRaceTimeout) {
		t.Fatalf("Race error = %v, want ErrRaceTimeout", err)
	}
	if errors.Is(err, ErrAllRoutesFailed) {
		t.Fatalf("timeout must not also report all-routes failure: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("race did not respect the shared deadline: took %v", elapsed)
	}
}

func TestRaceNoRoutes(t *testing.T) {
	t.Parallel()

	racer := newTestRacer(t, RacerConfig{Deadline: time.Second})
	_, err := racer.Race(context.Background(), "https://example.org/page")
	if !errors.Is(err, ErrAllRoutesFailed) {
		t.Fatalf("Race error = %v, want ErrAllRoutesFailed", err)
	}
}

func TestRaceStaggerDelaysLaterRoutes(t *testing.T) {
	t.Parallel()

	hits := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- r.URL.Query().Get("route")
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte("body"))
	}))
	defer server.Close()

	racer := newTestRacer(t, RacerConfig{
		Routes: []Route{
			fixedRoute("first", server.URL+"/?route=first"),
			fixedRoute("second", server.URL+"/?route=second"),
		},
		Deadline: 2 * time.Second,
		Stagger:  100 * time.Millisecond,
	})

	if _, err := racer.Race(context.Background(), "https://example.org/page"); err != nil {
		t.Fatalf("Race error = %v", err)
	}
	if first := <-hits; first != "first" {
		t.Fatalf("expected the unstaggered route to launch first, got %q", first)
	}
}
