package cache

import (
	"context"
	"testing"

	"github.com/verbumdei/lectio/internal/liturgy"
)

func sampleReadings() liturgy.DailyReadings {
	return liturgy.DailyReadings{
		Date:        "2025-12-15",
		DisplayDate: "Monday, December 15, 2025",
		Title:       "Monday of the Third Week of Advent",
		Season:      liturgy.SeasonAdvent,
		Rank:        liturgy.RankFerial,
		Lectionary:  "187",
		Readings: []liturgy.Reading{
			{Name: "Reading 1", Reference: "Nm 24:2-7, 15-17a", Text: "When Balaam raised his eyes"},
		},
	}
}

func TestMemoryGetMiss(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, ok, err := m.Get(context.Background(), "121525")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if ok {
		t.Fatal("expected a miss on empty tier")
	}
}

func TestMemoryPutGet(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Put(ctx, "121525", sampleReadings()); err != nil {
		t.Fatalf("Put error = %v", err)
	}

	got, ok, err := m.Get(ctx, "121525")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v), want hit", ok, err)
	}
	if got.Lectionary != "187" || len(got.Readings) != 1 {
		t.Fatalf("Get returned %+v", got)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestMemoryStoresCopies(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	original := sampleReadings()
	if err := m.Put(ctx, "121525", original); err != nil {
		t.Fatalf("Put error = %v", err)
	}

	// Mutating what we stored or what we read back must not affect
	// the cached entry.
	original.Readings[0].Name = "mutated after put"
	first, _, _ := m.Get(ctx, "121525")
	first.Readings[0].Name = "mutated after get"

	second, _, _ := m.Get(ctx, "121525")
	if second.Readings[0].Name != "Reading 1" {
		t.Fatalf("cache entry was aliased: %q", second.Readings[0].Name)
	}
}
