package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"vehicle_valuation/pkg/models"
)

type fakeFetcher struct {
	quotes   []models.PriceQuote
	warnings []string
}

func (f *fakeFetcher) FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string) {
	return f.quotes, f.warnings
}

type fakeArchiver struct {
	identity models.VehicleIdentity
	year     int
	saved    []models.PriceQuote
	calls    int
	err      error
}

func (a *fakeArchiver) SaveAll(ctx context.Context, identity models.VehicleIdentity, year int, quotes []models.PriceQuote) error {
	a.identity, a.year, a.saved = identity, year, quotes
	a.calls++
	return a.err
}

func TestArchivingFetcherSavesFetchedQuotes(t *testing.T) {
	quotes := []models.PriceQuote{
		{Source: "cardekho", Tier: models.TierPrimaryAggregator, Price: 659000, FetchedAt: time.Now()},
		{Source: "zigwheels", Tier: models.TierSecondaryAggregator, Price: 660000, FetchedAt: time.Now()},
	}
	archive := &fakeArchiver{}
	f := NewArchivingFetcher(&fakeFetcher{quotes: quotes, warnings: []string{"one source slow"}}, archive)
	f.year = func() int { return 2025 }

	identity := models.VehicleIdentity{Make: "Maruti", Model: "Swift", Year: 2021}
	got, warnings := f.FetchAll(context.Background(), identity)

	if len(got) != 2 || got[0].Source != "cardekho" {
		t.Fatalf("quotes not passed through: %+v", got)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings not passed through: %v", warnings)
	}
	if archive.calls != 1 || len(archive.saved) != 2 {
		t.Fatalf("expected one archive call with both quotes, got %d call(s) with %d", archive.calls, len(archive.saved))
	}
	if archive.year != 2025 {
		t.Errorf("quotes should archive under the fetch year, got %d", archive.year)
	}
	if archive.identity != identity {
		t.Errorf("archived identity = %+v, want %+v", archive.identity, identity)
	}
}

func TestArchivingFetcherToleratesArchiveFailure(t *testing.T) {
	quotes := []models.PriceQuote{{Source: "cardekho", Price: 659000}}
	archive := &fakeArchiver{err: errors.New("pool exhausted")}
	f := NewArchivingFetcher(&fakeFetcher{quotes: quotes}, archive)

	got, _ := f.FetchAll(context.Background(), models.VehicleIdentity{Make: "Maruti", Model: "Swift"})
	if len(got) != 1 {
		t.Fatalf("archive failure must not drop quotes, got %+v", got)
	}
}

func TestArchivingFetcherSkipsEmptyRounds(t *testing.T) {
	archive := &fakeArchiver{}
	f := NewArchivingFetcher(&fakeFetcher{}, archive)

	f.FetchAll(context.Background(), models.VehicleIdentity{Make: "Maruti", Model: "Swift"})
	if archive.calls != 0 {
		t.Errorf("empty fetch round should not touch the archive, got %d call(s)", archive.calls)
	}
}
