package storage

import (
	"context"
	"errors"
	"testing"

	"ytdiff-go/pkg/extractor"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveRecord(ctx, "restricted", sampleRecord()); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	loaded, err := store.LoadRecord(ctx, "restricted")
	if err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}
	if loaded.Count != 2 {
		t.Errorf("loaded.Count = %d, want 2", loaded.Count)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.LoadRecord(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreLoadedRecordsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveRecord(ctx, "a", sampleRecord()); err != nil {
		t.Fatal(err)
	}

	first, err := store.LoadRecord(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	first.Entries[0].URL = "mutated"

	second, err := store.LoadRecord(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if second.Entries[0].URL == "mutated" {
		t.Error("stored record was mutated through a loaded copy")
	}
}

func TestMemoryStoreRejectsInvalidRecord(t *testing.T) {
	store := NewMemoryStore()
	bad := &extractor.ExtractionRecord{Source: "x", Count: 1, Entries: nil}

	if err := store.SaveRecord(context.Background(), "bad", bad); !errors.Is(err, ErrRecordFormat) {
		t.Errorf("err = %v, want ErrRecordFormat", err)
	}
}

func TestMemoryStoreSources(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.SaveRecord(ctx, "a", sampleRecord())
	_ = store.SaveRecord(ctx, "b", sampleRecord())

	sources := store.Sources()
	if len(sources) != 2 {
		t.Errorf("Sources() = %v, want two keys", sources)
	}
}
