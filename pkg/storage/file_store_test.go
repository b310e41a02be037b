package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
)

func sampleRecord() *extractor.ExtractionRecord {
	return &extractor.ExtractionRecord{
		Source:      "channel.html",
		ExtractedAt: "2024-06-01T12:00:00Z",
		Count:       2,
		Entries: []extractor.VideoEntry{
			{URL: "https://www.youtube.com/watch?v=aaaaaaaaaa1", Title: "A"},
			{URL: "https://www.youtube.com/watch?v=bbbbbbbbbb2"},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "videos.json")

	record := sampleRecord()
	if err := store.SaveRecord(ctx, path, record); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	loaded, err := store.LoadRecord(ctx, path)
	if err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}

	if loaded.Source != record.Source || loaded.Count != record.Count {
		t.Errorf("loaded record differs: %+v", loaded)
	}
	if len(loaded.Entries) != 2 || loaded.Entries[0] != record.Entries[0] {
		t.Errorf("entries differ: %+v", loaded.Entries)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore()
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	_, err := store.LoadRecord(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the offending path, got: %v", err)
	}
}

func TestFileStoreLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore().LoadRecord(context.Background(), path)
	if !errors.Is(err, ErrRecordFormat) {
		t.Errorf("err = %v, want ErrRecordFormat", err)
	}
}

func TestFileStoreLoadRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing entries", `{"source":"x","count":0}`},
		{"entries not a list", `{"source":"x","count":0,"entries":{}}`},
		{"entry without url", `{"source":"x","count":1,"entries":[{"title":"no url"}]}`},
		{"count mismatch", `{"source":"x","count":5,"entries":[{"url":"u1"}]}`},
	}

	store := NewFileStore()
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "record.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := store.LoadRecord(context.Background(), path)
			if !errors.Is(err, ErrRecordFormat) {
				t.Errorf("err = %v, want ErrRecordFormat", err)
			}
		})
	}
}

func TestFileStoreLoadEmptyRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte(`{"source":"x","count":0,"entries":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	record, err := NewFileStore().LoadRecord(context.Background(), path)
	if err != nil {
		t.Fatalf("an empty record is valid, got: %v", err)
	}
	if record.Count != 0 || len(record.Entries) != 0 {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestFileStoreSaveLeavesNoPartialOutput(t *testing.T) {
	store := NewFileStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "videos.json")

	if err := store.SaveRecord(context.Background(), path, sampleRecord()); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no output file should exist after a failed save")
	}
	// No temp files either.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("stray files left behind: %v", entries)
	}
}

func TestFileStoreSaveResult(t *testing.T) {
	store := NewFileStore()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "result.json")

	result := &differ.ComparisonResult{
		First:             "a.json",
		Second:            "b.json",
		OnlyInFirst:       []string{"u1"},
		OnlyInFirstCount:  1,
		OnlyInSecondCount: 0,
		CommonCount:       2,
		TotalUnique:       3,
	}
	if err := store.SaveResult(ctx, path, result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"only_in_first"`, `"common_count": 2`, `"total_unique": 3`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}
}

func TestFileStoreSaveRejectsInvalidRecord(t *testing.T) {
	store := NewFileStore()
	path := filepath.Join(t.TempDir(), "videos.json")

	bad := &extractor.ExtractionRecord{Source: "x", Count: 3, Entries: []extractor.VideoEntry{{URL: "u"}}}
	if err := store.SaveRecord(context.Background(), path, bad); !errors.Is(err, ErrRecordFormat) {
		t.Errorf("err = %v, want ErrRecordFormat", err)
	}
}
