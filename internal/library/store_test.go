package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storyshort/internal/library"
	"storyshort/internal/testsupport"
)

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	comp := testsupport.SaveComposition(t, store, "One. Two.", "/audio/a.mp3")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenLibrary(t, cfg)
	rec, err := reopened.Get(context.Background(), comp.ID())
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if rec.Script != "One. Two." || rec.SegmentCount != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.AudioRef != "/audio/a.mp3" || rec.VisualKind != "image" || rec.VisualRef != "/assets/1.jpg" {
		t.Fatalf("unexpected references: %+v", rec)
	}
	if !rec.Degraded || rec.Frames != 300 || rec.FPS != 30 {
		t.Fatalf("expected fallback timing, got %+v", rec)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps, got %+v", rec)
	}
}

func TestUpdateTimingStoresResolvedDuration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	comp := testsupport.SaveComposition(t, store, "A cat sat. It slept. The end!", "a.mp3")

	ctx := context.Background()
	if err := store.UpdateTiming(ctx, comp.WithDuration(9)); err != nil {
		t.Fatalf("UpdateTiming: %v", err)
	}
	rec, err := store.Get(ctx, comp.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Degraded || rec.Seconds != 9 || rec.Frames != 270 {
		t.Fatalf("expected resolved timing, got %+v", rec)
	}
}

func TestUpdateTimingUnknownComposition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	other := testsupport.NewConfig(t)
	otherStore := testsupport.MustOpenLibrary(t, other)
	comp := testsupport.SaveComposition(t, otherStore, "Hi.", "a.mp3")

	if err := store.UpdateTiming(context.Background(), comp); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	store := testsupport.MustOpenLibrary(t, testsupport.NewConfig(t))
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	store := testsupport.MustOpenLibrary(t, testsupport.NewConfig(t))
	comp := testsupport.SaveComposition(t, store, "Hi.", "a.mp3")
	if err := store.Save(context.Background(), comp.WithDuration(2)); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Seconds != 2 {
		t.Fatalf("expected a single refreshed record, got %+v", records)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := testsupport.MustOpenLibrary(t, testsupport.NewConfig(t))
	first := testsupport.SaveComposition(t, store, "First.", "1.mp3")
	second := testsupport.SaveComposition(t, store, "Second.", "2.mp3")
	third := testsupport.SaveComposition(t, store, "Third.", "3.mp3")

	all, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID != third.ID() || all[2].ID != first.ID() {
		t.Fatalf("expected newest first, got %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	limited, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 || limited[1].ID != second.ID() {
		t.Fatalf("unexpected limited list: %+v", limited)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("Count = %d, want 3", count)
	}
}

func TestRecordExport(t *testing.T) {
	store := testsupport.MustOpenLibrary(t, testsupport.NewConfig(t))
	comp := testsupport.SaveComposition(t, store, "Hi.", "a.mp3")
	ctx := context.Background()

	if _, err := store.RecordExport(ctx, comp.ID(), "", errors.New("ffmpeg failed")); err != nil {
		t.Fatalf("RecordExport failure: %v", err)
	}
	ok, err := store.RecordExport(ctx, comp.ID(), "/out/a.mp4", nil)
	if err != nil {
		t.Fatalf("RecordExport success: %v", err)
	}
	if ok.ID == 0 || ok.Status != library.ExportSucceeded {
		t.Fatalf("unexpected export: %+v", ok)
	}

	exports, err := store.Exports(ctx, comp.ID())
	if err != nil {
		t.Fatalf("Exports: %v", err)
	}
	if len(exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(exports))
	}
	if exports[0].Status != library.ExportFailed || exports[0].ErrorMessage != "ffmpeg failed" {
		t.Fatalf("unexpected failed export: %+v", exports[0])
	}
	if exports[1].OutputPath != "/out/a.mp4" {
		t.Fatalf("unexpected output path: %+v", exports[1])
	}
}

func TestRecordExportRequiresComposition(t *testing.T) {
	store := testsupport.MustOpenLibrary(t, testsupport.NewConfig(t))
	if _, err := store.RecordExport(context.Background(), "missing", "/out/a.mp4", nil); err == nil {
		t.Fatal("expected foreign key violation for unknown composition")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	store, err := library.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if _, err := store.RawExec(context.Background(), "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	store.Close()

	if _, err := library.OpenPath(path); !errors.Is(err, library.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database to remain: %v", err)
	}
}
