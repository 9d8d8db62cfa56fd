package memstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
)

func TestPersonalWords(t *testing.T) {
	ctx := context.Background()
	st := New()

	st.AddPersonalWords(ctx, []string{"Typst", "", "ppi"})

	words, _ := st.PersonalWords(ctx)
	if want := []string{"ppi", "typst"}; !reflect.DeepEqual(words, want) {
		t.Errorf("PersonalWords = %q, want %q", words, want)
	}

	if ok, _ := st.RemovePersonalWord(ctx, "TYPST"); !ok {
		t.Error("Expected 'typst' to be removed")
	}
	if ok, _ := st.RemovePersonalWord(ctx, "typst"); ok {
		t.Error("Second removal should report false")
	}
}

func TestRunsAreCopied(t *testing.T) {
	ctx := context.Background()
	st := New()

	unknown := []string{"teh"}
	st.RecordRun(ctx, store.Run{ID: "01A", Unknown: unknown})
	unknown[0] = "changed"

	got, ok, _ := st.GetRun(ctx, "01A")
	if !ok {
		t.Fatal("Expected run")
	}
	if got.Unknown[0] != "teh" {
		t.Errorf("stored run was mutated through caller slice: %q", got.Unknown)
	}
}

func TestRecentRuns(t *testing.T) {
	ctx := context.Background()
	st := New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"01A", "01B", "01C"} {
		st.RecordRun(ctx, store.Run{ID: id, CheckedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	runs, _ := st.RecentRuns(ctx, 0)
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "01C" || runs[2].ID != "01A" {
		t.Errorf("unexpected order: %s .. %s", runs[0].ID, runs[2].ID)
	}

	runs, _ = st.RecentRuns(ctx, 1)
	if len(runs) != 1 || runs[0].ID != "01C" {
		t.Errorf("limit 1 returned %v", runs)
	}
}

func TestRecordRunRequiresID(t *testing.T) {
	ctx := context.Background()
	st := New()

	err := st.RecordRun(ctx, store.Run{Path: "doc.typ"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	runs, _ := st.RecentRuns(ctx, 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
