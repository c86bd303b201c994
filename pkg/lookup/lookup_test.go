package lookup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kotobaserve/kotoba/pkg/config"
	"github.com/kotobaserve/kotoba/pkg/dictimport"
	"github.com/kotobaserve/kotoba/pkg/dictreader"
)

func buildTestBundle(t *testing.T) string {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	writeJSON := func(name string, v interface{}) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Fatal(err)
		}
	}

	writeJSON("index.json", map[string]interface{}{"title": "Test Dict", "revision": "r1", "format": 3})
	writeJSON("term_bank_1.json", []interface{}{
		[]interface{}{"食べる", "たべる", "", "v1", 0, []string{"to eat"}, 1, ""},
		[]interface{}{"食べます", "たべます", "", "", 0, []string{"polite form entry, unlikely in a real dict but exercises direct matches"}, 2, ""},
	})
	writeJSON("term_meta_bank_1.json", []interface{}{
		[]interface{}{"食べる", "freq", 500},
	})
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	if err := os.WriteFile(zipPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	outRoot := t.TempDir()
	result, err := dictimport.Import(zipPath, outRoot, config.ImportConfig{WorkerCount: 1, ZstdLevel: 3})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !result.Success {
		t.Fatalf("import failed: %+v", result.Errors)
	}
	return result.Dir
}

func newMountedReader(t *testing.T, dir string) *dictreader.Reader {
	t.Helper()
	r := dictreader.New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	if err := r.MountFrequency(dir); err != nil {
		t.Fatalf("MountFrequency: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestLookupFindsDeinflectedCandidate(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	results := Lookup(r, "食べません", 16, 50)
	found := false
	for _, res := range results {
		if res.Expression == "食べる" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 食べません to deinflect to 食べる, got %+v", results)
	}
}

func TestLookupDirectMatch(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	results := Lookup(r, "食べる", 16, 50)
	if len(results) == 0 || results[0].Expression != "食べる" {
		t.Fatalf("expected direct match on 食べる, got %+v", results)
	}
}

func TestLookupZeroScanLengthReturnsNil(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	if got := Lookup(r, "食べる", 0, 50); got != nil {
		t.Fatalf("expected nil for scanLength=0, got %+v", got)
	}
}

func TestLookupZeroMaxResultsReturnsNil(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	if got := Lookup(r, "食べる", 16, 0); got != nil {
		t.Fatalf("expected nil for maxResults=0, got %+v", got)
	}
}

func TestLookupTruncatesToMaxResults(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	results := Lookup(r, "食べる", 16, 1)
	if len(results) > 1 {
		t.Fatalf("expected at most 1 result, got %d", len(results))
	}
}

func TestLookupPrefersShorterDeinflectionTrace(t *testing.T) {
	dir := buildTestBundle(t)
	r := newMountedReader(t, dir)

	results := Lookup(r, "食べます", 16, 50)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	// 食べます matches its own dictionary entry with zero deinflection
	// steps; 食べる is also reachable from the same prefix via the
	// masu-stem rule but with a one-step trace, so it should rank lower.
	if results[0].Expression != "食べます" {
		t.Fatalf("expected the zero-step direct entry to rank first, got %+v", results[0])
	}
}

func TestCompatibleAllowsUnconstrainedCandidate(t *testing.T) {
	if !compatible(0, "v5u") {
		t.Fatal("NONE condition should be compatible with any rules string")
	}
}

func TestCompatibleAllowsUntaggedDictionaryEntry(t *testing.T) {
	// A dictionary entry with no rules string imposes no constraint
	// either, even when the candidate carries a condition.
	if !compatible(1, "") {
		t.Fatal("an empty rules string should be compatible with any condition")
	}
}

func TestMinFreqForDictSkipsNegativeValues(t *testing.T) {
	res := &dictreader.TermResult{
		Frequencies: []dictreader.FreqGroup{
			{Entries: []dictreader.FreqEntry{{Value: -1}, {Value: 300}, {Value: -50}}},
		},
	}
	if got := minFreqForDict(res, 0); got != 300 {
		t.Fatalf("minFreqForDict = %v, want 300 (negative entries excluded)", got)
	}
}

func TestMinFreqForDictAllNegativeIsInfinite(t *testing.T) {
	res := &dictreader.TermResult{
		Frequencies: []dictreader.FreqGroup{
			{Entries: []dictreader.FreqEntry{{Value: -1}, {Value: -2}}},
		},
	}
	got := minFreqForDict(res, 0)
	if !math.IsInf(got, 1) {
		t.Fatalf("minFreqForDict = %v, want +Inf when every entry is negative", got)
	}
}
