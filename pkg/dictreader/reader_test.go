package dictreader

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kotobaserve/kotoba/pkg/config"
	"github.com/kotobaserve/kotoba/pkg/dictimport"
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
		[]interface{}{"猫", "ねこ", "", "", 0, []string{"cat"}, 1, ""},
		[]interface{}{"食べる", "たべる", "", "v1", 0, []string{"to eat"}, 2, "common"},
	})
	writeJSON("term_meta_bank_1.json", []interface{}{
		[]interface{}{"猫", "freq", 1500},
		[]interface{}{"食べる", "freq", map[string]interface{}{"value": 200, "displayValue": "200"}},
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

func TestQueryTermByExpressionAndReading(t *testing.T) {
	dir := buildTestBundle(t)
	r := New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	defer r.Close()

	byExpr := r.QueryTerm("猫")
	if len(byExpr) != 1 || byExpr[0].Expression != "猫" || byExpr[0].Reading != "ねこ" {
		t.Fatalf("QueryTerm(猫) = %+v", byExpr)
	}
	byReading := r.QueryTerm("ねこ")
	if len(byReading) != 1 || byReading[0].Expression != "猫" {
		t.Fatalf("QueryTerm(ねこ) = %+v", byReading)
	}
}

func TestQueryTermUnknownKeyReturnsEmpty(t *testing.T) {
	dir := buildTestBundle(t)
	r := New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	defer r.Close()

	if got := r.QueryTerm("存在しない"); len(got) != 0 {
		t.Fatalf("expected no results for an unknown key, got %+v", got)
	}
}

func TestQueryTermDecompressesGlossary(t *testing.T) {
	dir := buildTestBundle(t)
	r := New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	defer r.Close()

	results := r.QueryTerm("食べる")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Glossaries) != 1 {
		t.Fatalf("expected 1 glossary entry, got %d", len(results[0].Glossaries))
	}
	if len(results[0].Glossaries[0].Data) == 0 {
		t.Fatal("expected non-empty decompressed glossary data")
	}
}

func TestAttachFrequenciesAlignsByMountOrder(t *testing.T) {
	dir := buildTestBundle(t)
	r := New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	if err := r.MountFrequency(dir); err != nil {
		t.Fatalf("MountFrequency: %v", err)
	}
	defer r.Close()

	results := r.QueryTerm("猫")
	r.AttachFrequencies(results)
	if len(results[0].Frequencies) != r.FrequencyDictCount() {
		t.Fatalf("Frequencies has %d groups, want %d (one per mounted freq dict)", len(results[0].Frequencies), r.FrequencyDictCount())
	}
	if len(results[0].Frequencies[0].Entries) != 1 || results[0].Frequencies[0].Entries[0].Value != 1500 {
		t.Fatalf("Frequencies[0] = %+v, want one entry of value 1500", results[0].Frequencies[0])
	}
}

func TestAttachFrequenciesEmptyGroupWhenNoMatch(t *testing.T) {
	dir := buildTestBundle(t)
	r := New()
	if err := r.MountTerm(dir); err != nil {
		t.Fatalf("MountTerm: %v", err)
	}
	if err := r.MountFrequency(dir); err != nil {
		t.Fatalf("MountFrequency: %v", err)
	}
	defer r.Close()

	// Construct a result for a term with no frequency meta at all, to
	// confirm AttachFrequencies still appends an (empty) group rather
	// than skipping it, so per-dictionary indexing stays aligned.
	results := []*TermResult{{Expression: "不明", Reading: "ふめい"}}
	r.AttachFrequencies(results)
	if len(results[0].Frequencies) != 1 {
		t.Fatalf("expected one (possibly empty) group, got %d", len(results[0].Frequencies))
	}
	if len(results[0].Frequencies[0].Entries) != 0 {
		t.Fatalf("expected no entries for an unmatched term, got %+v", results[0].Frequencies[0].Entries)
	}
}
