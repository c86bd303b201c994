package zstdcodec

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	original := []byte("猫は可愛い動物です。食べる、飲む、走る。")
	compressed, err := Compress(original, LevelFromConfig(3))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if bytes.Equal(compressed, original) {
		t.Fatal("expected compressed output to differ from input")
	}
	out, err := Decompress(compressed, len(original))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, original) {
		t.Fatalf("round trip mismatch: got %q, want %q", out, original)
	}
}

func TestDecompressMalformedFrameErrors(t *testing.T) {
	if _, err := Decompress([]byte("not a zstd frame"), 0); err == nil {
		t.Fatal("expected error decompressing garbage")
	}
}

func TestDecompressLenientSwallowsErrors(t *testing.T) {
	out := DecompressLenient([]byte("not a zstd frame"), 0)
	if len(out) != 0 {
		t.Fatalf("expected empty slice, got %v", out)
	}
}

func TestLevelFromConfigMonotonic(t *testing.T) {
	prev := LevelFromConfig(0)
	for _, level := range []int{1, 3, 7, 10} {
		got := LevelFromConfig(level)
		if got < prev {
			t.Errorf("LevelFromConfig(%d) = %v, expected non-decreasing from %v", level, got, prev)
		}
		prev = got
	}
}
