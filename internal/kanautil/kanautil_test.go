package kanautil

import "testing"

func TestCodepointLen(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"日本語", 3},
		{"食べた", 3},
	}
	for _, c := range cases {
		if got := CodepointLen(c.in); got != c.want {
			t.Errorf("CodepointLen(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPrefixCodepoints(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"食べられた", 2, "食べ"},
		{"食べられた", 0, ""},
		{"食べられた", 100, "食べられた"},
		{"", 3, ""},
	}
	for _, c := range cases {
		if got := PrefixCodepoints(c.in, c.n); got != c.want {
			t.Errorf("PrefixCodepoints(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestSuffixCodepoints(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"食べられた", 3, "られた"},
		{"食べられた", 100, "食べられた"},
		{"食べられた", 0, ""},
	}
	for _, c := range cases {
		if got := SuffixCodepoints(c.in, c.n); got != c.want {
			t.Errorf("SuffixCodepoints(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestHasSuffixAndTrim(t *testing.T) {
	if !HasSuffixCodepoints("食べられた", "られた") {
		t.Fatal("expected suffix match")
	}
	if HasSuffixCodepoints("食", "られた") {
		t.Fatal("expected no suffix match on shorter string")
	}
	if got := TrimSuffixCodepoints("食べられた", "られた"); got != "食べ" {
		t.Fatalf("TrimSuffixCodepoints = %q, want 食べ", got)
	}
}

func TestFoldASCII(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"HELLO", "hello"},
		{"日本語", "日本語"},
		{"MixedCase123", "mixedcase123"},
		{"", ""},
	}
	for _, c := range cases {
		if got := FoldASCII(c.in); got != c.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
