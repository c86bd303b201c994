// Package dictreader serves point queries against an immutable dictionary
// bundle (see pkg/bundle) by memory-mapping its offsets.bin and blobs.bin
// and evaluating the bundle's minimal perfect hash to locate candidate
// records.
package dictreader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kotobaserve/kotoba/internal/byteio"
	"github.com/kotobaserve/kotoba/internal/logging"
	"github.com/kotobaserve/kotoba/pkg/bundle"
	"github.com/kotobaserve/kotoba/pkg/mph"
	"github.com/kotobaserve/kotoba/pkg/zstdcodec"
)

var log = logging.New("dictreader")

// mount is one mounted bundle directory, shared by term/freq/pitch lists
// since all three use the identical on-disk layout.
type mount struct {
	name    string
	info    bundle.Info
	styles  string
	table   *mph.Table
	offsets *mappedFile
	blobs   *mappedFile
}

func (m *mount) close() {
	if m.offsets != nil {
		m.offsets.Close()
	}
	if m.blobs != nil {
		m.blobs.Close()
	}
}

func openMount(dir string) (*mount, error) {
	infoBytes, err := os.ReadFile(filepath.Join(dir, bundle.FileInfo))
	if err != nil {
		return nil, fmt.Errorf("dictreader: reading %s: %w", bundle.FileInfo, err)
	}
	var info bundle.Info
	if err := json.Unmarshal(infoBytes, &info); err != nil {
		return nil, fmt.Errorf("dictreader: parsing %s: %w", bundle.FileInfo, err)
	}

	var styles string
	if data, err := os.ReadFile(filepath.Join(dir, bundle.FileStyles)); err == nil {
		styles = string(data)
	}

	hashBytes, err := os.ReadFile(filepath.Join(dir, bundle.FileHash))
	if err != nil {
		return nil, fmt.Errorf("dictreader: reading %s: %w", bundle.FileHash, err)
	}
	table, err := mph.Deserialize(hashBytes)
	if err != nil {
		return nil, fmt.Errorf("dictreader: parsing %s: %w", bundle.FileHash, err)
	}

	offsets, err := openMapped(filepath.Join(dir, bundle.FileOffsets))
	if err != nil {
		return nil, fmt.Errorf("dictreader: mapping %s: %w", bundle.FileOffsets, err)
	}
	blobs, err := openMapped(filepath.Join(dir, bundle.FileBlobs))
	if err != nil {
		offsets.Close()
		return nil, fmt.Errorf("dictreader: mapping %s: %w", bundle.FileBlobs, err)
	}

	name := info.Title
	if name == "" {
		name = filepath.Base(dir)
	}
	return &mount{name: name, info: info, styles: styles, table: table, offsets: offsets, blobs: blobs}, nil
}

// Reader serves point queries across independently-mounted term, frequency,
// and pitch dictionaries. Mount order is preserved and used as the
// tiebreaker priority order described in spec.md §4.5.
type Reader struct {
	terms   []*mount
	freqs   []*mount
	pitches []*mount
}

// New returns an empty Reader ready for mounting.
func New() *Reader {
	return &Reader{}
}

// MountTerm mounts dir as a term dictionary, appending it to the ordered
// term-dictionary list.
func (r *Reader) MountTerm(dir string) error {
	m, err := openMount(dir)
	if err != nil {
		return err
	}
	r.terms = append(r.terms, m)
	return nil
}

// MountFrequency mounts dir as a frequency dictionary.
func (r *Reader) MountFrequency(dir string) error {
	m, err := openMount(dir)
	if err != nil {
		return err
	}
	r.freqs = append(r.freqs, m)
	return nil
}

// MountPitch mounts dir as a pitch-accent dictionary.
func (r *Reader) MountPitch(dir string) error {
	m, err := openMount(dir)
	if err != nil {
		return err
	}
	r.pitches = append(r.pitches, m)
	return nil
}

// Close releases every mapping held by the reader.
func (r *Reader) Close() {
	for _, m := range r.terms {
		m.close()
	}
	for _, m := range r.freqs {
		m.close()
	}
	for _, m := range r.pitches {
		m.close()
	}
}

// FrequencyDictCount returns the number of mounted frequency dictionaries,
// used by pkg/lookup to size its per-dictionary ranking tuple.
func (r *Reader) FrequencyDictCount() int { return len(r.freqs) }

// Styles returns the non-empty (dict_name, styles_css) pairs for mounted
// term dictionaries, in mount order.
func (r *Reader) Styles() []StylePair {
	var out []StylePair
	for _, m := range r.terms {
		if m.styles != "" {
			out = append(out, StylePair{DictName: m.name, CSS: m.styles})
		}
	}
	return out
}

// lookupOffsets evaluates m's perfect hash for key and returns the decoded
// offset-index entry, or nil if the entry is empty.
func lookupOffsets(m *mount, key string) ([]uint64, error) {
	if m.table.Len() == 0 {
		return nil, nil
	}
	h := m.table.Evaluate(key)
	pos, err := byteio.ReadU64At(m.offsets.Bytes(), int(h)*8)
	if err != nil {
		return nil, nil
	}
	blobs := m.blobs.Bytes()
	if int(pos) >= len(blobs) {
		return nil, nil
	}
	entry, err := bundle.DecodeOffsetEntry(blobs, uint32(pos))
	if err != nil {
		return nil, nil
	}
	return entry.Offsets, nil
}

// QueryTerm looks up key across every mounted term dictionary, returning
// deduplicated results keyed by (expression, reading): glossaries from
// every matching dictionary are accumulated onto the same result, and a
// later dictionary's rules string is appended (space-separated) when it
// contributes tags the accumulated result doesn't already have.
func (r *Reader) QueryTerm(key string) []*TermResult {
	order := make([]string, 0, 4)
	byKey := make(map[string]*TermResult)

	for _, m := range r.terms {
		offsets, err := lookupOffsets(m, key)
		if err != nil || offsets == nil {
			continue
		}
		blobs := m.blobs.Bytes()
		for _, off := range offsets {
			tag, term, _, err := bundle.DecodeRecordAt(blobs, int(off))
			if err != nil || tag != bundle.TagTerm || term == nil {
				continue
			}
			if term.Expression != key && term.Reading != key {
				continue
			}
			dictKey := term.Expression + "\x00" + term.Reading
			res, ok := byKey[dictKey]
			if !ok {
				res = &TermResult{Expression: term.Expression, Reading: term.Reading, Rules: term.Rules}
				byKey[dictKey] = res
				order = append(order, dictKey)
			} else if term.Rules != "" && !containsAllTags(res.Rules, term.Rules) {
				res.Rules = mergeTags(res.Rules, term.Rules)
			}
			glossary := zstdcodec.DecompressLenient(term.GlossaryZstd, defaultGlossaryHint)
			res.Glossaries = append(res.Glossaries, GlossaryEntry{DictName: m.name, Data: glossary})
		}
	}

	out := make([]*TermResult, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

const defaultGlossaryHint = 4096

func containsAllTags(have, want string) bool {
	haveSet := splitTags(have)
	for w := range splitTags(want) {
		if _, ok := haveSet[w]; !ok {
			return false
		}
	}
	return true
}

func mergeTags(have, want string) string {
	haveSet := splitTags(have)
	out := have
	for w := range splitTags(want) {
		if _, ok := haveSet[w]; !ok {
			if out != "" {
				out += " "
			}
			out += w
			haveSet[w] = struct{}{}
		}
	}
	return out
}

func splitTags(s string) map[string]struct{} {
	set := make(map[string]struct{})
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				set[s[start:i]] = struct{}{}
			}
			start = i + 1
		}
	}
	return set
}

// AttachFrequencies queries every mounted frequency dictionary for each
// result's expression and appends one group per dictionary (possibly
// empty), in mount order, so pkg/lookup's ranking can index Frequencies by
// mount position directly, mutating results in place.
func (r *Reader) AttachFrequencies(results []*TermResult) {
	for _, res := range results {
		for _, m := range r.freqs {
			group := FreqGroup{DictName: m.name}
			offsets, err := lookupOffsets(m, res.Expression)
			if err == nil && offsets != nil {
				blobs := m.blobs.Bytes()
				for _, off := range offsets {
					tag, _, meta, err := bundle.DecodeRecordAt(blobs, int(off))
					if err != nil || tag != bundle.TagMeta || meta == nil {
						continue
					}
					if meta.Expression != res.Expression || meta.Mode != bundle.ModeFreq {
						continue
					}
					entry, ok := parseFrequencyPayload(meta.Data, res.Reading)
					if !ok {
						continue
					}
					group.Entries = append(group.Entries, entry)
				}
			}
			res.Frequencies = append(res.Frequencies, group)
		}
	}
}

// AttachPitch queries every mounted pitch dictionary for each result's
// expression and appends matching position lists, grouped by source
// dictionary.
func (r *Reader) AttachPitch(results []*TermResult) {
	for _, res := range results {
		for _, m := range r.pitches {
			offsets, err := lookupOffsets(m, res.Expression)
			if err != nil || offsets == nil {
				continue
			}
			var group PitchGroup
			group.DictName = m.name
			blobs := m.blobs.Bytes()
			for _, off := range offsets {
				tag, _, meta, err := bundle.DecodeRecordAt(blobs, int(off))
				if err != nil || tag != bundle.TagMeta || meta == nil {
					continue
				}
				if meta.Expression != res.Expression || meta.Mode != bundle.ModePitch {
					continue
				}
				reading, positions, err := parsePitchPayload(meta.Data)
				if err != nil {
					log.Debugf("dictreader: skipping malformed pitch payload for %q: %v", res.Expression, err)
					continue
				}
				group.Reading = reading
				group.Positions = append(group.Positions, positions...)
			}
			if len(group.Positions) > 0 {
				res.Pitches = append(res.Pitches, group)
			}
		}
	}
}
