package bundle

import (
	"fmt"

	"github.com/kotobaserve/kotoba/internal/byteio"
)

// OffsetEntry is the decoded offset-index entry for one key: the list of
// blob positions an unknown-until-validated candidate might live at.
type OffsetEntry struct {
	Offsets []uint64
}

// EncodeOffsetIndex writes the offset-index region: for each key, in the
// order given, a u32 count followed by that many u64 offsets. It returns
// the byte position (relative to the start of the region) at which each
// key's entry begins, in the same order as keys/offsetsByKey.
func EncodeOffsetIndex(w *byteio.Writer, keys []string, offsetsByKey map[string][]uint64) (positions map[string]uint32) {
	positions = make(map[string]uint32, len(keys))
	base := w.Len()
	for _, k := range keys {
		positions[k] = uint32(w.Len() - base)
		offs := offsetsByKey[k]
		w.U32(uint32(len(offs)))
		for _, o := range offs {
			w.U64(o)
		}
	}
	return positions
}

// DecodeOffsetEntry decodes one offset-index entry starting at byte offset
// pos within the offset-index region buffer.
func DecodeOffsetEntry(region []byte, pos uint32) (OffsetEntry, error) {
	if int(pos) >= len(region) {
		return OffsetEntry{}, fmt.Errorf("bundle: offset-index position %d out of range (region length %d)", pos, len(region))
	}
	r := byteio.NewReader(region[pos:])
	n, err := r.U32()
	if err != nil {
		return OffsetEntry{}, fmt.Errorf("bundle: reading offset count at %d: %w", pos, err)
	}
	offs := make([]uint64, n)
	for i := range offs {
		v, err := r.U64()
		if err != nil {
			return OffsetEntry{}, fmt.Errorf("bundle: reading offset %d/%d at position %d: %w", i, n, pos, err)
		}
		offs[i] = v
	}
	return OffsetEntry{Offsets: offs}, nil
}

// MediaEntry describes one packed blob in media.bin via media_index.bin.
type MediaEntry struct {
	Name   string
	Offset uint64
	Size   uint32
}

// EncodeMediaIndex writes the fixed-schema media index: u16 name length +
// name bytes, u64 offset, u32 size, per entry.
func EncodeMediaIndex(w *byteio.Writer, entries []MediaEntry) {
	for _, e := range entries {
		w.U16String(e.Name)
		w.U64(e.Offset)
		w.U32(e.Size)
	}
}

// DecodeMediaIndex decodes the full media index buffer into entries.
func DecodeMediaIndex(buf []byte) ([]MediaEntry, error) {
	r := byteio.NewReader(buf)
	var entries []MediaEntry
	for r.Pos() < len(buf) {
		name, err := r.U16String()
		if err != nil {
			return nil, err
		}
		offset, err := r.U64()
		if err != nil {
			return nil, err
		}
		size, err := r.U32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, MediaEntry{Name: name, Offset: offset, Size: size})
	}
	return entries, nil
}
