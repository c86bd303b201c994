// Package bundle owns the on-disk record layout shared by pkg/dictimport
// (write side) and pkg/dictreader (read side): the bundle directory's fixed
// filenames, the term/meta record framing inside blobs.bin, and the
// offset-index region that the perfect hash points into.
package bundle

import (
	"fmt"

	"github.com/kotobaserve/kotoba/internal/byteio"
)

// Filenames making up a bundle directory.
const (
	FileInfo         = "info.json"
	FileStyles       = "styles.css"
	FileBlobs        = "blobs.bin"
	FileOffsets      = "offsets.bin"
	FileHash         = "hash.mph"
	FileMedia        = "media.bin"
	FileMediaIndex   = "media_index.bin"
)

// Record type tags stored as the first byte of every blobs.bin record.
const (
	TagTerm uint8 = 0
	TagMeta uint8 = 1
)

// Meta record modes.
const (
	ModeFreq  = "freq"
	ModePitch = "pitch"
)

// Info is the parsed contents of info.json.
type Info struct {
	Title    string `json:"title"`
	Revision string `json:"revision"`
	Format   int    `json:"format"`
}

// TermRecord is a single headword entry: expression, reading, compressed
// glossary, and the three small tag/rule strings carried alongside it.
type TermRecord struct {
	Expression      string
	Reading         string
	GlossaryZstd    []byte
	GlossarySize    int // uncompressed size; not written by EncodeTerm, so 0 after decoding
	DefinitionTags  string
	Rules           string
	TermTags        string
}

// MetaRecord is a frequency or pitch payload keyed by expression.
type MetaRecord struct {
	Expression string
	Mode       string // ModeFreq or ModePitch
	Data       []byte // opaque JSON payload, parsed by pkg/dictreader
}

// EncodeTerm appends a term record (type tag 0) to w, per spec.md §3's
// framing: u16 expression + u16 reading + u32 compressed-glossary length and
// bytes + u8 def-tags + u8 rules + u8 term-tags.
func EncodeTerm(w *byteio.Writer, t TermRecord) {
	w.U8(TagTerm)
	w.U16String(t.Expression)
	w.U16String(t.Reading)
	w.U32Bytes(t.GlossaryZstd)
	w.U8String(t.DefinitionTags)
	w.U8String(t.Rules)
	w.U8String(t.TermTags)
}

// EncodeMeta appends a meta record (type tag 1) to w.
func EncodeMeta(w *byteio.Writer, m MetaRecord) {
	w.U8(TagMeta)
	w.U16String(m.Expression)
	w.U8String(m.Mode)
	w.U32Bytes(m.Data)
}

// DecodeRecordAt decodes a single record starting at byte offset off within
// buf, returning the type tag and, via the respective out pointer, the
// decoded record. Exactly one of term/meta is populated, matching tag.
// Unknown tags are reported as an error so the caller can skip them, per
// spec.md §6's "self-describing framing" contract.
func DecodeRecordAt(buf []byte, off int) (tag uint8, term *TermRecord, meta *MetaRecord, err error) {
	if off < 0 || off >= len(buf) {
		return 0, nil, nil, fmt.Errorf("bundle: offset %d out of range for blob of length %d", off, len(buf))
	}
	r := byteio.NewReader(buf[off:])
	tag, err = r.U8()
	if err != nil {
		return 0, nil, nil, err
	}
	switch tag {
	case TagTerm:
		t, derr := decodeTerm(r)
		if derr != nil {
			return tag, nil, nil, derr
		}
		return tag, t, nil, nil
	case TagMeta:
		m, derr := decodeMeta(r)
		if derr != nil {
			return tag, nil, nil, derr
		}
		return tag, nil, m, nil
	default:
		return tag, nil, nil, fmt.Errorf("bundle: unknown record tag %d at offset %d", tag, off)
	}
}

func decodeTerm(r *byteio.Reader) (*TermRecord, error) {
	expr, err := r.U16String()
	if err != nil {
		return nil, err
	}
	reading, err := r.U16String()
	if err != nil {
		return nil, err
	}
	glossary, err := r.U32Bytes()
	if err != nil {
		return nil, err
	}
	defTags, err := r.U8String()
	if err != nil {
		return nil, err
	}
	rules, err := r.U8String()
	if err != nil {
		return nil, err
	}
	termTags, err := r.U8String()
	if err != nil {
		return nil, err
	}
	return &TermRecord{
		Expression:     expr,
		Reading:        reading,
		GlossaryZstd:   glossary,
		DefinitionTags: defTags,
		Rules:          rules,
		TermTags:       termTags,
	}, nil
}

func decodeMeta(r *byteio.Reader) (*MetaRecord, error) {
	expr, err := r.U16String()
	if err != nil {
		return nil, err
	}
	mode, err := r.U8String()
	if err != nil {
		return nil, err
	}
	data, err := r.U32Bytes()
	if err != nil {
		return nil, err
	}
	return &MetaRecord{Expression: expr, Mode: mode, Data: data}, nil
}
