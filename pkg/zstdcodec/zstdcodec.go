// Package zstdcodec wraps github.com/klauspost/compress/zstd for the
// glossary compression used by pkg/dictimport and pkg/dictreader. Encoders
// and decoders are cached on package-level sync.Once-guarded singletons
// since both are safe for concurrent use and expensive to construct.
package zstdcodec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error

	decoderOnce sync.Once
	decoder     *zstd.Decoder
	decoderErr  error
)

func getEncoder(level zstd.EncoderLevel) (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	})
	return encoder, encoderErr
}

func getDecoder() (*zstd.Decoder, error) {
	decoderOnce.Do(func() {
		decoder, decoderErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	})
	return decoder, decoderErr
}

// LevelFromConfig maps the config's small integer zstd_level into the
// klauspost encoder level enum.
func LevelFromConfig(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 3:
		return zstd.SpeedDefault
	case level <= 7:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// Compress returns the zstd-compressed form of data. The shared encoder is
// created on the first call, at that call's level; later calls reuse it and
// their level argument has no effect.
func Compress(data []byte, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := getEncoder(level)
	if err != nil {
		return nil, fmt.Errorf("zstdcodec: encoder init: %w", err)
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress decompresses a zstd frame into a buffer whose initial capacity
// is knownUncompressedSize (a capacity hint only; the buffer grows as
// needed, and pkg/dictreader passes a fixed 4096). Returns an error on a
// malformed frame; callers on the lenient read path should use
// DecompressLenient instead.
func Decompress(frame []byte, knownUncompressedSize int) ([]byte, error) {
	dec, err := getDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstdcodec: decoder init: %w", err)
	}
	out, err := dec.DecodeAll(frame, make([]byte, 0, knownUncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("zstdcodec: decode: %w", err)
	}
	return out, nil
}

// DecompressLenient is Decompress but swallows errors, returning an empty
// slice instead. Used on the query-time read path where spec.md requires
// corrupt glossary data to degrade to an empty glossary rather than aborting
// the whole lookup.
func DecompressLenient(frame []byte, knownUncompressedSize int) []byte {
	out, err := Decompress(frame, knownUncompressedSize)
	if err != nil {
		return []byte{}
	}
	return out
}
