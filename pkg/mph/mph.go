// Package mph implements a minimal perfect hash over a fixed key set using
// the hash-and-displace construction (bucket keys, sort by descending
// bucket size, greedily find a per-bucket displacement that resolves all
// collisions into a table exactly the size of the key set). No third-party
// minimal perfect hash package appears anywhere in the retrieval pack (see
// DESIGN.md), so this is a direct from-scratch implementation rather than a
// library wrapper.
//
// Evaluate is undefined for keys outside the built set: it always returns
// some index in [0, n), but callers on the read path (pkg/dictreader) must
// validate the candidate record found at that index, exactly as spec.md
// requires.
package mph

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

// Table is a built minimal perfect hash over a fixed set of keys.
type Table struct {
	n             uint32
	m             uint32
	seed          uint32
	displacements []uint32
}

// Len returns the size of the hash's codomain, i.e. the number of keys it
// was built from.
func (t *Table) Len() int { return int(t.n) }

func hash64(seed uint32, key []byte) uint64 {
	h := fnv.New64a()
	var seedBuf [4]byte
	binary.LittleEndian.PutUint32(seedBuf[:], seed)
	h.Write(seedBuf[:])
	h.Write(key)
	return h.Sum64()
}

// Evaluate maps key to an index in [0, Len()). The result is defined only
// for keys that were present in the build set; for unknown keys it still
// returns an in-range index, but with no meaning attached.
func (t *Table) Evaluate(key string) uint32 {
	if t.n == 0 {
		return 0
	}
	kb := []byte(key)
	h0 := hash64(t.seed, kb)
	bucket := uint32(h0%uint64(t.m)) % t.m
	d := t.displacements[bucket]
	h1 := hash64(t.seed+1, kb)
	h2 := hash64(t.seed+2+d, kb)
	return uint32((h1 + h2) % uint64(t.n))
}

const maxDisplaceAttempts = 1 << 20

// Build constructs a minimal perfect hash over keys. Keys must be unique;
// duplicate keys return an error. The construction is deterministic given
// the same key order, retrying with a new global seed if bucket placement
// exhausts its displacement budget; if every seed below 65536 fails, it
// returns an error.
func Build(keys []string) (*Table, error) {
	n := uint32(len(keys))
	if n == 0 {
		return &Table{}, nil
	}
	seen := make(map[string]struct{}, n)
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("mph: duplicate key %q", k)
		}
		seen[k] = struct{}{}
	}

	m := n/4 + 1
	for seed := uint32(1); seed < 1<<16; seed++ {
		table, err := tryBuild(keys, n, m, seed)
		if err == nil {
			return table, nil
		}
	}
	return nil, fmt.Errorf("mph: failed to build perfect hash for %d keys", n)
}

func tryBuild(keys []string, n, m, seed uint32) (*Table, error) {
	buckets := make([][]int, m)
	for i, k := range keys {
		h0 := hash64(seed, []byte(k))
		b := uint32(h0%uint64(m)) % m
		buckets[b] = append(buckets[b], i)
	}

	order := make([]int, m)
	for i := range order {
		order[i] = int(i)
	}
	sort.Slice(order, func(a, b int) bool {
		return len(buckets[order[a]]) > len(buckets[order[b]])
	})

	used := make([]bool, n)
	displacements := make([]uint32, m)

	for _, b := range order {
		bucketKeys := buckets[b]
		if len(bucketKeys) == 0 {
			continue
		}
		placed := false
		for d := uint32(0); d < maxDisplaceAttempts; d++ {
			slots := make([]uint32, len(bucketKeys))
			collision := false
			seenSlot := make(map[uint32]struct{}, len(bucketKeys))
			for i, keyIdx := range bucketKeys {
				kb := []byte(keys[keyIdx])
				h1 := hash64(seed+1, kb)
				h2 := hash64(seed+2+d, kb)
				slot := uint32((h1 + h2) % uint64(n))
				if used[slot] {
					collision = true
					break
				}
				if _, dup := seenSlot[slot]; dup {
					collision = true
					break
				}
				seenSlot[slot] = struct{}{}
				slots[i] = slot
			}
			if collision {
				continue
			}
			for _, slot := range slots {
				used[slot] = true
			}
			displacements[b] = d
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("mph: exhausted displacement budget for bucket %d", b)
		}
	}

	return &Table{n: n, m: m, seed: seed, displacements: displacements}, nil
}

// Serialize encodes the table as a little-endian binary blob: u32 n, u32 m,
// u32 seed, followed by m u32 displacement values.
func (t *Table) Serialize() []byte {
	buf := make([]byte, 12+4*len(t.displacements))
	binary.LittleEndian.PutUint32(buf[0:], t.n)
	binary.LittleEndian.PutUint32(buf[4:], t.m)
	binary.LittleEndian.PutUint32(buf[8:], t.seed)
	for i, d := range t.displacements {
		binary.LittleEndian.PutUint32(buf[12+4*i:], d)
	}
	return buf
}

// Deserialize decodes a table previously produced by Serialize.
func Deserialize(buf []byte) (*Table, error) {
	if len(buf) < 12 {
		return nil, fmt.Errorf("mph: truncated header, got %d bytes", len(buf))
	}
	n := binary.LittleEndian.Uint32(buf[0:])
	m := binary.LittleEndian.Uint32(buf[4:])
	seed := binary.LittleEndian.Uint32(buf[8:])
	want := 12 + 4*int(m)
	if len(buf) < want {
		return nil, fmt.Errorf("mph: truncated displacement array, want %d bytes, got %d", want, len(buf))
	}
	displacements := make([]uint32, m)
	for i := range displacements {
		displacements[i] = binary.LittleEndian.Uint32(buf[12+4*i:])
	}
	return &Table{n: n, m: m, seed: seed, displacements: displacements}, nil
}
