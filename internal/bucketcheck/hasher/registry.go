// Package hasher holds the string hash functions a benchmark can measure. Every function returns a signed 32-bit
// value so that all of them go through the same bucket index computation.
package hasher

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	farm "github.com/dgryski/go-farm"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
)

// Func hashes a string.
type Func func(s string) int32

const Default = "oneatatime"

var registry = map[string]Func{
	Default:   OneAtATime,
	"fnv1a":   FNV1a,
	"xxhash":  XXHash,
	"murmur3": Murmur3,
	"farm":    Farm,
}

// Lookup returns the hash function registered under name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, &benchmarkerrors.ErrNotFound{Type: "hasher", Value: name}
	}
	return f, nil
}

// Names returns the registered hasher names in alphabetical order.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// FNV1a is 32-bit FNV-1a over the UTF-8 bytes of s.
func FNV1a(s string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int32(h.Sum32())
}

// XXHash is the low 32 bits of 64-bit xxHash.
func XXHash(s string) int32 {
	return int32(uint32(xxhash.Sum64String(s)))
}

// Murmur3 is 32-bit MurmurHash3 with seed 0.
func Murmur3(s string) int32 {
	return int32(murmur3.Sum32([]byte(s)))
}

// Farm is the 32-bit farmhash fingerprint.
func Farm(s string) int32 {
	return int32(farm.Fingerprint32([]byte(s)))
}
