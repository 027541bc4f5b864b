// Package bucket assigns strings to buckets by hash.
package bucket

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/hasher"
	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
	"github.com/armadaproject/bucketcheck/internal/common/util"
)

const (
	Modulo    = "modulo"
	SplitSign = "splitsign"
)

// Strategy distributes values into a freshly allocated bucket array sized for itemsPerBucket values per bucket.
// Every value ends up in exactly one bucket, in input order within its bucket.
type Strategy func(values []string, itemsPerBucket int, hash hasher.Func) [][]string

var strategies = map[string]Strategy{
	Modulo:    Distribute,
	SplitSign: DistributeSplitSign,
}

// ForStrategy returns the strategy registered under name.
func ForStrategy(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, &benchmarkerrors.ErrNotFound{Type: "strategy", Value: name}
	}
	return s, nil
}

// Strategies returns the registered strategy names in alphabetical order.
func Strategies() []string {
	names := maps.Keys(strategies)
	slices.Sort(names)
	return names
}

// Count returns the number of buckets needed for n values at itemsPerBucket values per bucket, rounding up.
func Count(n, itemsPerBucket int) int {
	return util.CeilDiv(n, itemsPerBucket)
}

// Index maps a hash onto [0, bucketCount) as |hash| mod bucketCount.
//
// |math.MinInt32| does not fit in an int32. The magnitude is taken as an unsigned value instead, so MinInt32 is
// treated as 2^31 and still lands in a valid bucket.
func Index(hash int32, bucketCount int) int {
	return int(uint64(magnitude(hash)) % uint64(bucketCount))
}

func magnitude(hash int32) uint32 {
	if hash < 0 {
		return uint32(-int64(hash))
	}
	return uint32(hash)
}

// Distribute puts each value into bucket Index(hash(value), Count(len(values), itemsPerBucket)).
func Distribute(values []string, itemsPerBucket int, hash hasher.Func) [][]string {
	buckets := make([][]string, Count(len(values), itemsPerBucket))
	for _, v := range values {
		i := Index(hash(v), len(buckets))
		buckets[i] = append(buckets[i], v)
	}
	return buckets
}

// DistributeSplitSign uses twice as many half-sized bucket groups: values with a positive hash go into the lower
// half and the rest into the upper half, each half indexed by |hash| mod half.
func DistributeSplitSign(values []string, itemsPerBucket int, hash hasher.Func) [][]string {
	half := util.CeilDiv(len(values), 2*itemsPerBucket)
	buckets := make([][]string, 2*half)
	for _, v := range values {
		h := hash(v)
		i := Index(h, half)
		if h <= 0 {
			i += half
		}
		buckets[i] = append(buckets[i], v)
	}
	return buckets
}
