// Package analyzer summarises bucket occupancy.
package analyzer

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Columns names the values of Summary.Row, in order.
var Columns = []string{"Min", "Max", "Median", "Average", "Total"}

// Summary describes the occupancy counts of one bucket array.
type Summary struct {
	Min     int
	Max     int
	Median  int
	Average int
	Total   int
}

// Analyze sorts the bucket sizes and summarises them. Median is the upper middle element for an even number of
// buckets and Average is truncated towards zero. An empty bucket array gives the zero Summary.
func Analyze[S ~[]E, E any](buckets []S) Summary {
	if len(buckets) == 0 {
		return Summary{}
	}
	counts := make([]int, len(buckets))
	total := 0
	for i, b := range buckets {
		counts[i] = len(b)
		total += len(b)
	}
	slices.Sort(counts)
	return Summary{
		Min:     counts[0],
		Max:     counts[len(counts)-1],
		Median:  counts[len(counts)/2],
		Average: total / len(counts),
		Total:   total,
	}
}

// Row returns the summary values in Columns order.
func (s Summary) Row() []int {
	return []int{s.Min, s.Max, s.Median, s.Average, s.Total}
}

func (s Summary) String() string {
	return fmt.Sprintf("{Min: %d, Max: %d, Median: %d, Average: %d, Total: %d}", s.Min, s.Max, s.Median, s.Average, s.Total)
}
