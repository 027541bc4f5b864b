// Package report prints trial summaries as they complete.
package report

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/analyzer"
	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
)

type Format string

const (
	// TSV writes each row as soon as it is released, values separated by single tabs.
	TSV Format = "tsv"
	// Table aligns columns, which needs every row, so nothing is written until Flush.
	Table Format = "table"
)

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(Table), string(TSV)}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case TSV, Table:
		return Format(s), nil
	default:
		return "", &benchmarkerrors.ErrNotFound{Type: "output format", Value: s}
	}
}

// Writer prints a header followed by one row per trial. It is safe for concurrent use; each row is written whole.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	format  Format
	ordered bool
	// next is the index of the next row to release when ordered
	next    int
	pending map[int]analyzer.Summary
	table   *table
}

// NewWriter creates a Writer. When ordered is true rows are released in trial index order, starting from trial 0,
// rather than in the order Add is called.
func NewWriter(out io.Writer, format Format, ordered bool) *Writer {
	return &Writer{
		out:     out,
		format:  format,
		ordered: ordered,
		pending: make(map[int]analyzer.Summary),
		table:   newTable(),
	}
}

func (w *Writer) WriteHeader() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeRow(analyzer.Columns)
}

// Add records the summary of a trial.
func (w *Writer) Add(trial int, s analyzer.Summary) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ordered {
		return w.writeSummary(s)
	}
	if _, exists := w.pending[trial]; exists || trial < w.next {
		return errors.Errorf("trial %d reported twice", trial)
	}
	w.pending[trial] = s
	for {
		s, ok := w.pending[w.next]
		if !ok {
			return nil
		}
		delete(w.pending, w.next)
		w.next++
		if err := w.writeSummary(s); err != nil {
			return err
		}
	}
}

// Flush releases rows still held back, in trial order, and writes out the table if the format needs it. Rows are
// held back when ordered and an earlier trial never reported, e.g. because it failed.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	trials := maps.Keys(w.pending)
	slices.Sort(trials)
	for _, trial := range trials {
		if err := w.writeSummary(w.pending[trial]); err != nil {
			return err
		}
		delete(w.pending, trial)
	}
	if w.format == Table {
		return w.table.writeTo(w.out)
	}
	return nil
}

func (w *Writer) writeSummary(s analyzer.Summary) error {
	row := s.Row()
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = strconv.Itoa(v)
	}
	return w.writeRow(cells)
}

func (w *Writer) writeRow(cells []string) error {
	if w.format == Table {
		w.table.append(cells)
		return nil
	}
	_, err := io.WriteString(w.out, strings.Join(cells, "\t")+"\n")
	return errors.WithStack(err)
}
