package report

import (
	"bytes"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// table holds rows back until every row is known, then pads each column to its widest cell.
type table struct {
	buf bytes.Buffer
	tw  *tabwriter.Writer
}

func newTable() *table {
	t := &table{}
	t.tw = tabwriter.NewWriter(&t.buf, 1, 4, 2, ' ', 0)
	return t
}

// append adds a row. Writes to a bytes.Buffer cannot fail.
func (t *table) append(cells []string) {
	_, _ = io.WriteString(t.tw, strings.Join(cells, "\t")+"\t\n")
}

// writeTo writes the aligned rows to out and empties the table.
func (t *table) writeTo(out io.Writer) error {
	_ = t.tw.Flush()
	_, err := t.buf.WriteTo(out)
	t.buf.Reset()
	return errors.WithStack(err)
}
