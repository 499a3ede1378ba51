package sim

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Diagnostic writes one whitespace-separated line per cycle: the
// velocity components followed by the error components, fixed-format
// floats ready for gnuplot or a spreadsheet.
type Diagnostic struct {
	w io.Writer
}

func NewDiagnostic(w io.Writer) *Diagnostic {
	return &Diagnostic{w: w}
}

func (d *Diagnostic) OnCycle(rec Record) {
	fields := make([]string, 0, len(rec.Velocity)+len(rec.Error))
	for _, v := range rec.Velocity {
		fields = append(fields, strconv.FormatFloat(v, 'f', 6, 64))
	}
	for _, e := range rec.Error {
		fields = append(fields, strconv.FormatFloat(e, 'f', 6, 64))
	}
	fmt.Fprintln(d.w, strings.Join(fields, " "))
}
