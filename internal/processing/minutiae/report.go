package minutiae

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Report is the per-class histogram of one classification run.
type Report struct {
	Counts [numClasses]uint32
}

func (r Report) Count(c Class) uint32 {
	return r.Counts[c]
}

// Total is the number of classified pixels.
func (r Report) Total() uint64 {
	var total uint64
	for _, c := range r.Counts {
		total += uint64(c)
	}
	return total
}

// WriteTo writes one "label = count" line per class in fixed order. The
// last line has no trailing newline.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for i, c := range Classes() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "%s = %d", c.Label(), r.Counts[c])
	}
	return buf.WriteTo(w)
}

func (r Report) String() string {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.String()
}

// Save writes the report to path, replacing any existing file.
func (r Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}
