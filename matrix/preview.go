// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"io"
)

// DefaultPreviewSize bounds the rows and columns Preview prints by default.
const DefaultPreviewSize = 10

// Preview writes the top-left window of m (at most maxRows×maxCols) to w:
// a "Matrix (RxC), showing rxc:" header, then one line per row with cells
// formatted as %.2f and separated by tabs.
// Non-positive limits fall back to DefaultPreviewSize.
// Errors: ErrNilMatrix, or the first write error from w.
func Preview(w io.Writer, m Matrix, maxRows, maxCols int) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf("Preview", err)
	}
	if maxRows <= 0 {
		maxRows = DefaultPreviewSize
	}
	if maxCols <= 0 {
		maxCols = DefaultPreviewSize
	}
	rows, cols := min(m.Rows(), maxRows), min(m.Cols(), maxCols)
	if _, err := fmt.Fprintf(w, "Matrix (%dx%d), showing %dx%d:\n", m.Rows(), m.Cols(), rows, cols); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return matrixErrorf("Preview", err)
			}
			sep := "\t"
			if j == 0 {
				sep = ""
			}
			if _, err = fmt.Fprintf(w, "%s%.2f", sep, v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}
