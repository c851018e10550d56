package main

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

const _columnGap = 2

// writeTable writes rows as left-aligned columns. Cells are measured in
// terminal cells, so wide characters in session names stay aligned.
func writeTable(w io.Writer, rows [][]string) error {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				bw.WriteString(cell)
				break
			}
			bw.WriteString(runewidth.FillRight(cell, widths[i]+_columnGap))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
