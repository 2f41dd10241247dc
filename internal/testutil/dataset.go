package testutil

import (
	"fmt"
	"strings"
)

// CSV renders a header and rows of numbers as CSV text.
func CSV(header []string, rows ...[]float64) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteByte('\n')
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Linear returns n rows of x, y with y = a*x + b for x = 1..n.
func Linear(n int, a, b float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		x := float64(i + 1)
		rows[i] = []float64{x, a*x + b}
	}
	return rows
}
