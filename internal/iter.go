package internal

import (
	"iter"
)

// IterGrid yields every (row, col) pair of the inclusive ranges
// [rowLo, rowHi] x [colLo, colHi] in row-major order.
// Bounds may reach math.MaxInt64; the counters never step past them.
func IterGrid(rowLo, rowHi, colLo, colHi int64) iter.Seq2[int64, int64] {
	return func(yield func(row, col int64) bool) {
		if rowLo > rowHi || colLo > colHi {
			return
		}
		for row := rowLo; ; row++ {
			for col := colLo; ; col++ {
				if !yield(row, col) {
					return // Stop if the consumer stops
				}
				if col == colHi {
					break
				}
			}
			if row == rowHi {
				break
			}
		}
	}
}
