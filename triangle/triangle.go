/*
Package triangle implements the index algebra of the linear layouts
used to store a symmetric n×n matrix with a zero diagonal.

Three layouts are supported:

Upper (canonical): strict upper triangle, row by row, grouped by the
smaller index. Block i holds pairs (i, i+1), (i, i+2), ..., (i, n-1),
block lengths are n-1, n-2, ..., 1.

Lower (PAML style): strict lower triangle, row by row, grouped by the
larger index. Row j (j=1..n-1) holds pairs (0, j), (1, j), ..., (j-1, j),
row lengths are 1, 2, ..., n-1.

Full (RAxML style): all n×n entries in row-major order.

All the functions are pure, they panic if slice lengths do not match
the alphabet size.
*/
package triangle

import "fmt"

// NRates returns the number of off-diagonal pairs for an alphabet of
// size n.
func NRates(n int) int {
	return n * (n - 1) / 2
}

// BlockLengths returns lengths of the canonical blocks: n-1, n-2, ..., 1.
func BlockLengths(n int) []int {
	l := make([]int, n-1)
	for i := range l {
		l[i] = n - 1 - i
	}
	return l
}

// blockOffset returns the position of the first element of the
// canonical block i.
func blockOffset(n, i int) int {
	return i*(n-1) - i*(i-1)/2
}

// order returns i and j so that i<j.
func order(i, j int) (int, int) {
	if i == j {
		panic(fmt.Sprintf("diagonal element (%d, %d) has no rate", i, j))
	}
	if i > j {
		return j, i
	}
	return i, j
}

// UpperIndex returns the canonical position of the pair (i, j).
func UpperIndex(n, i, j int) int {
	i, j = order(i, j)
	return blockOffset(n, i) + j - i - 1
}

// UpperPair returns the pair (i, j), i<j, stored at the canonical
// position k.
func UpperPair(n, k int) (i, j int) {
	if k < 0 || k >= NRates(n) {
		panic(fmt.Sprintf("canonical index %d out of range", k))
	}
	for i = 0; k >= n-1-i; i++ {
		k -= n - 1 - i
	}
	return i, i + 1 + k
}

// LowerIndex returns the PAML style position of the pair (i, j).
func LowerIndex(i, j int) int {
	i, j = order(i, j)
	return j*(j-1)/2 + i
}

// LowerPair returns the pair (i, j), i<j, stored at the PAML style
// position k.
func LowerPair(k int) (i, j int) {
	if k < 0 {
		panic(fmt.Sprintf("lower index %d out of range", k))
	}
	for j = 1; k >= j; j++ {
		k -= j
	}
	return k, j
}

// FullIndex returns the row-major position of the entry (i, j).
func FullIndex(n, i, j int) int {
	return i*n + j
}

// FullPair returns row and column of the row-major position k.
func FullPair(n, k int) (i, j int) {
	return k / n, k % n
}

func checkLen(what string, v []float64, l int) {
	if len(v) != l {
		panic(fmt.Sprintf("%s: expected %d values, got %d", what, l, len(v)))
	}
}

// LowerToUpper converts rates from the PAML layout to the canonical
// layout. For each smaller index it collects the column of the lower
// triangle from top to bottom.
func LowerToUpper(n int, lower []float64) []float64 {
	checkLen("lower triangle", lower, NRates(n))
	upper := make([]float64, 0, len(lower))
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			upper = append(upper, lower[LowerIndex(i, j)])
		}
	}
	return upper
}

// UpperToLower converts rates from the canonical layout to the PAML
// layout.
func UpperToLower(n int, upper []float64) []float64 {
	checkLen("upper triangle", upper, NRates(n))
	lower := make([]float64, 0, len(upper))
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			lower = append(lower, upper[UpperIndex(n, i, j)])
		}
	}
	return lower
}

// FullToUpper extracts the canonical rates from a row-major n×n
// matrix. Only the strict upper triangle is read.
func FullToUpper(n int, full []float64) []float64 {
	checkLen("full matrix", full, n*n)
	upper := make([]float64, 0, NRates(n))
	for i := 0; i < n-1; i++ {
		upper = append(upper, full[FullIndex(n, i, i+1):FullIndex(n, i, n)]...)
	}
	return upper
}

// UpperToFull builds a row-major symmetric n×n matrix with zero
// diagonal from the canonical rates.
func UpperToFull(n int, upper []float64) []float64 {
	checkLen("upper triangle", upper, NRates(n))
	full := make([]float64, n*n)
	for k, v := range upper {
		i, j := UpperPair(n, k)
		full[FullIndex(n, i, j)] = v
		full[FullIndex(n, j, i)] = v
	}
	return full
}

// UpperRows splits canonical rates into blocks of lengths n-1, ..., 1.
// Rows are copies.
func UpperRows(n int, upper []float64) [][]float64 {
	checkLen("upper triangle", upper, NRates(n))
	rows := make([][]float64, 0, n-1)
	start := 0
	for _, l := range BlockLengths(n) {
		rows = append(rows, append([]float64(nil), upper[start:start+l]...))
		start += l
	}
	return rows
}

// LowerRows splits PAML style rates into rows of lengths 1, ..., n-1.
// Rows are copies.
func LowerRows(n int, lower []float64) [][]float64 {
	checkLen("lower triangle", lower, NRates(n))
	rows := make([][]float64, 0, n-1)
	start := 0
	for l := 1; l < n; l++ {
		rows = append(rows, append([]float64(nil), lower[start:start+l]...))
		start += l
	}
	return rows
}
