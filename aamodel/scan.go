package aamodel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ScanFloats reads whitespace separated numbers from a reader. At
// most limit first tokens are parsed (all of them if limit<0), the
// rest are only counted. It returns parsed values and the total
// number of tokens.
func ScanFloats(rd io.Reader, limit int) (vals []float64, count int, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		count++
		if limit >= 0 && count > limit {
			continue
		}
		f, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, count, fmt.Errorf("%w: value #%d: %v", ErrMalformedInput, count, err)
		}
		vals = append(vals, f)
	}
	if err = scanner.Err(); err != nil {
		return nil, count, err
	}
	return vals, count, nil
}
