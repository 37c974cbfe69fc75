package raxml

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"bitbucket.org/Davydov/aaconv/aamodel"
)

// matrixText returns a symmetric matrix with rate(i, j)=i*20+j (i<j),
// twenty 0.05 frequencies and extra values to reach n.
func matrixText(n int) string {
	var b strings.Builder
	for k := 0; k < n; k++ {
		var v float64
		switch {
		case k < 400:
			i, j := k/20, k%20
			if i > j {
				i, j = j, i
			}
			if i != j {
				v = float64(i*20 + j)
			}
		default:
			v = 0.05
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestReadBoundary(tst *testing.T) {
	for _, n := range []int{419, 421} {
		_, err := Read(strings.NewReader(matrixText(n)))
		if !errors.Is(err, aamodel.ErrInvalidElementCount) {
			tst.Errorf("%d values: expected invalid element count error, got %v", n, err)
		}
		if err != nil && !strings.Contains(err.Error(), strconv.Itoa(n)) {
			tst.Errorf("Error should report the count: %v", err)
		}
	}
	m, err := Read(strings.NewReader(matrixText(420)))
	if err != nil {
		tst.Fatal("Error reading 420 values:", err)
	}
	if len(m.Rates) != 190 || len(m.Freq) != 20 {
		tst.Errorf("Incorrect model size: %d, %d", len(m.Rates), len(m.Freq))
	}
}

func TestReadRuns(tst *testing.T) {
	m, err := Read(strings.NewReader(matrixText(420)))
	if err != nil {
		tst.Fatal(err)
	}
	k := 0
	for i := 0; i < 19; i++ {
		for j := i + 1; j < 20; j++ {
			if exp := float64(i*20 + j); m.Rates[k] != exp {
				tst.Errorf("Rate %d (%d, %d): expected %v, got %v", k, i, j, exp, m.Rates[k])
			}
			k++
		}
	}
}

func TestWriteSymmetric(tst *testing.T) {
	rates := make([]float64, 190)
	for i := range rates {
		rates[i] = float64(i + 1)
	}
	freq := make([]float64, 20)
	for i := range freq {
		freq[i] = 0.05
	}
	m, err := aamodel.New(rates, freq)
	if err != nil {
		tst.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, m); err != nil {
		tst.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 420 {
		tst.Fatalf("Expected 420 lines, got %d", len(lines))
	}
	vals := make([]float64, len(lines))
	for i, l := range lines {
		vals[i], err = strconv.ParseFloat(l, 64)
		if err != nil {
			tst.Fatal(err)
		}
	}
	for i := 0; i < 20; i++ {
		if vals[i*20+i] != 0 {
			tst.Errorf("Diagonal element %d is %v", i, vals[i*20+i])
		}
		for j := 0; j < 20; j++ {
			if vals[i*20+j] != vals[j*20+i] {
				tst.Errorf("Matrix is not symmetric at (%d, %d)", i, j)
			}
		}
	}
	if lines[0] != "0.0" || lines[1] != "1.0" || lines[20] != "1.0" || lines[419] != "0.05" {
		tst.Errorf("Unexpected values: %s %s %s %s", lines[0], lines[1], lines[20], lines[419])
	}

	m2, err := Read(&b)
	if err != nil {
		tst.Fatal("Error reading written model:", err)
	}
	for i := range rates {
		if m2.Rates[i] != rates[i] {
			tst.Errorf("Rate %d: expected %v, got %v", i, rates[i], m2.Rates[i])
		}
	}
}
