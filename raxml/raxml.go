// Package raxml reads and writes amino acid models in the RAxML
// format: the full 20×20 exchangeability matrix (row-major) followed
// by 20 amino acid frequencies, 420 numbers in total, one per line.
package raxml

import (
	"bufio"
	"fmt"
	"io"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
	"bitbucket.org/Davydov/aaconv/triangle"
)

var log = logging.MustGetLogger("raxml")

// NValue is the number of values in a RAxML model file.
const NValue = bio.NAminoAcid*bio.NAminoAcid + bio.NAminoAcid

// Read reads a model in the RAxML format. Only the upper triangle of
// the matrix is used.
func Read(rd io.Reader) (*aamodel.Model, error) {
	vals, n, err := aamodel.ScanFloats(rd, NValue)
	if err != nil {
		return nil, err
	}
	if n != NValue {
		return nil, aamodel.NewCountError(aamodel.ErrInvalidElementCount,
			"values", n, fmt.Sprint(NValue))
	}
	full := vals[:bio.NAminoAcid*bio.NAminoAcid]
	checkSymmetric(full)
	rates := triangle.FullToUpper(bio.NAminoAcid, full)
	return aamodel.New(rates, vals[len(full):])
}

// checkSymmetric logs a warning if the lower triangle differs from
// the upper one.
func checkSymmetric(full []float64) {
	for k, v := range full {
		i, j := triangle.FullPair(bio.NAminoAcid, k)
		if i == j {
			if v != 0 {
				log.Warningf("Non-zero diagonal element %s=%v is ignored", bio.Pair(i, j), v)
			}
			continue
		}
		if i < j && v != full[triangle.FullIndex(bio.NAminoAcid, j, i)] {
			log.Warningf("Matrix is not symmetric, using upper triangle (%s=%v)", bio.Pair(i, j), v)
			return
		}
	}
}

// Write writes a model in the RAxML format.
func Write(w io.Writer, m *aamodel.Model) error {
	bw := bufio.NewWriter(w)
	mat := m.Matrix()
	n := mat.Symmetric()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			bw.WriteString(aamodel.FormatFloat(mat.At(i, j)))
			bw.WriteByte('\n')
		}
	}
	for _, f := range m.Freq {
		bw.WriteString(aamodel.FormatFloat(f))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
