// Package phylobayes writes amino acid exchangeabilities in the
// format accepted by PhyloBayes (-rr option): a header with the amino
// acid order followed by the upper triangle of the matrix, one row
// per line. PhyloBayes stops reading after the 190 rates, so the
// composition can follow on its own line.
package phylobayes

import (
	"bufio"
	"io"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
)

// Write writes model exchangeabilities followed by the composition
// line.
func Write(w io.Writer, m *aamodel.Model) error {
	return write(w, m, true)
}

// WriteRates writes model exchangeabilities only.
func WriteRates(w io.Writer, m *aamodel.Model) error {
	return write(w, m, false)
}

func write(w io.Writer, m *aamodel.Model, freq bool) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(bio.Header())
	bw.WriteByte('\n')
	for _, row := range m.Rows() {
		bw.WriteString(aamodel.JoinFloats(row, " ", aamodel.FormatFloat))
		bw.WriteByte('\n')
	}
	if freq {
		bw.WriteString(aamodel.JoinFloats(m.Freq, " ", aamodel.FormatFloat))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
