// Package paml reads and writes amino acid models in the PAML format
// (e.g. wag.dat, lg.dat).
//
// The file starts with 190 exchangeabilities of the lower triangle
// written row by row (rows of 1, 2, ..., 19 values), followed by 20
// amino acid frequencies. Anything after the first 210 numbers
// (model name, references) is ignored.
package paml

import (
	"bufio"
	"fmt"
	"io"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
	"bitbucket.org/Davydov/aaconv/triangle"
)

var log = logging.MustGetLogger("paml")

const (
	// RateDigits is the number of decimal digits rates are rounded to.
	RateDigits = 3
	// FreqDigits is the number of decimal digits frequencies are
	// rounded to.
	FreqDigits = 6

	rateSep = "   "
	freqSep = "  "
)

// Read reads a model in the PAML format.
func Read(rd io.Reader) (*aamodel.Model, error) {
	vals, n, err := aamodel.ScanFloats(rd, bio.NParameter)
	if err != nil {
		return nil, err
	}
	if n < bio.NParameter {
		return nil, aamodel.NewCountError(aamodel.ErrInsufficientParameters,
			"values", n, fmt.Sprintf("at least %d", bio.NParameter))
	}
	if n > bio.NParameter {
		log.Debugf("Ignoring %d values after the model", n-bio.NParameter)
	}
	rates := triangle.LowerToUpper(bio.NAminoAcid, vals[:bio.NRate])
	return aamodel.New(rates, vals[bio.NRate:bio.NParameter])
}

// Write writes a model in the PAML format, rates rounded to 3 and
// frequencies to 6 decimal digits.
func Write(w io.Writer, m *aamodel.Model) error {
	return write(w, m, aamodel.Rounder(RateDigits), aamodel.Rounder(FreqDigits), false)
}

// WriteExact writes a model in the PAML layout without rounding,
// terminated by a newline.
func WriteExact(w io.Writer, m *aamodel.Model) error {
	return write(w, m, aamodel.FormatFloat, aamodel.FormatFloat, true)
}

func write(w io.Writer, m *aamodel.Model, rateF, freqF func(float64) string, eol bool) error {
	bw := bufio.NewWriter(w)
	for _, row := range m.LowerRows() {
		bw.WriteString(aamodel.JoinFloats(row, rateSep, rateF))
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	bw.WriteString(aamodel.JoinFloats(m.Freq, freqSep, freqF))
	if eol {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
