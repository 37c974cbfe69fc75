// Package aamodel implements the canonical amino acid substitution
// model: 190 exchangeability rates in the canonical (upper triangle)
// order and 20 amino acid frequencies.
package aamodel

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/bio"
	"bitbucket.org/Davydov/aaconv/triangle"
)

var log = logging.MustGetLogger("aamodel")

// FreqTolerance is the maximum allowed difference between the sum of
// amino acid frequencies and 1.
const FreqTolerance = 1e-9

// Model is an amino acid substitution model in the canonical form.
type Model struct {
	// Rates are exchangeability rates for pairs (0,1), (0,2), ...,
	// (0,19), (1,2), ..., (18,19).
	Rates []float64 `json:"rates"`
	// Freq is the amino acid composition in the bio.AminoAcids order.
	Freq []float64 `json:"freq"`
	// RawFreqSum is the sum of frequencies as they were read.
	RawFreqSum float64 `json:"rawFreqSum"`
	// FreqAdjusted is true if the last frequency was changed to
	// make the composition sum to 1.
	FreqAdjusted bool `json:"freqAdjusted"`
}

// New creates a model from canonical rates and frequencies. Slices
// are copied. Frequencies are normalized and the model is validated.
func New(rates, freq []float64) (*Model, error) {
	m := &Model{
		Rates: append([]float64(nil), rates...),
		Freq:  append([]float64(nil), freq...),
	}
	m.NormalizeFreq()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NormalizeFreq replaces the last frequency by one minus the sum of
// all the others if frequencies do not sum to 1. It returns true if
// the composition was changed.
func (m *Model) NormalizeFreq() bool {
	if len(m.Freq) == 0 {
		return false
	}
	m.RawFreqSum = floats.Sum(m.Freq)
	if math.Abs(m.RawFreqSum-1) <= FreqTolerance {
		return false
	}
	last := len(m.Freq) - 1
	old := m.Freq[last]
	m.Freq[last] = 1 - floats.Sum(m.Freq[:last])
	m.FreqAdjusted = true
	log.Debugf("Frequencies sum to %v, last frequency adjusted %v -> %v", m.RawFreqSum, old, m.Freq[last])
	return true
}

// Validate checks number of rates and frequencies, that all the
// values are non-negative and that frequencies sum to 1.
func (m *Model) Validate() error {
	if len(m.Rates) != bio.NRate {
		return NewCountError(ErrInvariantViolation, "substitution rates", len(m.Rates), fmt.Sprint(bio.NRate))
	}
	if len(m.Freq) != bio.NAminoAcid {
		return NewCountError(ErrInvariantViolation, "composition frequencies", len(m.Freq), fmt.Sprint(bio.NAminoAcid))
	}
	for k, r := range m.Rates {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			i, j := triangle.UpperPair(bio.NAminoAcid, k)
			return fmt.Errorf("%w: rate %s=%v", ErrInvariantViolation, bio.Pair(i, j), r)
		}
	}
	for i, f := range m.Freq {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: frequency of %c=%v", ErrInvariantViolation, bio.AminoAcids[i], f)
		}
	}
	if s := floats.Sum(m.Freq); math.Abs(s-1) > FreqTolerance {
		return fmt.Errorf("%w: frequencies sum to %v", ErrInvariantViolation, s)
	}
	return nil
}

// Rate returns exchangeability rate between amino acids i and j.
func (m *Model) Rate(i, j int) float64 {
	if i == j {
		return 0
	}
	return m.Rates[triangle.UpperIndex(bio.NAminoAcid, i, j)]
}

// Rows returns the canonical blocks: rates of the first amino acid
// with all the following, of the second with all the following, etc.
func (m *Model) Rows() [][]float64 {
	return triangle.UpperRows(bio.NAminoAcid, m.Rates)
}

// LowerRates returns rates in the PAML (lower triangle by row) order.
func (m *Model) LowerRates() []float64 {
	return triangle.UpperToLower(bio.NAminoAcid, m.Rates)
}

// LowerRows returns the lower triangle rows of lengths 1, 2, ..., 19.
func (m *Model) LowerRows() [][]float64 {
	return triangle.LowerRows(bio.NAminoAcid, m.LowerRates())
}

// Matrix returns the symmetric 20×20 exchangeability matrix with a
// zero diagonal.
func (m *Model) Matrix() *mat64.SymDense {
	s := mat64.NewSymDense(bio.NAminoAcid, nil)
	for k, r := range m.Rates {
		i, j := triangle.UpperPair(bio.NAminoAcid, k)
		s.SetSym(i, j, r)
	}
	return s
}
