// Package p4 summarizes MCMC samples of an amino acid model written
// by the P4 phylogenetic toolkit and converts the posterior means to
// a substitution model.
//
// A P4 run directory contains a parameter profile
// (mcmc_pramsProfile_0.py) and the samples (mcmc_prams_0). The first
// 20 parameters are amino acid frequencies, the following 190 are
// exchangeabilities in the canonical order. P4 normalizes
// exchangeabilities, so they are scaled back.
package p4

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gonum/floats"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
)

var log = logging.MustGetLogger("p4")

// DefaultRateScale is the factor exchangeabilities are multiplied by.
const DefaultRateScale = 1e4

// Summary is the summary of a P4 MCMC run.
type Summary struct {
	// Burnin is the percentage of samples discarded.
	Burnin int `json:"burnin"`
	// NSamples is the total number of samples.
	NSamples int `json:"nSamples"`
	// Skipped is the number of discarded samples.
	Skipped int `json:"skipped"`
	// Params are parameter summaries.
	Params []ParamSummary `json:"params"`
}

// openFile opens a file in dir, a missing file is reported as
// aamodel.ErrPathNotFound.
func openFile(dir, name string) (*os.File, error) {
	fn := filepath.Join(dir, name)
	f, err := os.Open(fn)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", aamodel.ErrPathNotFound, fn)
	}
	return f, err
}

// Read reads and summarizes a P4 run from a directory discarding
// burnin percent of the first samples.
func Read(dir string, burnin int) (*Summary, error) {
	if burnin < 0 || burnin > 100 {
		return nil, fmt.Errorf("%w: %d", aamodel.ErrInvalidBurnin, burnin)
	}

	pf, err := openFile(dir, ProfileFileName)
	if err != nil {
		return nil, err
	}
	defer pf.Close()
	tf, err := openFile(dir, TraceFileName)
	if err != nil {
		return nil, err
	}
	defer tf.Close()

	return ReadFrom(pf, tf, burnin)
}

// ReadFrom reads a P4 run from profile and trace readers.
func ReadFrom(profile, trace io.Reader, burnin int) (*Summary, error) {
	p, err := ReadProfile(profile)
	if err != nil {
		return nil, err
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}

	t, err := ReadTrace(trace, p.NPrams[0])
	if err != nil {
		return nil, err
	}
	if t.Header != nil && len(t.Header)-1 != p.NPrams[0] {
		log.Warningf("Trace header has %d columns, expected %d", len(t.Header), p.NPrams[0]+1)
	}

	skip := t.Len() * burnin / 100
	if skip >= t.Len() {
		return nil, fmt.Errorf("%w: no samples left (%d samples, burnin %d%%)",
			aamodel.ErrMalformedInput, t.Len(), burnin)
	}
	log.Infof("Read %d samples, skipping first %d", t.Len(), skip)

	s := &Summary{
		Burnin:   burnin,
		NSamples: t.Len(),
		Skipped:  skip,
		Params:   Summarize(p.Names(), t.Columns(skip)),
	}
	for _, par := range s.Params {
		log.Debugf("%s\t%v\t%v\t%.1f", par.Name, par.Mean, par.Variance, par.ESS)
	}
	return s, nil
}

// Means returns posterior means of all the parameters.
func (s *Summary) Means() []float64 {
	m := make([]float64, len(s.Params))
	for i, par := range s.Params {
		m[i] = par.Mean
	}
	return m
}

// Model creates a substitution model from posterior means. Rates are
// multiplied by scale.
func (s *Summary) Model(scale float64) (*aamodel.Model, error) {
	means := s.Means()
	if len(means) < bio.NParameter {
		return nil, aamodel.NewCountError(aamodel.ErrInsufficientParameters,
			"parameters", len(means), fmt.Sprintf("at least %d", bio.NParameter))
	}
	if len(means) > bio.NParameter {
		log.Debugf("Ignoring %d parameters after the exchangeabilities", len(means)-bio.NParameter)
	}
	freq := means[:bio.NAminoAcid]
	rates := append([]float64(nil), means[bio.NAminoAcid:bio.NParameter]...)
	floats.Scale(scale, rates)
	return aamodel.New(rates, freq)
}
