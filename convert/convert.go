// Package convert reads amino acid models in any supported input
// format and writes them in any supported output format.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/p4"
	"bitbucket.org/Davydov/aaconv/paml"
	"bitbucket.org/Davydov/aaconv/phylobayes"
	"bitbucket.org/Davydov/aaconv/raxml"
)

var log = logging.MustGetLogger("convert")

// ImportSettings describes where and how a model is read.
type ImportSettings struct {
	// Kind is the input format.
	Kind Kind
	// Dir is the working directory. Relative model path is
	// resolved against it, P4 files are read from it.
	Dir string
	// Model is the model file (PAML and RAxML).
	Model string
	// Burnin is the percentage of P4 samples to discard, negative
	// if not set.
	Burnin int
	// RateScale is the P4 exchangeabilities multiplier, the default
	// is used if zero.
	RateScale float64
}

// Imported is a model read from a file.
type Imported struct {
	Model *aamodel.Model
	// Source is the model file, or the directory for P4.
	Source string
	// Summary is the MCMC summary (P4 only).
	Summary *p4.Summary
}

// Resolve returns path relative to dir, absolute paths are returned
// as is.
func Resolve(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// CheckDir checks that dir exists and is a directory.
func CheckDir(dir string) error {
	if dir == "" {
		return nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", aamodel.ErrPathNotFound, dir)
		}
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", aamodel.ErrPathNotFound, dir)
	}
	return nil
}

// Import reads a model according to the settings.
func Import(s *ImportSettings) (*Imported, error) {
	if !s.Kind.IsInput() {
		return nil, fmt.Errorf("%w: cannot read %s models", aamodel.ErrUnsupportedFormat, s.Kind)
	}
	if err := CheckDir(s.Dir); err != nil {
		return nil, err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	if s.Kind == P4 {
		burnin := s.Burnin
		if burnin < 0 {
			burnin = 0
		}
		scale := s.RateScale
		if scale == 0 {
			scale = p4.DefaultRateScale
		}
		sum, err := p4.Read(dir, burnin)
		if err != nil {
			return nil, err
		}
		m, err := sum.Model(scale)
		if err != nil {
			return nil, err
		}
		return &Imported{Model: m, Source: dir, Summary: sum}, nil
	}

	if s.Burnin >= 0 {
		log.Warningf("Burnin is ignored for %s input", s.Kind)
	}
	if s.Model == "" {
		return nil, fmt.Errorf("%w: model file is required for %s input", aamodel.ErrPathNotFound, s.Kind)
	}
	fn := Resolve(dir, s.Model)
	f, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", aamodel.ErrPathNotFound, fn)
		}
		return nil, err
	}
	defer f.Close()

	var m *aamodel.Model
	switch s.Kind {
	case PAML:
		m, err = paml.Read(f)
	case RAxML:
		m, err = raxml.Read(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return &Imported{Model: m, Source: fn}, nil
}

// ExportSettings describes where and how a model is written.
type ExportSettings struct {
	// Kind is the output format.
	Kind Kind
	// Path is the output file, stdout is used if empty.
	Path string
	// NoFreq omits the composition line of the PhyloBayes output.
	NoFreq bool
	// Confirm receives the confirmation line after the file is
	// written. If nil, the confirmation is only logged.
	Confirm io.Writer
}

// Write writes a model in the given format. PAML models written to
// a file are rounded, otherwise values are written as is.
func Write(w io.Writer, m *aamodel.Model, s *ExportSettings, toFile bool) error {
	switch s.Kind {
	case PAML:
		if toFile {
			return paml.Write(w, m)
		}
		return paml.WriteExact(w, m)
	case RAxML:
		return raxml.Write(w, m)
	case PhyloBayes:
		if s.NoFreq {
			return phylobayes.WriteRates(w, m)
		}
		return phylobayes.Write(w, m)
	}
	return fmt.Errorf("%w: cannot write %s models", aamodel.ErrUnsupportedFormat, s.Kind)
}

// Export writes a model to the output file, the file is
// overwritten. If there is no output file, the model is written to
// stdout.
func Export(m *aamodel.Model, s *ExportSettings, stdout io.Writer) (err error) {
	if !s.Kind.IsOutput() {
		return fmt.Errorf("%w: cannot write %s models", aamodel.ErrUnsupportedFormat, s.Kind)
	}
	if s.Path == "" {
		return Write(stdout, m, s, false)
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = Write(f, m, s, true); err != nil {
		return err
	}
	msg := fmt.Sprintf("Your data was converted and saved in %s", s.Path)
	if s.Confirm != nil {
		_, err = fmt.Fprintln(s.Confirm, msg)
		return err
	}
	log.Notice(msg)
	return nil
}
