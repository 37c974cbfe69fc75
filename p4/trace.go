package p4

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bitbucket.org/Davydov/aaconv/aamodel"
)

// TraceFileName is the name of the parameter samples file written by
// P4 for the first run.
const TraceFileName = "mcmc_prams_0"

// Trace stores MCMC samples of model parameters.
type Trace struct {
	// Header is the column names line, if present.
	Header []string
	// Gens are generation numbers of the samples.
	Gens []int64
	// Samples are parameter values, one slice per sample.
	Samples [][]float64
}

// ReadTrace reads MCMC samples. Empty lines and lines starting with
// '#' are skipped. The first line may be a header. Every other line
// is a generation number followed by nPrams values.
func ReadTrace(rd io.Reader, nPrams int) (*Trace, error) {
	t := &Trace{}
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		fields := strings.Fields(l)
		gen, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			if t.Header == nil && len(t.Samples) == 0 {
				t.Header = fields
				continue
			}
			return nil, fmt.Errorf("%w: trace line %d: %v", aamodel.ErrMalformedInput, line, err)
		}
		if len(fields)-1 != nPrams {
			return nil, aamodel.NewCountError(aamodel.ErrInvalidElementCount,
				fmt.Sprintf("values on trace line %d", line), len(fields)-1, strconv.Itoa(nPrams))
		}
		vals := make([]float64, nPrams)
		for i, f := range fields[1:] {
			vals[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: trace line %d: %v", aamodel.ErrMalformedInput, line, err)
			}
		}
		t.Gens = append(t.Gens, int64(gen))
		t.Samples = append(t.Samples, vals)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of samples.
func (t *Trace) Len() int {
	return len(t.Samples)
}

// Columns returns values of every parameter starting from the sample
// skip.
func (t *Trace) Columns(skip int) [][]float64 {
	if len(t.Samples) == 0 {
		return nil
	}
	cols := make([][]float64, len(t.Samples[0]))
	for i := range cols {
		cols[i] = make([]float64, 0, len(t.Samples)-skip)
	}
	for _, s := range t.Samples[skip:] {
		for i, v := range s {
			cols[i] = append(cols[i], v)
		}
	}
	return cols
}
