package p4

import (
	"math"

	"github.com/gonum/floats"
)

// ParamSummary is a summary of samples of one parameter.
type ParamSummary struct {
	// Name is the parameter name.
	Name string `json:"name"`
	// Mean is the posterior mean, the point estimate.
	Mean float64 `json:"mean"`
	// Variance is the sample variance.
	Variance float64 `json:"variance"`
	// ESS is the effective sample size.
	ESS float64 `json:"ess"`
}

// Summarize computes mean, variance and effective sample size for
// every parameter.
func Summarize(names []string, cols [][]float64) []ParamSummary {
	res := make([]ParamSummary, len(cols))
	for i, x := range cols {
		m := mean(x)
		v := variance(x, m)
		res[i] = ParamSummary{
			Name:     names[i],
			Mean:     m,
			Variance: v,
			ESS:      ess(x, m, v),
		}
	}
	return res
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Sum(x) / float64(len(x))
}

// centered returns x-m.
func centered(x []float64, m float64) []float64 {
	d := append([]float64(nil), x...)
	floats.AddConst(-m, d)
	return d
}

// variance computes unbiased sample variance.
func variance(x []float64, m float64) float64 {
	if len(x) < 2 {
		return 0
	}
	d := centered(x, m)
	return floats.Dot(d, d) / float64(len(x)-1)
}

// ess computes effective sample size n/(1+2*sum(rho_k)), summing
// autocorrelations while they stay positive.
func ess(x []float64, m, v float64) float64 {
	n := len(x)
	if n < 2 || v == 0 {
		return float64(n)
	}
	d := centered(x, m)
	c0 := floats.Dot(d, d)
	s := 0.0
	for k := 1; k < n; k++ {
		rho := floats.Dot(d[:n-k], d[k:]) / c0
		if rho <= 0 {
			break
		}
		s += rho
	}
	return float64(n) / (1 + 2*s)
}
