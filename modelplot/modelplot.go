// Package modelplot draws amino acid composition and exchangeability
// matrix of a model.
package modelplot

import (
	"github.com/gonum/matrix/mat64"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
)

// Size is the width and height of the saved plots.
var Size = 6 * vg.Inch

// Composition creates a bar chart of amino acid frequencies.
func Composition(m *aamodel.Model, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "frequency"

	bars, err := plotter.NewBarChart(plotter.Values(m.Freq), vg.Points(12))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(bio.Letters()...)
	return p, nil
}

// rateGrid exposes the exchangeability matrix as a heat map grid.
type rateGrid struct {
	m *mat64.SymDense
}

func (g rateGrid) Dims() (c, r int) {
	n := g.m.Symmetric()
	return n, n
}

func (g rateGrid) Z(c, r int) float64 {
	return g.m.At(r, c)
}

func (g rateGrid) X(c int) float64 {
	return float64(c)
}

func (g rateGrid) Y(r int) float64 {
	return float64(r)
}

// aminoAcidTicks labels every integer position with an amino acid.
func aminoAcidTicks() plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, bio.NAminoAcid)
	for i, l := range bio.Letters() {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

// Rates creates a heat map of the exchangeability matrix.
func Rates(m *aamodel.Model, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Add(plotter.NewHeatMap(rateGrid{m.Matrix()}, palette.Heat(16, 1)))
	p.X.Tick.Marker = aminoAcidTicks()
	p.Y.Tick.Marker = aminoAcidTicks()
	return p
}

// SaveComposition saves the composition bar chart, the image format
// is chosen by the file extension.
func SaveComposition(m *aamodel.Model, title, fn string) error {
	p, err := Composition(m, title)
	if err != nil {
		return err
	}
	return p.Save(Size, Size/2, fn)
}

// SaveRates saves the exchangeability heat map.
func SaveRates(m *aamodel.Model, title, fn string) error {
	return Rates(m, title).Save(Size, Size, fn)
}
