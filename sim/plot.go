package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates a new plot of a 2D tracking run from three data sources:
// truth:   true trajectory values
// measure: measurement values
// estim:   filter estimate values
// Each matrix stores one step per row with at least 2 columns (X and Y).
// It returns error if either of the supplied data matrices is nil, has
// fewer than 2 columns, or if the scatter plotters fail to be created.
func New2DPlot(truth, measure, estim *mat.Dense) (*plot.Plot, error) {
	if truth == nil || measure == nil || estim == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	for _, m := range []*mat.Dense{truth, measure, estim} {
		if _, c := m.Dims(); c < 2 {
			return nil, fmt.Errorf("invalid data dimensions")
		}
	}

	p := plot.New()

	p.Title.Text = "Tracking"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for truth data
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for measurement data
	measScatter, err := plotter.NewScatter(makePoints(measure))
	if err != nil {
		return nil, err
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	// Make a scatter plotter for estimate data
	estimScatter, err := plotter.NewScatter(makePoints(estim))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	estimScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	estimScatter.Shape = draw.CrossGlyph{}
	estimScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(estimScatter)
	p.Legend.Add("estimate", estimScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
