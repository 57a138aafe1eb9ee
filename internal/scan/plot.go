package scan

import (
	stdcolor "image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderPlot renders the scan curve to an image file at path: the SCF
// samples as points, the minimum highlighted, and the fitted Morse curve
// overlaid when available. The file extension selects the image format.
func RenderPlot(curve *Curve, path string) error {
	p := plot.New()
	p.Title.Text = "Energy curve for " + curve.Label
	p.X.Label.Text = "R (Å)"
	p.Y.Label.Text = "E (Hartree)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(curve.Samples))
	for n, s := range curve.Samples {
		pts[n].X = s.Distance
		pts[n].Y = s.Energy
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(scatter)
	p.Legend.Add("SCF samples", scatter)

	min := curve.Min()
	minPt, err := plotter.NewScatter(plotter.XYs{{X: min.Distance, Y: min.Energy}})
	if err != nil {
		return err
	}
	minPt.GlyphStyle.Color = stdcolor.RGBA{R: 200, A: 255}
	minPt.GlyphStyle.Radius = vg.Points(4)
	p.Add(minPt)
	p.Legend.Add("minimum", minPt)

	if curve.Fit != nil {
		fn := plotter.NewFunction(curve.Fit.Eval)
		fn.Samples = 400
		fn.Color = stdcolor.RGBA{R: 230, G: 140, A: 255}
		p.Add(fn)
		p.Legend.Add("Morse fit", fn)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
