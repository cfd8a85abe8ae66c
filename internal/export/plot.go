// Package export renders run statistics to image files.
package export

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Yutarop/ga-pixel-art/internal/grid"
)

// WriteFitnessPlot draws average fitness and perfect-match fraction against
// generation and saves the plot to outPath (format from the extension).
func WriteFitnessPlot(stats []grid.GenStats, title, outPath string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	avgPts := make(plotter.XYs, len(stats))
	perfectPts := make(plotter.XYs, len(stats))

	for i, st := range stats {
		avgPts[i].X = float64(st.Generation)
		avgPts[i].Y = st.AvgFitness

		perfectPts[i].X = float64(st.Generation)
		perfectPts[i].Y = st.PerfectFraction
	}

	avgLine, err := plotter.NewLine(avgPts)
	if err != nil {
		return err
	}
	perfectLine, err := plotter.NewLine(perfectPts)
	if err != nil {
		return err
	}
	perfectLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(avgLine, perfectLine)
	p.Legend.Add("avg fitness", avgLine)
	p.Legend.Add("perfect fraction", perfectLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, outPath)
}
