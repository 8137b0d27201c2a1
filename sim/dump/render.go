package dump

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WriteRaster renders an occupancy grid as a black-on-white PNG, each
// occupied cell a scale × scale square. Layer 0 is the top row of pixels.
func WriteRaster(w io.Writer, rows [][]uint8, scale int) error {
	if scale <= 0 {
		return fmt.Errorf("raster scale must be positive, got %d", scale)
	}
	sites := 0
	if len(rows) > 0 {
		sites = len(rows[0])
	}
	img := image.NewGray(image.Rect(0, 0, sites*scale, len(rows)*scale))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for layer, row := range rows {
		for site, v := range row {
			if v == 0 {
				continue
			}
			cell := image.Rect(site*scale, layer*scale, (site+1)*scale, (layer+1)*scale)
			draw.Draw(img, cell, image.Black, image.Point{}, draw.Src)
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding raster: %w", err)
	}
	return nil
}

// HeightSeries is one named curve of a height-function plot.
type HeightSeries struct {
	Label  string
	Points plotter.XYs
}

// LatticeHeightSeries turns per-layer height functions into plot series.
func LatticeHeightSeries(heights [][]int) []HeightSeries {
	series := make([]HeightSeries, len(heights))
	for layer, h := range heights {
		pts := make(plotter.XYs, len(h))
		for x, v := range h {
			pts[x] = plotter.XY{X: float64(x), Y: float64(v)}
		}
		series[layer] = HeightSeries{Label: fmt.Sprintf("layer %d", layer), Points: pts}
	}
	return series
}

// ContinuousHeightSeries builds the step function x ↦ #{particles >= x} from
// sorted positions.
func ContinuousHeightSeries(positions []float64) HeightSeries {
	pts := make(plotter.XYs, 0, 2*len(positions)+1)
	n := len(positions)
	pts = append(pts, plotter.XY{X: 0, Y: float64(n)})
	for i, x := range positions {
		pts = append(pts, plotter.XY{X: x, Y: float64(n - i)})
		pts = append(pts, plotter.XY{X: x, Y: float64(n - i - 1)})
	}
	return HeightSeries{Label: "height", Points: pts}
}

// SaveHeightPlot draws the series on one chart and saves it; the image
// format follows the file extension.
func SaveHeightPlot(path, title string, series []HeightSeries) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Height"

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		if len(series) <= 12 {
			p.Legend.Add(s.Label, line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save height plot: %w", err)
	}
	return nil
}
