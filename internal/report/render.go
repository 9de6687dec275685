package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	chartWidth  = 7 * vg.Inch
	chartHeight = 4.5 * vg.Inch
	// the width of a whole category, grouped bars share it
	categoryWidth = 36
)

func hexColor(hex string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	_, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return c, nil
}

// colorAt cycles through a series' colors.
func (s Series) colorAt(i int) (color.RGBA, error) {
	if len(s.Colors) == 0 {
		return color.RGBA{A: 0xff}, nil
	}
	return hexColor(s.Colors[i%len(s.Colors)])
}

func (ds Dataset) maxValue() float64 {
	highest := 0.0
	for i := range ds.Categories {
		sum := 0.0
		for _, s := range ds.Series {
			if ds.Stacked {
				sum += s.Values[i]
			} else {
				sum = max(sum, s.Values[i])
			}
		}
		highest = max(highest, sum)
	}
	return highest
}

// Plot builds the chart of a dataset.
func (ds Dataset) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ds.Title
	p.X.Label.Text = ds.XLabel
	p.Y.Label.Text = ds.YLabel
	p.NominalX(ds.Categories...)

	if len(ds.Categories) > 0 {
		err := ds.addBars(p)
		if err != nil {
			return nil, err
		}
		err = ds.addValueLabels(p)
		if err != nil {
			return nil, err
		}
	}

	p.Y.Min = 0
	p.Y.Max = max(ds.maxValue()*1.15, 1)
	return p, nil
}

func (ds Dataset) addBars(p *plot.Plot) error {
	width := vg.Points(categoryWidth)
	if !ds.Stacked && len(ds.Series) > 1 {
		width = vg.Points(categoryWidth) / vg.Length(len(ds.Series))
	}

	var below *plotter.BarChart
	for k, s := range ds.Series {
		if len(s.Values) != len(ds.Categories) {
			return fmt.Errorf(
				"%s: series %q has %d values for %d categories",
				ds.Name, s.Label, len(s.Values), len(ds.Categories),
			)
		}

		// one bar chart per color so that a single series can color each
		// of its bars differently
		if len(s.Colors) > 1 {
			for i, v := range s.Values {
				bar, err := plotter.NewBarChart(plotter.Values{v}, width)
				if err != nil {
					return err
				}
				bar.XMin = float64(i)
				bar.LineStyle.Width = 0
				bar.Color, err = s.colorAt(i)
				if err != nil {
					return err
				}
				p.Add(bar)
			}
			continue
		}

		bar, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return err
		}
		bar.LineStyle.Width = 0
		bar.Color, err = s.colorAt(0)
		if err != nil {
			return err
		}
		if ds.Stacked && below != nil {
			bar.StackOn(below)
		}
		if !ds.Stacked && len(ds.Series) > 1 {
			bar.Offset = width * vg.Length(float64(k)-float64(len(ds.Series)-1)/2)
		}
		below = bar

		p.Add(bar)
		if len(ds.Series) > 1 {
			p.Legend.Add(s.Label, bar)
		}
	}

	p.Legend.Top = true
	return nil
}

func (ds Dataset) addValueLabels(p *plot.Plot) error {
	if len(ds.ValueLabels) == 0 || len(ds.Series) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(ds.ValueLabels))
	for i := range ds.ValueLabels {
		xys[i] = plotter.XY{X: float64(i), Y: ds.Series[0].Values[i]}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    xys,
		Labels: ds.ValueLabels,
	})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(2)}

	p.Add(labels)
	return nil
}

// RenderPNG draws the dataset into dir/<name>.png and returns the file path.
func RenderPNG(ds Dataset, dir string) (string, error) {
	p, err := ds.Plot()
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ds.Name+".png")
	err = p.Save(chartWidth, chartHeight, path)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
