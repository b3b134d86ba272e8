package tracer

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Luminance is the Rec. 709 luma of a tone mapped color
func Luminance(c pt.Color) float64 {
	c = ToneMap(c)
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Stats summarises the tone mapped luminance of a frame
type Stats struct {
	Pixels int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Fraction of pixels whose radiance exceeded 1 in some channel before tone mapping
	Clipped float64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pixels, luminance mean %.3f stddev %.3f range [%.3f, %.3f], %.1f%% clipped",
		s.Pixels, s.Mean, s.StdDev, s.Min, s.Max, 100*s.Clipped)
}

func (fb *Framebuffer) luminances() []float64 {
	lum := make([]float64, len(fb.Pix))
	for i, c := range fb.Pix {
		lum[i] = Luminance(c)
	}
	return lum
}

func ComputeStats(fb *Framebuffer) Stats {
	if len(fb.Pix) == 0 {
		return Stats{}
	}
	lum := fb.luminances()
	clipped := 0
	for _, c := range fb.Pix {
		if c.R > 1 || c.G > 1 || c.B > 1 {
			clipped++
		}
	}
	mean, std := stat.MeanStdDev(lum, nil)
	return Stats{
		Pixels:  len(lum),
		Mean:    mean,
		StdDev:  std,
		Min:     floats.Min(lum),
		Max:     floats.Max(lum),
		Clipped: float64(clipped) / float64(len(lum)),
	}
}

// PlotLuminanceHistogram saves a histogram of the frame's luminance to filename. The image format
// follows the extension.
func PlotLuminanceHistogram(fb *Framebuffer, filename string, bins int) error {
	p := plot.New()
	p.Title.Text = "Luminance"
	p.X.Label.Text = "Tone mapped luminance"
	p.Y.Label.Text = "Pixels"

	hist, err := plotter.NewHist(plotter.Values(fb.luminances()), bins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	p.Add(hist)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving histogram: %w", err)
	}
	return nil
}
