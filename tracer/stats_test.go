package tracer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1, Luminance(C(1, 1, 1)), 1e-12)
	assert.InDelta(t, 0.2126, Luminance(C(5, 0, 0)), 1e-12)
	assert.Zero(t, Luminance(C(0, 0, 0)))
}

func TestComputeStats(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	for i := range fb.Pix {
		fb.Pix[i] = C(0.5, 0.5, 0.5)
	}
	stats := ComputeStats(fb)
	assert.Equal(t, 4, stats.Pixels)
	assert.InDelta(t, 0.5, stats.Mean, 1e-12)
	assert.InDelta(t, 0, stats.StdDev, 1e-12)
	assert.InDelta(t, 0.5, stats.Min, 1e-12)
	assert.InDelta(t, 0.5, stats.Max, 1e-12)
	assert.Zero(t, stats.Clipped)

	fb.Pix[3] = C(2, 0, 0)
	stats = ComputeStats(fb)
	assert.InDelta(t, 0.25, stats.Clipped, 1e-12)
	assert.InDelta(t, 0.2126, stats.Min, 1e-12)
	assert.Contains(t, stats.String(), "4 pixels")

	assert.Equal(t, Stats{}, ComputeStats(NewFramebuffer(0, 0)))
}

func TestPlotLuminanceHistogram(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	for i := range fb.Pix {
		v := float64(i) / float64(len(fb.Pix))
		fb.Pix[i] = C(v, v, v)
	}
	path := filepath.Join(t.TempDir(), "histogram.png")
	require.NoError(t, PlotLuminanceHistogram(fb, path, 16))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
