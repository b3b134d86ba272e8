package tracer

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// RenderOptions tunes how a frame is scheduled. The zero value is usable.
type RenderOptions struct {
	// Number of rows rendered concurrently. Zero means runtime.NumCPU().
	Workers int
	// Called after each finished row with the running total. May be called from several goroutines.
	Progress func(rowsDone, totalRows int)
}

// Render traces one primary ray per pixel of camera.
//
// Rows are independent tasks and each writes only its own slice of the framebuffer. Cancelling ctx
// stops scheduling new rows and returns ctx.Err().
func Render(ctx context.Context, scene *Scene, camera Camera, opts RenderOptions) (*Framebuffer, error) {
	fb := NewFramebuffer(camera.Width, camera.Height)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := 0; j < camera.Height; j++ {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := fb.Row(j)
			for i := range row {
				row[i] = scene.CastRay(camera.Position, camera.Direction(i, j), 0)
			}
			n := done.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(n), camera.Height)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fb, nil
}
