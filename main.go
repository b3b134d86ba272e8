package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/disintegration/imaging"
	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-raytracer/interact"
	"github.com/jdginn/go-raytracer/tracer"
	tracerConfig "github.com/jdginn/go-raytracer/tracer/config"
	"github.com/jdginn/go-raytracer/tracer/renderdir"
)

const histogramBins = 64

var CLI struct {
	Render   RenderCmd   `cmd:"" default:"1" help:"Render a scene (the reference scene when no config is given)"`
	Validate ValidateCmd `cmd:"" help:"Check a scene config without rendering"`
	Trace    TraceCmd    `cmd:"" help:"Dump the ray tree of one pixel as JSON"`
	Section  SectionCmd  `cmd:"" help:"Draw a cross-section of the scene, optionally with one pixel's rays"`
}

func loadConfig(path string) (*tracerConfig.SceneConfig, error) {
	if err := tracerConfig.LoadEnv("."); err != nil {
		return nil, err
	}
	opts := tracerConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	}
	var (
		config *tracerConfig.SceneConfig
		err    error
	)
	if path == "" {
		config, err = tracerConfig.Default(opts)
	} else {
		config, err = tracerConfig.LoadFromFile(path, opts)
	}
	if err != nil {
		return nil, err
	}
	config.ApplyEnvironment()
	return config, nil
}

// withSuffix turns out.jpg into out_<suffix>.<ext>
func withSuffix(path, suffix, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "_" + suffix + ext
}

type RenderCmd struct {
	Config    string `name:"config" short:"c" type:"existingfile" help:"scene config file"`
	Output    string `name:"output" short:"o" help:"override render.output from the config"`
	Progress  bool   `name:"progress" help:"draw a progress bar while rendering"`
	Report    bool   `name:"report" help:"print luminance statistics and save a histogram next to the render"`
	RenderDir bool   `name:"render-dir" help:"write everything into a new directory under renders/"`
}

func (c RenderCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	output := config.Render.Output
	if c.Output != "" {
		output = c.Output
	}

	if c.RenderDir {
		dir, err := renderdir.Create("")
		if err != nil {
			return fmt.Errorf("creating render directory: %w", err)
		}
		output = dir.GetFilePath(filepath.Base(output))
		if c.Config != "" {
			err = dir.CopyFile(c.Config)
		} else {
			err = tracerConfig.SaveToFile(config, dir.GetFilePath("scene.yaml"))
		}
		if err != nil {
			return fmt.Errorf("recording scene config: %w", err)
		}
	}

	scene, camera, err := config.Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("rendering %dx%d to %s", camera.Width, camera.Height, output)
	start := time.Now()

	opts := tracer.RenderOptions{Workers: config.Render.Workers}
	var fb *tracer.Framebuffer
	if c.Progress {
		err = interact.RunWithProgress(ctx, "Rendering "+filepath.Base(output), func(ctx context.Context, report interact.ReportFunc) error {
			opts.Progress = report
			var err error
			fb, err = tracer.Render(ctx, scene, camera, opts)
			return err
		})
	} else {
		fb, err = tracer.Render(ctx, scene, camera, opts)
	}
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	log.Printf("rendered in %s", time.Since(start).Round(time.Millisecond))

	if err := fb.Save(output); err != nil {
		return err
	}

	if config.Render.Thumbnail > 0 {
		if err := fb.SaveThumbnail(withSuffix(output, "thumb", ".jpg"), config.Render.Thumbnail); err != nil {
			return err
		}
	}

	if c.Report {
		fmt.Println(tracer.ComputeStats(fb))
		if err := tracer.PlotLuminanceHistogram(fb, withSuffix(output, "histogram", ".png"), histogramBins); err != nil {
			return err
		}
	}
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" type:"existingfile" help:"scene config to check"`
}

func (c ValidateCmd) Run() error {
	config, err := tracerConfig.LoadFromFile(c.Config, tracerConfig.LoadOptions{
		ResolvePaths: true,
	})
	if err != nil {
		return err
	}

	errs := config.CheckFiles(tracerConfig.NewPathResolver("."))
	if len(errs) == 0 {
		if err := config.LoadAndMerge(); err != nil {
			return err
		}
	}
	errs = append(errs, config.Validate()...)
	if len(errs) > 0 {
		fmt.Print(tracerConfig.FormatValidationErrors(errs))
		return fmt.Errorf("%s: %d problems", c.Config, len(errs))
	}
	fmt.Printf("%s: ok\n", c.Config)
	return nil
}

type TraceCmd struct {
	Config string `name:"config" short:"c" type:"existingfile" help:"scene config file"`
	X      int    `name:"x" required:"" help:"pixel column"`
	Y      int    `name:"y" required:"" help:"pixel row, 0 at the top"`
	Out    string `name:"out" short:"o" default:"raytree.json" help:"where to write the ray tree"`
}

func (c TraceCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	scene, camera, err := config.Build()
	if err != nil {
		return err
	}
	if c.X < 0 || c.X >= camera.Width || c.Y < 0 || c.Y >= camera.Height {
		return fmt.Errorf("pixel (%d, %d) is outside the %dx%d frame", c.X, c.Y, camera.Width, camera.Height)
	}

	tree := scene.TraceRayTree(camera.Position, camera.Direction(c.X, c.Y))
	if err := tracer.SaveRayTreeJSON(c.Out, tree); err != nil {
		return err
	}
	fmt.Printf("pixel (%d, %d): %d rays, radiance {%.3f, %.3f, %.3f}\n",
		c.X, c.Y, tree.Count(), tree.Radiance.R, tree.Radiance.G, tree.Radiance.B)
	return nil
}

type SectionCmd struct {
	Config string  `name:"config" short:"c" type:"existingfile" help:"scene config file"`
	Axis   string  `name:"axis" enum:"x,y,z" default:"x" help:"axis the section plane is perpendicular to"`
	Offset float64 `name:"offset" help:"position of the section plane along the axis"`
	Width  int     `name:"width" default:"800"`
	Height int     `name:"height" default:"600"`
	Pixel  []int   `name:"pixel" help:"overlay the ray tree of pixel x,y"`
	Out    string  `name:"out" short:"o" default:"section.png"`
}

func (c SectionCmd) Run() error {
	if len(c.Pixel) != 0 && len(c.Pixel) != 2 {
		return fmt.Errorf("--pixel takes x,y, got %v", c.Pixel)
	}
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	scene, camera, err := config.Build()
	if err != nil {
		return err
	}

	normal := map[string]pt.Vector{"x": tracer.V(1, 0, 0), "y": tracer.V(0, 1, 0), "z": tracer.V(0, 0, 1)}[c.Axis]
	view := tracer.SectionView{
		Scene:  scene,
		Plane:  tracer.NewSectionPlane(normal.MulScalar(c.Offset), normal),
		XSize:  c.Width,
		YSize:  c.Height,
		Camera: &camera.Position,
	}

	var tree *tracer.RayNode
	if len(c.Pixel) == 2 {
		x, y := c.Pixel[0], c.Pixel[1]
		if x < 0 || x >= camera.Width || y < 0 || y >= camera.Height {
			return fmt.Errorf("pixel (%d, %d) is outside the %dx%d frame", x, y, camera.Width, camera.Height)
		}
		tree = scene.TraceRayTree(camera.Position, camera.Direction(x, y))
	}

	if err := imaging.Save(view.Draw(tree), c.Out); err != nil {
		return fmt.Errorf("saving section: %w", err)
	}
	fmt.Printf("section at %s = %g written to %s\n", c.Axis, c.Offset, c.Out)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("raytrace"),
		kong.Description("Offline Whitted-style ray tracer"),
	)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
