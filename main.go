package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-tile-raytracer/pkg/config"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/loaders"
	"github.com/df07/go-tile-raytracer/pkg/log"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

var logger = log.New("tracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// -v is taken by the verbosity flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-tile-raytracer"
	app.Usage = "render sphere scenes with a tile-parallel CPU ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to an image file",
			Description: `
Render one of the built-in scenes. Settings come from the defaults, then the
optional YAML file given with --config, then any flags given on the command line.

The output format is chosen by extension: .png, .jpg, .jpeg, .bmp, .tif or .tiff.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML settings file",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: config.Default().Scene,
					Usage: "scene to render (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: config.Default().Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: config.Default().Height,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: config.Default().Output,
					Usage: "image filename for the rendered frame",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: config.Default().Seed,
					Usage: "seed for the sampling and scene generators",
				},
				cli.IntFlag{
					Name:  "reserved-cores",
					Usage: "number of CPUs to leave idle",
				},
				cli.StringFlag{
					Name:  "texture",
					Usage: "image used by the textures scene",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: int(renderer.DefaultPipelineConfig().MaxTraceDepth),
					Usage: "maximum ray bounces",
				},
				cli.IntFlag{
					Name:  "ss",
					Value: int(renderer.DefaultPipelineConfig().SuperSampleFactor),
					Usage: "super sampling factor; each pixel takes ss*ss samples",
				},
				cli.IntFlag{
					Name:  "dof-samples",
					Value: int(renderer.DefaultPipelineConfig().DepthOfFieldSampleCount),
					Usage: "lens samples per sub-pixel sample",
				},
				cli.IntFlag{
					Name:  "cluster-size",
					Value: int(renderer.DefaultPipelineConfig().ClusterSize),
					Usage: "side of the square pixel blocks handed to workers",
				},
			},
			Action: renderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: listScenes,
		},
	}

	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	world, camera, err := createScene(settings)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(world, camera, settings.Pipeline, renderer.Options{
		Seed:          settings.Seed,
		ReservedCores: settings.ReservedCores,
		Logger:        log.New("renderer"),
	})
	if err != nil {
		return err
	}
	defer r.Close()

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q at %dx%d", settings.Scene, settings.Width, settings.Height)
	fb, stats, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	if err := loaders.StoreImage(settings.Output, fb.Width, fb.Height, 3, fb.Float32Pixels(), true); err != nil {
		return fmt.Errorf("saving %s: %w", settings.Output, err)
	}

	displayRenderStats(stats)
	logger.Noticef("render saved as %s", settings.Output)
	return nil
}

// loadSettings layers the settings file and explicitly given flags over the defaults
func loadSettings(ctx *cli.Context) (config.Settings, error) {
	settings := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Settings{}, err
		}
		settings = loaded
	}

	if ctx.IsSet("scene") {
		settings.Scene = ctx.String("scene")
	}
	if ctx.IsSet("width") {
		settings.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		settings.Height = ctx.Int("height")
	}
	if ctx.IsSet("out") {
		settings.Output = ctx.String("out")
	}
	if ctx.IsSet("seed") {
		settings.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("reserved-cores") {
		settings.ReservedCores = ctx.Int("reserved-cores")
	}
	if ctx.IsSet("texture") {
		settings.TexturePath = ctx.String("texture")
	}

	pipelineFlags := []struct {
		name   string
		target *uint8
	}{
		{"depth", &settings.Pipeline.MaxTraceDepth},
		{"ss", &settings.Pipeline.SuperSampleFactor},
		{"dof-samples", &settings.Pipeline.DepthOfFieldSampleCount},
		{"cluster-size", &settings.Pipeline.ClusterSize},
	}
	for _, f := range pipelineFlags {
		if !ctx.IsSet(f.name) {
			continue
		}
		value := ctx.Int(f.name)
		if value < 0 || value > 255 {
			return config.Settings{}, fmt.Errorf("%w: --%s must be in [0, 255], got %d", config.ErrInvalidSettings, f.name, value)
		}
		*f.target = uint8(value)
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// createScene builds the named preset at the configured resolution
func createScene(settings config.Settings) (*scene.Scene, *geometry.Camera, error) {
	preset, err := scene.Lookup(settings.Scene)
	if err != nil {
		return nil, nil, err
	}

	return preset.Build(scene.Options{
		Width:       settings.Width,
		Height:      settings.Height,
		Seed:        settings.Seed,
		TexturePath: settings.TexturePath,
		Logger:      log.New("scene"),
	})
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Resolution", "Clusters", "Workers", "Samples/px", "Rays", "Render time"})
	table.Append([]string{
		stats.PassID.String(),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Clusters),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.RaysTraced),
		stats.Duration.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "RAYS/SEC", fmt.Sprintf("%.0f", stats.RaysPerSecond())})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}

// List the built-in scenes.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, p := range scene.Presets() {
		table.Append([]string{p.Name, p.Description})
	}

	table.Render()
	return nil
}
