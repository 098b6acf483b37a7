package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ironsheep/pixel-art-mcp/internal/config"
	"github.com/ironsheep/pixel-art-mcp/internal/imaging"
	"github.com/ironsheep/pixel-art-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("pixel-art-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	}
}

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	app := cli.NewApp()

	app.Name = "pixel-art-mcp"
	app.Usage = "Convert images to pixel art, as an MCP server or from the command line"
	app.Version = Version

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{config.EnvLogLevel},
			Value:   "info",
			Usage:   "log level, debug enables verbose logging",
		},
		&cli.IntFlag{
			Name:    "max-upload-mb",
			EnvVars: []string{config.EnvMaxUploadMB},
			Value:   config.Default().MaxUploadMB,
			Usage:   "largest accepted source file in MiB, 0 for no limit",
		},
	}

	app.Action = serve
	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "Run the MCP server on stdin/stdout",
			Action: serve,
		},
		{
			Name:      "convert",
			Usage:     "Pixelate an image file",
			ArgsUsage: "INPUT OUTPUT",
			Description: "Writes OUTPUT as SVG when it ends in .svg and as PNG otherwise.\n" +
				"   The output keeps only whole blocks and can be smaller than INPUT.",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "pixel-size",
					Aliases: []string{"s"},
					Usage:   "block edge length in source pixels",
				},
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Value:   "full",
					Usage:   "color mode, see the modes command",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "override the color count of the N-color modes",
				},
				&cli.StringSliceFlag{
					Name:  "palette",
					Usage: "hex color for the palette mode, repeatable",
				},
				&cli.StringFlag{
					Name:  "quantizer",
					Value: "mediancut",
					Usage: "palette selection: mediancut, kmeans or dominant",
				},
				&cli.BoolFlag{
					Name:  "keep-alpha",
					Usage: "pixelate transparency instead of dropping it",
				},
				&cli.BoolFlag{
					Name:  "remove-background",
					Usage: "make the corner color transparent",
				},
				&cli.IntFlag{
					Name:  "tolerance",
					Value: -1,
					Usage: "background color distance tolerance (default from config)",
				},
				&cli.BoolFlag{
					Name:  "preview",
					Usage: "produce a low-resolution preview instead",
				},
			},
			Action: convert,
		},
		{
			Name:   "modes",
			Usage:  "List the supported color modes",
			Action: modes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the environment and applies global flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = strings.ToLower(c.String("log-level"))
	cfg.MaxUploadMB = c.Int("max-upload-mb")
	return cfg, cfg.Validate()
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if cfg.Debug() {
		log.Printf("Pixel Art MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg, nil)
	srv.Version = Version
	if err := srv.Run(); err != nil {
		return cli.NewExitError(fmt.Sprintf("Server error: %v", err), 1)
	}
	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := convertParams(c, cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	cache := imaging.NewImageCache(cfg.MaxUploadBytes(), cfg.Extensions)
	src, err := cache.Load(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var result image.Image
	blockSize := p.PixelSize
	if c.Bool("preview") {
		result, err = imaging.Preview(src, cfg.PreviewWidth, p)
		blockSize = imaging.PreviewPixelSize(src.Bounds(), cfg.PreviewWidth, p.PixelSize)
	} else {
		result, err = imaging.Pixelate(src, p)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(out), ".svg") {
		var doc string
		doc, err = imaging.ToVectorDocument(result, blockSize)
		data = []byte(doc)
	} else {
		data, err = imaging.ToRasterBytes(result)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return cli.NewExitError(err, 1)
	}
	if cfg.Debug() {
		b := result.Bounds()
		log.Printf("Wrote %s (%dx%d, %d bytes)", out, b.Dx(), b.Dy(), len(data))
	}
	return nil
}

// convertParams builds pipeline parameters from the convert flags.
func convertParams(c *cli.Context, cfg config.Config) (imaging.Params, error) {
	size := c.Int("pixel-size")
	if size == 0 {
		size = cfg.PixelSizeDefault
	}
	if err := cfg.CheckPixelSize(size); err != nil {
		return imaging.Params{}, err
	}

	mode, ok := imaging.ParseColorMode(c.String("mode"))
	if !ok {
		log.Printf("Unknown color mode %q, using full color", c.String("mode"))
	}
	numColors := mode.DefaultColors()
	if n := c.Int("colors"); n > 0 {
		numColors = n
	}

	tolerance := cfg.BgTolerance
	if c.Int("tolerance") >= 0 {
		tolerance = c.Int("tolerance")
	}

	var palette imaging.Palette
	if hex := c.StringSlice("palette"); len(hex) > 0 {
		var err error
		if palette, err = imaging.ParsePalette(hex); err != nil {
			return imaging.Params{}, err
		}
	}

	p := imaging.Params{
		PixelSize:        size,
		Mode:             mode,
		NumColors:        numColors,
		KeepAlpha:        c.Bool("keep-alpha"),
		RemoveBackground: c.Bool("remove-background"),
		BgTolerance:      tolerance,
		Palette:          palette,
		Quantizer:        imaging.ParseQuantizerKind(c.String("quantizer")),
	}
	return p, p.Validate()
}

func modes(c *cli.Context) error {
	for _, m := range imaging.ColorModes() {
		if m.Colors > 0 {
			fmt.Printf("%-10s %s (%d colors)\n", m.Name, m.Label, m.Colors)
		} else {
			fmt.Printf("%-10s %s\n", m.Name, m.Label)
		}
	}
	return nil
}
