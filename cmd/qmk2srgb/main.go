package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Polyhaze/qmk2srgb/internal/api"
	"github.com/Polyhaze/qmk2srgb/internal/config"
	"github.com/Polyhaze/qmk2srgb/internal/generator"
	"github.com/Polyhaze/qmk2srgb/internal/models"
	"github.com/Polyhaze/qmk2srgb/internal/parser"
	"github.com/Polyhaze/qmk2srgb/internal/plugin"
	"github.com/Polyhaze/qmk2srgb/internal/storage"
)

// Version info (set during build)
var Version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "serve" {
		runServe(args[1:])
		return
	}
	runConvert(args)
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("qmk2srgb", flag.ExitOnError)
	outDir := fs.String("outdir", "", "output directory for generated plugins (overrides config)")
	matrixSizing := fs.Bool("matrix-sizing", false, "size the grid from key matrix rows/columns instead of LED coordinates")
	configPath := fs.String("config", "qmk2srgb.yaml", "path to the configuration file")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: qmk2srgb [flags] <info.json globs...>\n")
		fmt.Fprintf(fs.Output(), "       qmk2srgb serve [flags]\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *showVersion {
		fmt.Printf("qmk2srgb v%s\n", Version)
		return
	}

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Directory = *outDir
	}

	opts := generator.Options{MatrixSizing: cfg.Generator.MatrixSizing}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "matrix-sizing" {
			opts.MatrixSizing = *matrixSizing
		}
	})

	store, err := storage.NewLocalStore(cfg.Output.Directory)
	if err != nil {
		fmt.Printf("Failed to initialize output directory: %v\n", err)
		os.Exit(1)
	}

	converted, failed := convertGlobs(fs.Args(), store, opts, cfg.Output.Directory)

	fmt.Printf("Done: %d converted, %d failed\n", converted, failed)
	if converted == 0 && failed > 0 {
		os.Exit(1)
	}
}

// convertGlobs expands each pattern and converts every matched file. One
// input failing must not abort its siblings: failures are reported and
// counted, and the loop moves on.
func convertGlobs(patterns []string, store storage.Store, opts generator.Options, outDir string) (converted, failed int) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Printf("Invalid glob %q: %v\n", pattern, err)
			failed++
			continue
		}
		if len(matches) == 0 {
			fmt.Printf("No files match %q\n", pattern)
		}
		for _, path := range matches {
			info, err := convertFile(path, store, opts)
			if err != nil {
				fmt.Printf("Failed to convert %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("Converted %s -> %s\n", path, filepath.Join(outDir, info.FileName))
			converted++
		}
	}
	return converted, failed
}

func convertFile(path string, store storage.Store, opts generator.Options) (*models.PluginInfo, error) {
	doc, err := parser.ParseInfo(path)
	if err != nil {
		return nil, err
	}

	data, err := generator.Generate(doc, opts)
	if err != nil {
		return nil, err
	}

	content := plugin.Render(data)
	return store.Save(plugin.FileName(data.BoardName), data.BoardName, []byte(content))
}

func runServe(args []string) {
	fs := flag.NewFlagSet("qmk2srgb serve", flag.ExitOnError)
	configPath := fs.String("config", "qmk2srgb.yaml", "path to the configuration file")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStore(cfg.Output.Directory)
	if err != nil {
		fmt.Printf("Failed to initialize output directory: %v\n", err)
		os.Exit(1)
	}

	h := api.NewHandler(store, cfg.Generator.MatrixSizing, Version)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Server.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	api.RegisterRoutes(e, h)

	addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port)
	fmt.Printf("qmk2srgb v%s serving on %s (plugins in %s)\n", Version, addr, cfg.Output.Directory)
	if err := e.Start(addr); err != nil {
		fmt.Printf("Server stopped: %v\n", err)
		os.Exit(1)
	}
}
