package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/config"
	"github.com/olehluchkiv/svgpie/internal/dataset"
	"github.com/olehluchkiv/svgpie/internal/geometry"
	"github.com/olehluchkiv/svgpie/internal/logging"
	"github.com/olehluchkiv/svgpie/internal/render"
	"github.com/olehluchkiv/svgpie/internal/report"
	"github.com/olehluchkiv/svgpie/internal/server"
	"github.com/olehluchkiv/svgpie/internal/source"
)

func main() {
	// Flags may come before or after the data argument, e.g.
	// "svgpie data.json -output pie.svg".
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("svgpie", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML chart configuration file")
	dataFlag := fs.String("data", "", "payload file, URL, or - for stdin (alternative to positional argument)")
	output := fs.String("output", "", "write the SVG to file (- for stdout) instead of serving")
	table := fs.Bool("table", false, "print the segment table instead of serving")
	port := fs.Int("port", 8080, "HTTP server port")
	width := fs.Float64("width", 400, "container width")
	height := fs.Float64("height", 0, "container height (derived from width when 0)")
	selector := fs.String("selector", "#pie", "chart element id")
	noBrowser := fs.Bool("no-browser", false, "skip auto-opening browser")
	logFile := fs.String("log-file", "logs/svgpie.log", "log file path")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "json", "log format (json, text)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		input = *dataFlag
	}
	static := *output != "" || *table
	if static && input == "" {
		fmt.Fprintln(os.Stderr, "Usage: svgpie [flags] <payload>")
		fs.PrintDefaults()
		os.Exit(1)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(*logFile, level, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("configuration loaded", "config", cfg)

	if static {
		// Static output shows the settled chart, not the first frame of an
		// intro animation.
		cfg.InitialTransition = false
	}

	c, err := chart.New(*selector, cfg, logger, chart.WithSize(geometry.ContainerSize(*width, *height)))
	if err != nil {
		logger.Error("failed to create chart", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if input != "" {
		if err := loadData(ctx, c, input, logger); err != nil {
			logger.Error("failed to load data", "error", err)
			fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
			os.Exit(1)
		}
	}

	if static {
		if err := writeStatic(c, *output, *table, os.Stdout); err != nil {
			logger.Error("failed to write output", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *output != "" && *output != "-" {
			fmt.Printf("Wrote chart to %s\n", *output)
		}
		return
	}

	srv, err := server.New(c, render.Options{Titles: cfg.ShowTooltip}, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Starting server on http://localhost:%d\n", *port)
	if err := server.Serve(ctx, srv, *port, !*noBrowser, logger); err != nil {
		logger.Error("server error", "error", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadData(ctx context.Context, c *chart.Chart, input string, logger *slog.Logger) error {
	data, err := source.NewLoader(0, logger).Load(ctx, input)
	if err != nil {
		return err
	}
	p, err := dataset.DecodePayload(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}
	return c.Update(p)
}

// writeStatic renders the current frame as SVG to output ("-" is stdout)
// and, when table is set, prints the segment table to stdout.
func writeStatic(c *chart.Chart, output string, table bool, stdout io.Writer) error {
	scene := c.Frame()
	opts := render.Options{Titles: c.Config().ShowTooltip, Stroke: "#ffffff"}

	switch output {
	case "":
	case "-":
		if err := render.Write(stdout, scene, opts); err != nil {
			return err
		}
	default:
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		if err := render.Write(f, scene, opts); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", output, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", output, err)
		}
	}

	if table {
		return report.Write(stdout, scene)
	}
	return nil
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional payload argument).
// Flags that take a value (e.g., -output pie.svg) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-config": true, "-data": true, "-output": true, "-port": true,
		"-width": true, "-height": true, "-selector": true,
		"-log-file": true, "-log-level": true, "-log-format": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		// A lone "-" is the stdin payload, not a flag.
		if strings.HasPrefix(arg, "-") && arg != source.Stdin {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}
