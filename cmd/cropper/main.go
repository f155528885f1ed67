package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"canvas-cropper/internal/batch"
	"canvas-cropper/internal/config"
	"canvas-cropper/internal/imageio"
	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/raster"
	"canvas-cropper/internal/transform"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/spatial/r2"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	in := flag.String("in", "", "Image to place on the canvas")
	outputDir := flag.String("output", "", "Output directory (default: current directory)")
	name := flag.String("name", "", "Output file name (default: cropped_image_<timestamp>.<ext>)")
	device := flag.String("device", "", "Device class: desktop or mobile")
	width := flag.Int("width", 0, "Canvas width (default: device default)")
	height := flag.Int("height", 0, "Canvas height (default: device default)")
	format := flag.String("format", "", "Export format: png or webp (default: png)")
	quality := flag.String("quality", "", "Resampling: bilinear or nearest")
	ops := flag.String("ops", "", "Edit script, e.g. \"pan:10,-4;rotate:90;wheel:-1\"")
	recipe := flag.String("recipe", "", "JSON file with a list of edit ops, applied before -ops")
	probe := flag.String("probe", "", "Report the source pixel under display point x,y instead of exporting")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required.")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		Device:    *device,
		Width:     *width,
		Height:    *height,
		OutputDir: *outputDir,
		Format:    *format,
		LogLevel:  *logLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.Level())

	q, err := raster.ParseQuality(*quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var edits []batch.Op
	if *recipe != "" {
		data, err := os.ReadFile(*recipe)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading recipe: %v\n", err)
			os.Exit(1)
		}
		if err := sonic.Unmarshal(data, &edits); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing recipe: %v\n", err)
			os.Exit(1)
		}
	}
	scripted, err := batch.ParseScript(*ops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	edits = append(edits, scripted...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	handle, err := imageio.LoadFile(ctx, *in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	eng := transform.New(transform.Options{
		Device:     cfg.DeviceClass(),
		Resolution: cfg.Resolution(),
		MinScale:   cfg.MinScale,
		ZoomStep:   cfg.ZoomStep,
		Quality:    q,
	})
	eng.SetImage(handle)

	if err := batch.Apply(eng, edits); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := eng.State()
	log.Info().
		Str("canvas", eng.Resolution().String()).
		Float64("scale", st.Scale).
		Float64("rotation", st.Rotation).
		Float64("tx", st.TranslateX).
		Float64("ty", st.TranslateY).
		Msg("placement")

	if *probe != "" {
		p, err := parsePoint(*probe)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -probe: %v\n", err)
			os.Exit(1)
		}
		src, inside := eng.HitTest(p)
		c, _ := eng.ColorAt(p)
		fmt.Printf("display (%g, %g) -> source (%.2f, %.2f) inside=%t rgba=(%d, %d, %d, %d)\n",
			p.X, p.Y, src.X, src.Y, inside, c.R, c.G, c.B, c.A)
		return
	}

	out := *name
	if out == "" {
		out = imageio.ExportName(time.Now(), cfg.Offset(), cfg.ExportFormat())
	}
	path, err := imageio.WriteFile(cfg.OutputDir, out, eng.ExportRaster(), cfg.ExportFormat())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func parsePoint(s string) (r2.Vec, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return r2.Vec{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return r2.Vec{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{X: x, Y: y}, nil
}
