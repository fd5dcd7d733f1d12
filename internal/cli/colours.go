package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
	"github.com/YeenieBeans/Tools-For-Artists/internal/image"
	"github.com/YeenieBeans/Tools-For-Artists/internal/render"
	"github.com/YeenieBeans/Tools-For-Artists/internal/seed"
	httputil "github.com/YeenieBeans/Tools-For-Artists/internal/util/http"
)

// Output formats of the colours command.
const (
	FormatBar   = "bar"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatHex   = "hex"
)

var outputFormats = []string{FormatBar, FormatTable, FormatJSON, FormatHex}

type coloursOptions struct {
	colours     int
	sensitivity colour.Sensitivity
	algorithm   string
	runs        int
	seedMode    string
	seedValue   int64
	format      string
	pngPath     string
	output      string
	width       int
	cache       bool
	cacheDir    string
}

func newColoursCmd(cfg Config) *cobra.Command {
	opts := &coloursOptions{}
	defaults := colour.DefaultExtractorConfig()

	cmd := &cobra.Command{
		Use:     "colours <image>",
		Aliases: []string{"colors"},
		Short:   "Show the colour distribution of an image",
		Long: `Analyse the colour distribution of an image.

The image is resampled to 600x400 and its pixels are clustered into the
requested number of colours. Clusters whose colours differ by no more than the
sensitivity threshold on every channel are merged, and the result is shown as
a proportional bar of colours ordered from most to least common.

Sensitivity thresholds: very-low=10, low=20, medium=30, high=40, very-high=50.

The image may be a file, a directory (a random image is picked), or an
HTTP(S) URL. Files ending in .xz are decompressed first.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF

Examples:
  # Five colours as a terminal bar
  arttools colours sketch.png

  # Twelve colours, merging aggressively, as a table
  arttools colours -c 12 -s very-high -f table sketch.png

  # JSON output plus a PNG of the bar
  arttools colours -f json --png bar.png sketch.png

  # Reproducible results across different copies of the same image
  arttools colours --seed-mode manual --seed 42 sketch.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColours(cmd, args[0], opts)
		},
	}

	opts.sensitivity = defaults.Sensitivity
	cmd.Flags().IntVarP(&opts.colours, "colours", "c", defaults.ColourCount,
		fmt.Sprintf("number of clusters (%d-%d)", colour.MinColours, colour.MaxColours))
	cmd.Flags().VarP(&opts.sensitivity, "sensitivity", "s",
		"colour merge sensitivity (very-low, low, medium, high, very-high)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", string(cfg.Algorithm),
		fmt.Sprintf("clustering algorithm (%s)", joinAlgorithms()))
	cmd.Flags().IntVar(&opts.runs, "runs", defaults.Runs, "number of clustering runs, the best is kept")
	cmd.Flags().StringVar(&opts.seedMode, "seed-mode", string(cfg.SeedMode),
		"seed mode (content, filepath, manual, random)")
	cmd.Flags().Int64Var(&opts.seedValue, "seed", 0, "seed value for manual seed mode")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatBar,
		fmt.Sprintf("output format (%s)", strings.Join(outputFormats, ", ")))
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "also write the bar as a PNG image")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "bar width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "keep downloaded images and reuse them")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "image cache directory (implies --cache)")

	return cmd
}

func joinAlgorithms() string {
	names := make([]string, 0, len(colour.ValidAlgorithms()))
	for _, a := range colour.ValidAlgorithms() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func runColours(cmd *cobra.Command, path string, opts *coloursOptions) error {
	logger := newLogger(cmd)

	config := colour.ExtractorConfig{
		Algorithm:   colour.Algorithm(opts.algorithm),
		ColourCount: opts.colours,
		Sensitivity: opts.sensitivity,
		Runs:        opts.runs,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !slices.Contains(outputFormats, opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(outputFormats, ", "))
	}

	seedConfig, err := seedConfigFor(cmd, opts)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	resolved, err := image.ResolveImagePath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve image path: %w", err)
	}
	if resolved != path {
		logger.Info("selected image from directory", "path", resolved)
	}

	logger.Debug("loading image", "path", resolved)
	loader := image.NewSmartLoader(httputil.FetchOptions{})
	if opts.cache || opts.cacheDir != "" {
		cache, err := image.NewCache(opts.cacheDir)
		if err != nil {
			return err
		}
		loader.WithCache(cache)
		logger.Debug("using image cache", "dir", cache.Dir())
	}
	img, err := loader.Load(cmd.Context(), resolved)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	seedValue, err := seed.Calculate(img, resolved, seedConfig)
	if err != nil {
		return fmt.Errorf("failed to calculate seed: %w", err)
	}
	logger.Debug("seed calculated", "mode", seedConfig.Mode, "seed", seedValue)

	raster, err := image.FromImage(img)
	if err != nil {
		return fmt.Errorf("failed to read pixels: %w", err)
	}

	clusterer, err := colour.NewClusterer(config.Algorithm, seedValue, config.Runs)
	if err != nil {
		return err
	}
	analyzer := colour.NewAnalyzer(
		colour.WithClusterer(config.Algorithm, clusterer),
		colour.WithLogger(logger.Named("colour")),
	)

	dist, err := analyzer.Analyze(cmd.Context(), raster, config.ColourCount, config.Sensitivity)
	if err != nil {
		return fmt.Errorf("failed to analyse colours: %w", err)
	}
	logger.Debug("analysis complete", "colours", dist.Len())

	segments := render.Layout(dist.Shares)

	if opts.pngPath != "" {
		if err := writePNG(opts.pngPath, segments); err != nil {
			return err
		}
		logger.Info("wrote bar image", "path", opts.pngPath)
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output) // #nosec G304 - User-specified output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	output, err := formatDistribution(dist, segments, opts, out)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// seedConfigFor resolves the seed mode. An explicit --seed without
// --seed-mode selects manual mode.
func seedConfigFor(cmd *cobra.Command, opts *coloursOptions) (seed.Config, error) {
	mode, err := seed.ParseMode(opts.seedMode)
	if err != nil {
		return seed.Config{}, fmt.Errorf("invalid --seed-mode: %w", err)
	}

	seedSet := cmd.Flags().Changed("seed")
	if seedSet && !cmd.Flags().Changed("seed-mode") {
		mode = seed.ModeManual
	}

	cfg := seed.Config{Mode: mode}
	if seedSet {
		v := opts.seedValue
		cfg.Value = &v
	}
	if mode == seed.ModeManual && cfg.Value == nil {
		return seed.Config{}, fmt.Errorf("--seed is required with --seed-mode manual")
	}
	return cfg, nil
}

func formatDistribution(dist *colour.Distribution, segments []render.Segment, opts *coloursOptions, out io.Writer) (string, error) {
	switch opts.format {
	case FormatBar:
		term := terminalFor(out)
		if opts.width > 0 {
			term.Width = opts.width
		}
		return term.Render(segments), nil
	case FormatTable:
		return render.ShareTable(dist.Shares), nil
	case FormatJSON:
		data, err := dist.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatHex:
		var b strings.Builder
		for _, s := range dist.Shares {
			b.WriteString(s.Hex())
			b.WriteString("\n")
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", opts.format)
	}
}

// terminalFor enables colour only when out is an interactive terminal.
func terminalFor(out io.Writer) *render.Terminal {
	if f, ok := out.(*os.File); ok {
		return render.NewTerminal(f)
	}
	return &render.Terminal{Width: render.DefaultWidth}
}

func writePNG(path string, segments []render.Segment) error {
	var buf bytes.Buffer
	if err := render.PNG(&buf, segments, render.DefaultPNGWidth, render.DefaultPNGHeight); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { // #nosec G306 - image output is not sensitive
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
