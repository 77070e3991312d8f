package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/spf13/cobra"

	"listing-gallery/config"
	"listing-gallery/pipeline"
	"listing-gallery/render"
	"listing-gallery/services"
	"listing-gallery/storage"
	"listing-gallery/surface"
	"listing-gallery/utils"
)

// NewRenderCmd creates the render command.
//
// One render pass: fetch the dataset, score the first 50 listings and replace
// the page container with their cards, or with a failure message.
func NewRenderCmd() *cobra.Command {
	var (
		source, dataset, datasetURL string
		target, out, pageURL        string
		screenshot, csvPath         string
		quiet                       bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the listing gallery page",
		Example: `  # Render output/index.html from the default dataset
  gallery render

  # Render a downloaded dataset and keep a scored CSV
  gallery render --source http --url http://localhost:8000/listings.json --csv output/scored.csv

  # Swap the cards into the page in headless Chrome and take a screenshot
  gallery render --surface chrome --screenshot output/gallery.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			override(flags.Changed("source"), &cfg.Source, source)
			override(flags.Changed("dataset"), &cfg.DatasetPath, dataset)
			override(flags.Changed("url"), &cfg.DatasetURL, datasetURL)
			override(flags.Changed("surface"), &cfg.Surface, target)
			override(flags.Changed("out"), &cfg.OutputPath, out)
			override(flags.Changed("page-url"), &cfg.PageURL, pageURL)
			override(flags.Changed("screenshot"), &cfg.ScreenshotPath, screenshot)
			override(flags.Changed("csv"), &cfg.CSVFilePath, csvPath)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := utils.NewLogger(cfg.LogLevel)
			var report io.Writer = cmd.OutOrStdout()
			if quiet {
				report = io.Discard
			}
			return runRender(cmd.Context(), cfg, logger, report)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "dataset source: file, http or postgres")
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset file path")
	cmd.Flags().StringVar(&datasetURL, "url", "", "dataset URL for --source http")
	cmd.Flags().StringVar(&target, "surface", "", "display surface: page or chrome")
	cmd.Flags().StringVar(&out, "out", "", "page file to write")
	cmd.Flags().StringVar(&pageURL, "page-url", "", "page opened by --surface chrome (default: the --out page)")
	cmd.Flags().StringVar(&screenshot, "screenshot", "", "PNG screenshot path for --surface chrome")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export the scored listings to this CSV file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the value report")

	return cmd
}

func override(changed bool, dst *string, val string) {
	if changed {
		*dst = val
	}
}

func runRender(ctx context.Context, cfg *config.Config, logger *utils.Logger, report io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	src := newSource(cfg, logger)
	target, err := newSurface(ctx, cfg, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(src, target, render.NewRenderer(cfg.PlaceholderImage, logger), logger)
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.CSVFilePath != "" {
		if err := storage.NewCSVWriter(cfg.CSVFilePath, logger).WriteScoredListings(result.Listings); err != nil {
			// Non-fatal: the page is already rendered
			logger.Error("Failed to write CSV: %v", err)
		}
	}

	services.PrintValueReport(report, result.Listings, result.Report)
	return nil
}

func newSource(cfg *config.Config, logger *utils.Logger) storage.Source {
	var src storage.Source
	switch cfg.Source {
	case "http":
		src = storage.NewHTTPSource(cfg.DatasetURL, &http.Client{}, logger)
	case "postgres":
		src = storage.NewPostgresSource(cfg.DatabaseURL, logger)
	default:
		src = storage.NewFileSource(cfg.DatasetPath)
	}
	if cfg.FetchTimeout > 0 {
		src = &timeoutSource{Source: src, timeout: cfg.FetchTimeout}
	}
	return src
}

// newSurface builds the display target. Without a page URL the chrome surface
// writes a page shell to the output path, renders it in the browser and writes
// the resulting document back over it.
func newSurface(ctx context.Context, cfg *config.Config, logger *utils.Logger) (surface.Surface, error) {
	page := surface.NewPage(cfg.OutputPath, cfg.ContainerID, logger)
	if cfg.Surface != "chrome" {
		return page, nil
	}

	opts := surface.ChromeOptions{
		PageURL:        cfg.PageURL,
		ContainerID:    cfg.ContainerID,
		ScreenshotPath: cfg.ScreenshotPath,
	}
	if opts.PageURL == "" {
		abs, err := filepath.Abs(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("resolve output path: %w", err)
		}
		if err := page.ReplaceText(ctx, "Loading listings..."); err != nil {
			return nil, err
		}
		opts.PageURL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		opts.SnapshotPath = cfg.OutputPath
	}
	return surface.NewChrome(opts, logger), nil
}
