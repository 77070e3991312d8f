package cli

import (
	"context"

	"github.com/spf13/cobra"

	"listing-gallery/config"
	"listing-gallery/storage"
	"listing-gallery/utils"
)

// NewImportCmd creates the import command, which loads a dataset file into
// PostgreSQL for "render --source postgres"
func NewImportCmd() *cobra.Command {
	var dataset, databaseURL string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a listings dataset into PostgreSQL",
		Example: `  gallery import --dataset airbnb_sf_listings_500.json
  GALLERY_DATABASE_URL=postgres://user:pass@db:5432/gallery?sslmode=disable gallery import`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			override(cmd.Flags().Changed("dataset"), &cfg.DatasetPath, dataset)
			override(cmd.Flags().Changed("database-url"), &cfg.DatabaseURL, databaseURL)

			logger := utils.NewLogger(cfg.LogLevel)
			n, err := runImport(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d listings from %s\n", n, cfg.DatasetPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset file path")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string")
	return cmd
}

func runImport(ctx context.Context, cfg *config.Config, logger *utils.Logger) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := storage.NewFileSource(cfg.DatasetPath).Fetch(ctx)
	if err != nil {
		return 0, err
	}

	store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Cannot connect to PostgreSQL: %v", err)
		return 0, err
	}
	defer store.Close()

	if err := store.CreateTable(ctx); err != nil {
		return 0, err
	}
	return store.Import(ctx, data)
}
