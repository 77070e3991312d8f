package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the gallery command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render a value-ranked gallery of rental listings",
		Long: `gallery loads a JSON dataset of short-term rental listings, scores each of the
first 50 by rating per dollar and renders them as color-coded cards into a web page.

Settings come from GALLERY_* environment variables or the file named by
GALLERY_CONFIG; flags override both.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewImportCmd())
	return cmd
}
