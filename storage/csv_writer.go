package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"listing-gallery/models"
	"listing-gallery/utils"
)

// CSVWriter handles writing the scored working set to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteScoredListings writes one row per scored listing
func (w *CSVWriter) WriteScoredListings(listings []*models.ScoredListing) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"position", "name", "price", "clean_price",
		"rating", "val_score", "normalized", "hue",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range listings {
		var price string
		if l.Price != nil {
			price = string(*l.Price)
		}
		row := []string{
			strconv.Itoa(l.Position),
			string(l.Name),
			price,
			models.FormatNumber(l.CleanPrice),
			models.FormatNumber(l.Rating),
			strconv.FormatFloat(l.ValScore, 'f', 5, 64),
			models.FormatNumber(l.Normalized),
			models.FormatNumber(l.Hue),
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", l.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Scored listings written to: %s (%d rows)", w.filePath, len(listings))
	return nil
}
