package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"listing-gallery/models"
)

// TopValueCount is how many listings the terminal report ranks
const TopValueCount = 5

// PrintValueReport writes a ranked value summary of the rendered working set
func PrintValueReport(w io.Writer, scored []*models.ScoredListing, report *models.ValueReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("LISTING VALUE GALLERY", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Listings Rendered       : %d\n", report.Count)
	fmt.Fprintf(w, "  With a Value Score      : %d\n", report.Scored)
	fmt.Fprintf(w, "  Lowest Value Score      : %.5f\n", report.MinScore)
	fmt.Fprintf(w, "  Highest Value Score     : %.5f\n", report.MaxScore)

	top := TopValue(scored, TopValueCount)
	if len(top) > 0 {
		fmt.Fprintf(w, "\n TOP %d BEST VALUE LISTINGS\n%s\n", len(top), thin)
		for i, l := range top {
			fmt.Fprintf(w, "  %d. %-35s %10s  %.5f\n", i+1, truncate(string(l.Name), 35), truncate(priceText(l), 10), l.ValScore)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

// TopValue returns up to n listings with a positive score, best first; ties keep dataset order
func TopValue(scored []*models.ScoredListing, n int) []*models.ScoredListing {
	ranked := make([]*models.ScoredListing, 0, len(scored))
	for _, l := range scored {
		if l.ValScore > 0 {
			ranked = append(ranked, l)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValScore > ranked[j].ValScore
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func priceText(l *models.ScoredListing) string {
	if l.Price == nil {
		return ""
	}
	return string(*l.Price)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
