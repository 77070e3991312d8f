package services

import (
	"fmt"

	"listing-gallery/models"
	"listing-gallery/utils"
)

// MaxHue is the hue of the best value in the working set (green); the worst is 0 (red)
const MaxHue = 150

// InsightService derives value scores and their relative color for a working set
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Score computes clean price, value score, normalized score and hue for every
// listing. A listing without a price text fails the whole pass.
func (s *InsightService) Score(listings []models.Listing) ([]*models.ScoredListing, *models.ValueReport, error) {
	scored := make([]*models.ScoredListing, 0, len(listings))
	for i, l := range listings {
		if l.Price == nil {
			return nil, nil, fmt.Errorf("listing %d (%s): %w", i, l.Name, ErrMissingPrice)
		}
		price, ok := CleanPrice(string(*l.Price))
		if !ok {
			s.logger.Debug("Unparseable price %q for listing %d", *l.Price, i)
		}
		rating := ParseRating(l.ReviewScore)

		scored = append(scored, &models.ScoredListing{
			Listing:    l,
			Position:   i,
			Rating:     rating,
			CleanPrice: price,
			ValScore:   ValueScore(rating, price),
		})
	}

	report := Normalize(scored)
	s.logger.Debug("Scored %d listings (%d with a value score), range %.5f..%.5f",
		report.Count, report.Scored, report.MinScore, report.MaxScore)
	return scored, report, nil
}

// Normalize rescales every value score to [0, 1] across the set and maps it to
// a hue in [0, MaxHue]. When all scores are equal every listing gets 0.
func Normalize(scored []*models.ScoredListing) *models.ValueReport {
	report := &models.ValueReport{Count: len(scored)}
	if len(scored) == 0 {
		return report
	}

	report.MinScore = scored[0].ValScore
	report.MaxScore = scored[0].ValScore
	for _, l := range scored {
		if l.ValScore < report.MinScore {
			report.MinScore = l.ValScore
		}
		if l.ValScore > report.MaxScore {
			report.MaxScore = l.ValScore
		}
		if l.ValScore > 0 {
			report.Scored++
		}
		if report.Best == nil || l.ValScore > report.Best.ValScore {
			report.Best = l
		}
	}

	spread := report.MaxScore - report.MinScore
	for _, l := range scored {
		l.Normalized = 0
		if report.MaxScore != report.MinScore {
			l.Normalized = (l.ValScore - report.MinScore) / spread
		}
		l.Hue = l.Normalized * MaxHue
	}
	return report
}
