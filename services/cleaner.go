package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"listing-gallery/models"
)

// NoAmenities replaces an amenities list that cannot be decoded
const NoAmenities = "No amenities"

var (
	ErrMissingPrice     = errors.New("listing has no price")
	ErrAmenitiesNotList = errors.New("amenities is not a JSON list")
)

var (
	currencyStrip = strings.NewReplacer("$", "", ",", "")
	// leading decimal number, parseFloat style
	numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// CleanPrice strips "$" and "," from a price like "$1,234.50" and parses the
// leading number. ok is false and the value NaN when no number is found.
func CleanPrice(raw string) (value float64, ok bool) {
	return parseLeadingFloat(currencyStrip.Replace(raw))
}

func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v\u00a0\ufeff")
	m := numberPrefix.FindString(s)
	if m == "" {
		return math.NaN(), false
	}
	if strings.HasSuffix(m, "Infinity") {
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range literals overflow to ±Inf, which ParseFloat also returns
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return math.NaN(), false
	}
	return v, true
}

// ParseRating coerces review_scores_rating to a number. Absent, null, false,
// empty and non-numeric values count as 0.
func ParseRating(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch r := v.(type) {
	case float64:
		return r
	case bool:
		if r {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(r)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ValueScore is rating per unit of price, 0 unless both are strictly positive
func ValueScore(rating, price float64) float64 {
	if price > 0 && rating > 0 {
		score := rating / price
		if math.IsInf(score, 0) || math.IsNaN(score) {
			return 0
		}
		return score
	}
	return 0
}

// SummarizeAmenities decodes a JSON-encoded amenities list and keeps the first
// three entries, with a trailing "..." only when more than four were listed.
// On failure it returns NoAmenities together with the decode error.
func SummarizeAmenities(raw *models.Text) (string, error) {
	if raw == nil {
		return NoAmenities, fmt.Errorf("decode amenities: %w", ErrAmenitiesNotList)
	}
	var items []interface{}
	if err := json.Unmarshal([]byte(*raw), &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return NoAmenities, fmt.Errorf("decode amenities: %w", ErrAmenitiesNotList)
		}
		return NoAmenities, fmt.Errorf("decode amenities: %w", err)
	}
	if items == nil {
		// literal null
		return NoAmenities, fmt.Errorf("decode amenities: %w", ErrAmenitiesNotList)
	}

	shown := items
	if len(shown) > 3 {
		shown = shown[:3]
	}
	parts := make([]string, len(shown))
	for i, item := range shown {
		parts[i] = amenityText(item)
	}

	summary := strings.Join(parts, ", ")
	if len(items) > 4 {
		summary += "..."
	}
	return summary, nil
}

func amenityText(item interface{}) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return models.FormatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
