package models

import (
	"encoding/json"
	"html/template"
	"math"
	"strconv"
	"strings"
)

// MaxListings is the size of the working set taken from the head of the dataset
const MaxListings = 50

// Text is a best-effort string field: JSON strings decode as-is, numbers and
// booleans keep their literal text, null stays empty
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Text(raw)
	return nil
}

// Listing is one record of the dataset as published (e.g. Inside Airbnb exports)
type Listing struct {
	Name           Text            `json:"name"`
	Description    Text            `json:"description"`
	Price          *Text           `json:"price"` // e.g. "$1,234.50"
	ReviewScore    json.RawMessage `json:"review_scores_rating"`
	Amenities      *Text           `json:"amenities"` // JSON-encoded list of strings
	PictureURL     Text            `json:"picture_url"`
	HostName       Text            `json:"host_name"`
	HostPictureURL Text            `json:"host_picture_url"`
}

// ScoredListing carries the values derived for one record during a render pass
type ScoredListing struct {
	Listing
	Position   int
	Rating     float64
	CleanPrice float64 // NaN when the price text has no numeric prefix
	ValScore   float64
	Normalized float64
	Hue        float64
}

// ValueReport summarizes the scores of a working set
type ValueReport struct {
	Count    int
	Scored   int
	MinScore float64
	MaxScore float64
	Best     *ScoredListing
}

// Card is the view model of one rendered listing card
type Card struct {
	ThumbnailURL string
	Alt          string
	PriceTag     string
	Color        template.CSS
	Tooltip      string
	Name         string
	Description  string
	Amenities    string
	HostPhotoURL string
	HostName     string
}

// FormatNumber prints a float the way a browser stringifies numbers:
// shortest round-trip digits, NaN and Infinity spelled out
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return strings.NewReplacer("e+0", "e+", "e-0", "e-").Replace(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
