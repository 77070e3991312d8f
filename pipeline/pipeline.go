package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"listing-gallery/models"
	"listing-gallery/render"
	"listing-gallery/services"
	"listing-gallery/storage"
	"listing-gallery/surface"
	"listing-gallery/utils"
)

// FailureMessage replaces the container content when a render pass fails
const FailureMessage = "Failed to load listings. Please ensure the JSON file is available."

// Stage names a step of the render pass
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageDecode    Stage = "decode"
	StageTransform Stage = "transform"
	StageRender    Stage = "render"
	StageSwap      Stage = "swap"
)

// StageError is a fatal failure of one stage
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful render pass
type Result struct {
	Listings []*models.ScoredListing
	Cards    []models.Card
	Report   *models.ValueReport
}

// Pipeline runs fetch → decode → transform → render → swap once per call
type Pipeline struct {
	source   storage.Source
	surface  surface.Surface
	insights *services.InsightService
	renderer *render.Renderer
	logger   *utils.Logger
}

// New creates a Pipeline
func New(source storage.Source, target surface.Surface, renderer *render.Renderer, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		source:   source,
		surface:  target,
		insights: services.NewInsightService(logger),
		renderer: renderer,
		logger:   logger,
	}
}

// Run performs one render pass. Any stage failure stops the pass, swaps in
// FailureMessage and is returned as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result, err := p.run(ctx)
	if err == nil {
		return result, nil
	}

	p.logger.Error("Error loading listings: %v", err)
	if swapErr := p.surface.ReplaceText(ctx, FailureMessage); swapErr != nil {
		p.logger.Error("Failed to show failure message: %v", swapErr)
	}
	return nil, err
}

func (p *Pipeline) run(ctx context.Context) (result *Result, err error) {
	stage := StageFetch
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	p.logger.Info("Loading listings from %s", p.source.Name())
	data, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	stage = StageDecode
	records, err := Decode(data)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	stage = StageTransform
	listings, err := Transform(records)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	scored, report, err := p.insights.Score(listings)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	stage = StageRender
	cards := p.renderer.Cards(scored)
	var fragment template.HTML
	fragment, err = p.renderer.Fragment(cards)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	stage = StageSwap
	if err := p.surface.Replace(ctx, fragment); err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	p.logger.Info("Rendered %d listings", len(cards))
	return &Result{Listings: scored, Cards: cards, Report: report}, nil
}

// Decode splits the dataset and keeps the first MaxListings records in order
func Decode(data []byte) ([]json.RawMessage, error) {
	records, err := storage.DecodeDataset(data)
	if err != nil {
		return nil, err
	}
	return Truncate(records, models.MaxListings), nil
}

// Truncate keeps at most n records from the head of the list
func Truncate[T any](records []T, n int) []T {
	if len(records) > n {
		return records[:n]
	}
	return records
}

// Transform decodes every record of the working set
func Transform(records []json.RawMessage) ([]models.Listing, error) {
	listings := make([]models.Listing, len(records))
	for i, rec := range records {
		if err := json.Unmarshal(rec, &listings[i]); err != nil {
			return nil, fmt.Errorf("listing %d: %w", i, err)
		}
	}
	return listings, nil
}
