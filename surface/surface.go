package surface

import (
	"context"
	"html/template"
)

// Surface is a page whose listings container can be replaced as a whole
type Surface interface {
	// Replace swaps the container content for rendered markup
	Replace(ctx context.Context, fragment template.HTML) error
	// ReplaceText swaps the container content for plain text
	ReplaceText(ctx context.Context, text string) error
}

// Memory keeps the last swapped content, for tests and dry runs
type Memory struct {
	HTML  template.HTML
	Text  string
	Swaps int
}

func (m *Memory) Replace(_ context.Context, fragment template.HTML) error {
	m.HTML, m.Text = fragment, ""
	m.Swaps++
	return nil
}

func (m *Memory) ReplaceText(_ context.Context, text string) error {
	m.HTML, m.Text = "", text
	m.Swaps++
	return nil
}
