package surface

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"listing-gallery/utils"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f7f7f7; color: #222; margin: 0; padding: 1.5rem; }
h1 { font-size: 1.5rem; margin: 0 0 1rem; }
#{{.ContainerID}} { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1rem; }
.card { position: relative; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 2px 6px rgba(0,0,0,.1); }
.thumbnail { width: 100%; height: 180px; object-fit: cover; display: block; background: #ddd; }
.price-tag { position: absolute; top: .75rem; left: .75rem; background: #fff; border-radius: 6px; padding: .2rem .5rem; font-weight: 700; }
.value-indicator { position: absolute; top: .6rem; right: .75rem; font-size: 1.6rem; font-weight: 800; cursor: help; text-shadow: 0 0 3px #fff; }
.card-content { padding: .75rem 1rem 1rem; }
.listing-name { font-weight: 700; margin-bottom: .4rem; }
.description { font-size: .85rem; color: #555; white-space: pre-line; max-height: 6.5em; overflow: hidden; }
.amenities { font-size: .8rem; margin-top: .5rem; }
.host-info { display: flex; align-items: center; gap: .5rem; margin-top: .75rem; }
.host-photo { width: 32px; height: 32px; border-radius: 50%; object-fit: cover; }
.host-name { font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="{{.ContainerID}}">{{if .Text}}{{.Text}}{{else}}{{.Content}}{{end}}</div>
</body>
</html>
`))

// Page writes a complete HTML document whose container holds the swapped content
type Page struct {
	path        string
	title       string
	containerID string
	logger      *utils.Logger
}

// NewPage creates a Page surface written to path
func NewPage(path, containerID string, logger *utils.Logger) *Page {
	return &Page{path: path, title: "Listings", containerID: containerID, logger: logger}
}

// Path is where the page is written
func (p *Page) Path() string {
	return p.path
}

func (p *Page) Replace(_ context.Context, fragment template.HTML) error {
	return p.write(fragment, "")
}

func (p *Page) ReplaceText(_ context.Context, text string) error {
	return p.write("", text)
}

// write renders the page to a temp file next to the target and renames it over
// the previous page
func (p *Page) write(content template.HTML, text string) error {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title       string
		ContainerID string
		Content     template.HTML
		Text        string
	}{p.title, p.containerID, content, text})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".page-*.html")
	if err != nil {
		return fmt.Errorf("failed to create page file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("failed to replace page: %w", err)
	}

	p.logger.Info("Page written to: %s", p.path)
	return nil
}
