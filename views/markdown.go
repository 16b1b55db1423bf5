package views

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// RenderMarkdown converts src to HTML. Raw HTML in src is not passed through.
func RenderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("views: markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// About renders the embedded about page content.
func About() (template.HTML, error) {
	src, err := files.ReadFile("content/about.md")
	if err != nil {
		return "", fmt.Errorf("views: %w", err)
	}
	return RenderMarkdown(src)
}
