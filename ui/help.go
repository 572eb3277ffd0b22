package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderHelp converts the embedded help.md to HTML once at startup
func renderHelp() (template.HTML, error) {
	source, err := embeddedFiles.ReadFile("help.md")
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})

	// help.md ships with the binary, so its HTML is trusted
	return template.HTML(markdown.ToHTML(source, p, renderer)), nil
}
