package render

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts document bodies with GFM enabled, since line items
// are pipe tables. Raw HTML in a body is omitted, not passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func toHTML(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
