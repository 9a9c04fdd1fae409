// Package render turns a document body into a standalone, printable HTML
// page in one of the built-in layouts. It is presentation only: cosmetic
// problems (a missing logo, an unknown layout) degrade to fallbacks and
// never surface as domain errors.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"docugen/pkg/models"
)

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    :root {
      --accent: {{.Theme.Accent}};
      --muted: #6b7280;
      --rule: #e5e7eb;
    }
    * { box-sizing: border-box; }
    @page { size: {{.PageSize}}; margin: 18mm; }
    body {
      margin: 0;
      padding: 32px;
      font-family: {{.Theme.FontFamily}};
      color: #111827;
      background: #ffffff;
    }
    .page {
      max-width: 820px;
      margin: 0 auto;
    }
    .letterhead {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      margin-bottom: 24px;
    }
    .letterhead .sender { font-size: 13px; color: var(--muted); white-space: pre-line; }
    .letterhead .meta { text-align: right; font-size: 13px; }
    .letterhead .meta .label {
      color: var(--muted);
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .logo img { max-height: 56px; }
    .monogram {
      width: 56px;
      height: 56px;
      border-radius: 8px;
      display: flex;
      align-items: center;
      justify-content: center;
      font-size: 22px;
      font-weight: 700;
      background: {{.MonogramBackground}};
      color: {{.MonogramColor}};
    }
    h1 {
      font-size: {{.Theme.TitleSize}};
      border-bottom: 2px solid {{.Theme.TitleRule}};
      padding-bottom: 8px;
      margin: 0 0 24px;
      {{.Theme.TitleExtra}}
    }
    h2 {
      font-size: {{.Theme.HeadingSize}};
      color: {{.Theme.HeadingColor}};
      margin: 32px 0 12px;
      {{.Theme.HeadingExtra}}
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
      margin: 12px 0;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid var(--rule);
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: var(--muted);
    }
    ul { padding-left: 20px; }
    li::marker { color: var(--accent); }
    hr { border: 0; border-top: 1px solid var(--rule); margin: 24px 0; }
    p { line-height: 1.6; }
  </style>
</head>
<body>
  <div class="page">
    <div class="letterhead">
      <div class="logo">
        {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.BusinessName}}" onerror="this.replaceWith(Object.assign(document.createElement('div'),{className:'monogram',textContent:{{.Initials}}}))" />{{else}}<div class="monogram">{{.Initials}}</div>{{end}}
        <div class="sender">{{.SenderBlock}}</div>
      </div>
      <div class="meta">
        <div><span class="label">Invoice</span> {{.InvoiceNumber}}</div>
        <div><span class="label">Issued</span> {{.IssuedText}}</div>
        <div><span class="label">Due</span> {{.DueText}}</div>
      </div>
    </div>
    {{.Body}}
  </div>
</body>
</html>
`

// theme holds the per-layout styling knobs injected into the page CSS.
type theme struct {
	Accent       string
	FontFamily   template.CSS
	TitleSize    template.CSS
	TitleRule    string
	TitleExtra   template.CSS
	HeadingSize  template.CSS
	HeadingColor string
	HeadingExtra template.CSS
}

var themes = map[models.LayoutType]theme{
	models.LayoutClean: {
		Accent:       "#6b7280",
		FontFamily:   `"Helvetica Neue", Arial, sans-serif`,
		TitleSize:    "34px",
		TitleRule:    "#e5e7eb",
		HeadingSize:  "18px",
		HeadingColor: "#1f2937",
	},
	models.LayoutModern: {
		Accent:       "#2563eb",
		FontFamily:   `"Helvetica Neue", Arial, sans-serif`,
		TitleSize:    "34px",
		TitleRule:    "#dbeafe",
		TitleExtra:   "color: #2563eb;",
		HeadingSize:  "13px",
		HeadingColor: "#3b82f6",
		HeadingExtra: "text-transform: uppercase; letter-spacing: 0.08em;",
	},
	models.LayoutClassic: {
		Accent:       "#374151",
		FontFamily:   `Georgia, "Times New Roman", serif`,
		TitleSize:    "32px",
		TitleRule:    "#d1d5db",
		HeadingSize:  "19px",
		HeadingColor: "#111827",
	},
	models.LayoutBold: {
		Accent:       "#111827",
		FontFamily:   `"Helvetica Neue", Arial, sans-serif`,
		TitleSize:    "44px",
		TitleRule:    "#111827",
		TitleExtra:   "text-transform: uppercase; letter-spacing: -0.03em;",
		HeadingSize:  "16px",
		HeadingColor: "#ffffff",
		HeadingExtra: "background: #111827; display: inline-block; padding: 2px 8px;",
	},
}

// Options selects paper size and orientation for printing.
type Options struct {
	PaperSize   string // "a4" (default) or "letter"
	Orientation string // "portrait" (default) or "landscape"
}

// Input is everything the renderer needs; it reports nothing back to the
// core beyond the finished page.
type Input struct {
	Markdown      string
	Layout        models.LayoutType
	Profile       models.UserProfile
	InvoiceNumber string
	CreatedAt     int64
	DueDate       *int64
	Options       Options
}

// Renderer produces a presentation of a document body.
type Renderer interface {
	RenderHTML(in Input) (string, error)
}

// HTMLRenderer renders to a self-contained HTML page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the page template once.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// RenderHTML renders the input. Unknown layouts fall back to the default
// layout's theme; a missing logo falls back to a two-color monogram.
func (r *HTMLRenderer) RenderHTML(in Input) (string, error) {
	th, ok := themes[in.Layout]
	if !ok {
		th = themes[models.DefaultLayout]
	}

	dueText := "Upon Receipt"
	if in.DueDate != nil {
		dueText = time.UnixMilli(*in.DueDate).Format("January 2, 2006")
	}

	body, err := toHTML(in.Markdown)
	if err != nil {
		return "", fmt.Errorf("convert invoice %s body: %w", in.InvoiceNumber, err)
	}

	data := struct {
		Theme              theme
		PageSize           template.CSS
		InvoiceNumber      string
		IssuedText         string
		DueText            string
		BusinessName       string
		SenderBlock        string
		LogoURL            string
		Initials           string
		MonogramBackground string
		MonogramColor      string
		Body               template.HTML
	}{
		Theme:              th,
		PageSize:           pageSize(in.Options),
		InvoiceNumber:      in.InvoiceNumber,
		IssuedText:         time.UnixMilli(in.CreatedAt).Format("January 2, 2006"),
		DueText:            dueText,
		BusinessName:       in.Profile.BusinessName,
		SenderBlock:        senderBlock(in.Profile),
		LogoURL:            in.Profile.LogoURL,
		Initials:           initials(in.Profile),
		MonogramBackground: colorOr(in.Profile.LogoBackgroundColor, "#2563eb"),
		MonogramColor:      colorOr(in.Profile.LogoTextColor, "#ffffff"),
		Body:               body,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invoice %s: %w", in.InvoiceNumber, err)
	}
	return buf.String(), nil
}

func pageSize(opts Options) template.CSS {
	size := "A4"
	if strings.EqualFold(opts.PaperSize, "letter") {
		size = "letter"
	}
	if strings.EqualFold(opts.Orientation, "landscape") {
		return template.CSS(size + " landscape")
	}
	return template.CSS(size)
}

func senderBlock(p models.UserProfile) string {
	parts := []string{p.BusinessName, p.Address, p.Email}
	if p.Phone != "" {
		parts = append(parts, p.Phone)
	}
	if p.WebsiteURL != "" {
		parts = append(parts, p.WebsiteURL)
	}
	return strings.Join(parts, "\n")
}

// initials derives the monogram text from the business name, falling
// back to the owner name.
func initials(p models.UserProfile) string {
	name := p.BusinessName
	if name == "" {
		name = p.OwnerName
	}
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(word)[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return strings.ToUpper(string(out))
}

func colorOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
