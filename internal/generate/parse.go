package generate

import (
	"regexp"
	"strings"
)

// Fallbacks used when the reply carries no metadata block.
const (
	fallbackClientName = "Unknown Client"
	fallbackSummary    = "Invoice"
)

// metadataRe tolerantly locates the trailing hidden metadata block. The
// match is deliberately loose on whitespace; the block may be absent
// entirely.
var metadataRe = regexp.MustCompile(`(?s)<!--\s*METADATA\s+CLIENT:\s*(.*?)\s+SUMMARY:\s*(.*?)\s*-->`)

// parseResponse extracts the metadata block from the reply and strips it
// from the returned body. A pre-selected client always wins over the
// model's extraction; without a block and without a selection the
// fallbacks apply and the body is preserved verbatim.
func parseResponse(text, selectedClientName string) Result {
	clientName := selectedClientName
	if clientName == "" {
		clientName = fallbackClientName
	}
	summary := fallbackSummary
	markdown := text

	if m := metadataRe.FindStringSubmatch(text); m != nil {
		if selectedClientName == "" {
			if extracted := strings.TrimSpace(m[1]); extracted != "" {
				clientName = extracted
			}
		}
		if s := strings.TrimSpace(m[2]); s != "" {
			summary = s
		}
		markdown = strings.TrimSpace(metadataRe.ReplaceAllString(text, ""))
	}

	return Result{
		Markdown:   stripFences(markdown),
		ClientName: clientName,
		Summary:    summary,
	}
}

// stripFences defensively removes a code fence wrapping the whole body.
// The generation instruction forbids fences, so this only triggers on a
// misbehaving reply.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
