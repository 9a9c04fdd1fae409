package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"docugen/internal/assemble"
)

// scriptedClient returns a canned reply or error and records the request.
type scriptedClient struct {
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastReq = req
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.reply}},
		},
	}, nil
}

const replyWithMetadata = `# INVOICE INV-0001

## Bill To
Globex Corp

| Item | Price |
|------|-------|
| Consulting | $500 |

<!-- METADATA
CLIENT: Globex Corp
SUMMARY: Consulting - March
-->`

func TestGenerateParsesMetadata(t *testing.T) {
	client := &scriptedClient{reply: replyWithMetadata}
	g := NewGatewayWithClient(client, "", 0)

	got, err := g.Generate(context.Background(), assemble.Bundle{System: "sys", User: "user"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.ClientName != "Globex Corp" {
		t.Errorf("ClientName = %q, want %q", got.ClientName, "Globex Corp")
	}
	if got.Summary != "Consulting - March" {
		t.Errorf("Summary = %q, want %q", got.Summary, "Consulting - March")
	}
	if got.Markdown == "" || strings.Contains(got.Markdown, "METADATA") {
		t.Errorf("Markdown still contains the metadata block:\n%s", got.Markdown)
	}
}

func TestGenerateSelectedClientWins(t *testing.T) {
	client := &scriptedClient{reply: replyWithMetadata}
	g := NewGatewayWithClient(client, "", 0)

	got, err := g.Generate(context.Background(), assemble.Bundle{
		System:             "sys",
		User:               "user",
		SelectedClientName: "Initech LLC",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.ClientName != "Initech LLC" {
		t.Errorf("ClientName = %q, want the pinned client %q", got.ClientName, "Initech LLC")
	}
}

func TestGenerateNoMetadataFallbacks(t *testing.T) {
	body := "# INVOICE INV-0007\n\nPlain body with no metadata."
	client := &scriptedClient{reply: body}
	g := NewGatewayWithClient(client, "", 0)

	got, err := g.Generate(context.Background(), assemble.Bundle{System: "sys", User: "user"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.ClientName != "Unknown Client" {
		t.Errorf("ClientName = %q, want %q", got.ClientName, "Unknown Client")
	}
	if got.Summary != "Invoice" {
		t.Errorf("Summary = %q, want %q", got.Summary, "Invoice")
	}
	if got.Markdown != body {
		t.Errorf("Markdown = %q, want the response preserved verbatim", got.Markdown)
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	client := &scriptedClient{err: errors.New("dial tcp: connection refused")}
	g := NewGatewayWithClient(client, "", 0)

	_, err := g.Generate(context.Background(), assemble.Bundle{System: "sys", User: "user"})
	if err == nil {
		t.Fatal("Generate() error = nil, want GenerationError")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error type = %T, want *GenerationError", err)
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Error("error does not match ErrGenerationFailed")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := &scriptedClient{reply: ""}
	g := NewGatewayWithClient(client, "", 0)

	_, err := g.Generate(context.Background(), assemble.Bundle{System: "sys", User: "user"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Generate() error = %v, want ErrEmptyResponse", err)
	}
}

func TestGenerateSendsSystemAndUser(t *testing.T) {
	client := &scriptedClient{reply: replyWithMetadata}
	g := NewGatewayWithClient(client, "gpt-4o", 0.3)

	_, err := g.Generate(context.Background(), assemble.Bundle{System: "the directive", User: "the context"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	req := client.lastReq
	if req.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", req.Model, "gpt-4o")
	}
	if len(req.Messages) != 2 ||
		req.Messages[0].Role != openai.ChatMessageRoleSystem ||
		req.Messages[0].Content != "the directive" ||
		req.Messages[1].Role != openai.ChatMessageRoleUser ||
		req.Messages[1].Content != "the context" {
		t.Errorf("unexpected message layout: %+v", req.Messages)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: "# INVOICE", want: "# INVOICE"},
		{name: "markdown fence", in: "```markdown\n# INVOICE\n```", want: "# INVOICE"},
		{name: "bare fence", in: "```\n# INVOICE\n```", want: "# INVOICE"},
		{name: "unterminated fence", in: "```markdown\n# INVOICE", want: "# INVOICE"},
		{name: "fence mid-body left alone", in: "# INVOICE\n```\ncode\n```", want: "# INVOICE\n```\ncode\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseResponseWhitespaceTolerance(t *testing.T) {
	text := "body\n\n<!--   METADATA\n  CLIENT:   Wayne Enterprises  \n  SUMMARY:  Security Retainer \n  -->"
	got := parseResponse(text, "")
	if got.ClientName != "Wayne Enterprises" {
		t.Errorf("ClientName = %q, want %q", got.ClientName, "Wayne Enterprises")
	}
	if got.Summary != "Security Retainer" {
		t.Errorf("Summary = %q, want %q", got.Summary, "Security Retainer")
	}
	if got.Markdown != "body" {
		t.Errorf("Markdown = %q, want %q", got.Markdown, "body")
	}
}
