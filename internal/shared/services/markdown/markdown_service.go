// Package markdown renders moderator-facing text. Ticket messages keep
// their markdown and get a sanitized HTML rendering; notes, reasons and
// report texts are reduced to plain text.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	// RenderHTML converts markdown to HTML that is safe to embed.
	RenderHTML(markdown string) (string, error)
	// PlainText strips every tag and returns trimmed, unescaped text.
	PlainText(text string) string
}

type service struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &service{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *service) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}

func (s *service) PlainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(text)))
}
