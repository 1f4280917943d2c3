package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownService_RenderHTML(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "renders emphasis",
			input:    "please **review** this",
			contains: []string{"<strong>review</strong>"},
		},
		{
			name:     "drops script tags",
			input:    "hi <script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "links are kept and open in a new tab",
			input:    "see https://example.com",
			contains: []string{"href=\"https://example.com\"", "target=\"_blank\"", "nofollow"},
		},
		{
			name:     "tables render",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.RenderHTML(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestMarkdownService_PlainText(t *testing.T) {
	svc := NewMarkdownService()

	assert.Equal(t, "spam link", svc.PlainText("  <b>spam</b> <a href=\"x\">link</a> "))
	assert.Equal(t, "a & b", svc.PlainText("a & b"))
	assert.Equal(t, "", svc.PlainText("<img src=x>"))
}
