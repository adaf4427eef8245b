package content_test

import (
	"strings"
	"testing"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*content.Document)
		wantErr string
	}{
		{
			name:   "valid document",
			mutate: func(d *content.Document) {},
		},
		{
			name: "duplicate section ids",
			mutate: func(d *content.Document) {
				d.Sections = append(d.Sections, d.Sections[0])
			},
			wantErr: "duplicate section id",
		},
		{
			name: "toc references missing section",
			mutate: func(d *content.Document) {
				d.TableOfContents = []content.TOCEntry{{ID: "ghost", Label: "Ghost"}}
			},
			wantErr: "unknown section",
		},
		{
			name: "published without sections",
			mutate: func(d *content.Document) {
				d.Sections = nil
			},
			wantErr: "published",
		},
		{
			name: "draft without sections is fine",
			mutate: func(d *content.Document) {
				d.Sections = nil
				d.Status = content.StatusDraft
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDocument()
			tt.mutate(&doc)
			err := doc.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFlattenText(t *testing.T) {
	doc := baseDocument()
	doc.Faq = []content.FaqItem{{Question: "Visa needed?", Answer: "Depends on nationality."}}

	flat := content.FlattenText(&doc)
	for _, want := range []string{
		"Living in Bahia",
		"Bahia at a glance.",
		"Coastal climate",
		"Visa needed?",
		"Depends on nationality.",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("FlattenText() missing %q", want)
		}
	}
	if strings.Contains(flat, "  ") {
		t.Error("FlattenText() output contains unnormalized whitespace")
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "plain", input: "one two three", expected: 3},
		{name: "extra whitespace", input: "  one \n two  ", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := content.CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
