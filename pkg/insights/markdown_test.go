package insights

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "empty",
			input:    "",
			contains: nil,
		},
		{
			name:     "heading and emphasis",
			input:    "## Child enrolment gap\n\nUpdates are **concentrated** in urban pincodes.",
			contains: []string{"<h2>Child enrolment gap</h2>", "<strong>concentrated</strong>"},
		},
		{
			name:     "gfm table",
			input:    "| State | Pincodes |\n|---|---|\n| Delhi | 95 |\n",
			contains: []string{"<table>", "<td>Delhi</td>"},
		},
		{
			name:     "raw html is not passed through",
			input:    "<script>alert(1)</script>\n\nok",
			contains: []string{"<p>ok</p>"},
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(tt.input)
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}
			if tt.input == "" && got != "" {
				t.Errorf("RenderHTML(\"\") = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderHTML() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("RenderHTML() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
		wantOK    bool
	}{
		{
			name:      "atx heading",
			input:     "# Urban pressure\n\nUpdates cluster in **cities**.\n",
			wantTitle: "Urban pressure",
			wantBody:  "Updates cluster in **cities**.",
			wantOK:    true,
		},
		{
			name:      "fenced comment is not a heading",
			input:     "Intro.\n\n```sh\n# install deps\nmake seed\n```\n\n# Saturation in Bihar\n\nBody.",
			wantTitle: "Saturation in Bihar",
			wantBody:  "Intro.\n\n```sh\n# install deps\nmake seed\n```\n\n\nBody.",
			wantOK:    true,
		},
		{
			name:      "setext heading with inline code",
			input:     "Child gap in `560001`\n===\n\nBody.",
			wantTitle: "Child gap in 560001",
			wantBody:  "Body.",
			wantOK:    true,
		},
		{
			name:      "level two only",
			input:     "## Not a title\n\nBody.",
			wantBody:  "## Not a title\n\nBody.",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body, ok := SplitTitle(tt.input)
			if ok != tt.wantOK || title != tt.wantTitle || body != tt.wantBody {
				t.Errorf("SplitTitle() = (%q, %q, %v), want (%q, %q, %v)", title, body, ok, tt.wantTitle, tt.wantBody, tt.wantOK)
			}
		})
	}
}
