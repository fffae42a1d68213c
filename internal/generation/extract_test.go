package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "bare array",
			input:  `[{"q":1}]`,
			want:   `[{"q":1}]`,
			wantOK: true,
		},
		{
			name:   "fenced with language tag",
			input:  "Here you go:\n```json\n[{\"questionText\":\"Q1\"}]\n```",
			want:   `[{"questionText":"Q1"}]`,
			wantOK: true,
		},
		{
			name:   "fenced without language tag",
			input:  "```\n[1, 2]\n```",
			want:   `[1, 2]`,
			wantOK: true,
		},
		{
			name:   "prose around array",
			input:  "Sure! [\"a\", \"b\"] hope this helps",
			want:   `["a", "b"]`,
			wantOK: true,
		},
		{
			name:   "brackets inside strings",
			input:  `prefix [{"questionText":"What is a[0] ] in Go?","options":["x]","[y"]}] suffix`,
			want:   `[{"questionText":"What is a[0] ] in Go?","options":["x]","[y"]}]`,
			wantOK: true,
		},
		{
			name:   "escaped quote inside string",
			input:  `[{"questionText":"Say \"hi]\" please"}]`,
			want:   `[{"questionText":"Say \"hi]\" please"}]`,
			wantOK: true,
		},
		{
			name:   "skips non-json bracket prose",
			input:  "[note] the list: [1]",
			want:   `[1]`,
			wantOK: true,
		},
		{
			name:   "citation before object array",
			input:  "Per guideline [1], here:\n[{\"questionText\":\"Q1\"}]",
			want:   `[{"questionText":"Q1"}]`,
			wantOK: true,
		},
		{
			name:   "scalar array in fence loses to object array after it",
			input:  "```\n[1, 2]\n```\nActual output: [{\"questionText\":\"Q1\"}]",
			want:   `[{"questionText":"Q1"}]`,
			wantOK: true,
		},
		{
			name:   "nested object array wins over outer array of arrays",
			input:  `[[{"questionText":"Q1"}]]`,
			want:   `[{"questionText":"Q1"}]`,
			wantOK: true,
		},
		{
			name:   "no array",
			input:  "I cannot help with that.",
			wantOK: false,
		},
		{
			name:   "unbalanced",
			input:  `[{"a":1}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
