package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{
			name:    "plain text short",
			content: "Build accessible services.",
			maxLen:  100,
			want:    "Build accessible services.",
		},
		{
			name:    "strips markup",
			content: "<p>Build <strong>accessible</strong> services.</p>",
			maxLen:  100,
			want:    "Build accessible services.",
		},
		{
			name:    "collapses whitespace",
			content: "Build\n\n   accessible\tservices.",
			maxLen:  100,
			want:    "Build accessible services.",
		},
		{
			name:    "truncates with ellipsis",
			content: strings.Repeat("word ", 50),
			maxLen:  20,
			want:    strings.TrimSpace(strings.Repeat("word ", 4)) + "...",
		},
		{
			name:    "empty content",
			content: "",
			maxLen:  100,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.content, tt.maxLen))
		})
	}
}

func TestExcerptDefaultLength(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := Excerpt(long, 0)
	assert.Len(t, got, DefaultExcerptLength+len("..."))
}
