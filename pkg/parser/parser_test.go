package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   []string
	}{
		{"json list", `["Login works", "Page loads fast"]`, FormatAuto, []string{"Login works", "Page loads fast"}},
		{"json object", `{"texts": ["Login works"]}`, FormatAuto, []string{"Login works"}},
		{"json non-string item", `["ok", 42, null]`, FormatAuto, []string{"ok", "", ""}},
		{"yaml list", "- Login works\n- Page loads fast\n", FormatAuto, []string{"Login works", "Page loads fast"}},
		{"yaml object", "texts:\n  - Login works\n  - \"\"\n", FormatAuto, []string{"Login works", ""}},
		{"lines", "# requirements\nLogin works\n\n  Page loads fast  \n", FormatAuto, []string{"Login works", "Page loads fast"}},
		{"forced lines", `["not json"]`, FormatLines, []string{`["not json"]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBatch([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBatch_Errors(t *testing.T) {
	_, err := ParseBatch([]byte("   \n# only a comment\n"), FormatAuto)
	assert.ErrorIs(t, err, ErrNoTexts)

	_, err = ParseBatch([]byte(`{"texts": []}`), FormatAuto)
	assert.ErrorIs(t, err, ErrNoTexts)

	_, err = ParseBatch([]byte(`[1, 2`), FormatJSON)
	assert.ErrorContains(t, err, "decode JSON batch")

	_, err = ParseBatch([]byte("x"), "toml")
	assert.ErrorContains(t, err, "unknown input format")
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  1. What is the limit?\n", "1. What is the limit?"},
		{"fenced", "```markdown\n**Steps:**\n1. Open\n```", "**Steps:**\n1. Open"},
		{"bare fence", "```\ntext\n```", "text"},
		{"inner fence kept", "Run:\n```\nmake\n```\nthen check", "Run:\n```\nmake\n```\nthen check"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.raw))
		})
	}
}
