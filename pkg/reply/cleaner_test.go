package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmichie/inkspect/pkg/config"
)

func TestClean(t *testing.T) {
	c := NewCleaner(config.DefaultPreambles)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Of course preamble",
			raw:  "Of course. Here is your answer\nThe answer is 42.",
			want: "The answer is 42.",
		},
		{
			name: "Certainly anywhere in the first line",
			raw:  "Sure! Certainly. Let me help.\nline two\nline three",
			want: "line two\nline three",
		},
		{
			name: "Refined version paraphrase",
			raw:  "Here's a refined version of your prompt:\n\nDo the thing.",
			want: "\nDo the thing.",
		},
		{
			name: "Only the first line is inspected",
			raw:  "Answer first\nOf course.\nrest",
			want: "Answer first\nOf course.\nrest",
		},
		{
			name: "Case sensitive",
			raw:  "of course. lower case\nbody",
			want: "of course. lower case\nbody",
		},
		{
			name: "Single matching line",
			raw:  "Certainly.",
			want: "",
		},
		{
			name: "CRLF line endings",
			raw:  "Of course.\r\nA\r\nB\r\n",
			want: "A\nB",
		},
		{
			name: "Trailing newline dropped",
			raw:  "Of course.\nA\nB\n",
			want: "A\nB",
		},
		{
			name: "Blank lines kept between body lines",
			raw:  "Certainly.\n\nA\n\n\nB\n\n",
			want: "\nA\n\n\nB\n",
		},
		{
			name: "Preamble followed by newline only",
			raw:  "Certainly.\n",
			want: "",
		},
		{
			name: "CRLF reply without preamble unchanged",
			raw:  "Plain\r\nbody\r\n",
			want: "Plain\r\nbody\r\n",
		},
		{
			name: "Empty reply",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Clean(tt.raw))
		})
	}
}

func TestCleanIdempotentOnCleanReplies(t *testing.T) {
	c := NewCleaner(config.DefaultPreambles)

	for _, raw := range []string{
		"The answer is 42.",
		"# Title\n\nBody text\n",
		"",
		"\n\nleading blank lines",
	} {
		once := c.Clean(raw)
		assert.Equal(t, raw, once)
		assert.Equal(t, once, c.Clean(once))
	}
}

func TestCustomPreambles(t *testing.T) {
	c := NewCleaner([]string{"Voilà", ""})

	assert.Equal(t, "texte", c.Clean("Voilà le résultat\ntexte"))
	assert.Equal(t, "Of course.\nbody", c.Clean("Of course.\nbody"))

	empty := NewCleaner(nil)
	assert.Equal(t, "Of course.\nbody", empty.Clean("Of course.\nbody"))
}
