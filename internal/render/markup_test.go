package render

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "plain text",
			input:    "hello world",
			expected: []Token{{Kind: TokenText, Text: "hello world"}},
		},
		{
			name:  "bold",
			input: "a **b** c",
			expected: []Token{
				{Kind: TokenText, Text: "a "},
				{Kind: TokenBold, Text: "b", Children: []Token{{Kind: TokenText, Text: "b"}}},
				{Kind: TokenText, Text: " c"},
			},
		},
		{
			name:  "code",
			input: "`x`",
			expected: []Token{
				{Kind: TokenCode, Text: "x"},
			},
		},
		{
			name:  "paragraph break",
			input: "one\n\ntwo",
			expected: []Token{
				{Kind: TokenText, Text: "one"},
				{Kind: TokenBreak},
				{Kind: TokenText, Text: "two"},
			},
		},
		{
			name:  "single newline stays text",
			input: "one\ntwo",
			expected: []Token{
				{Kind: TokenText, Text: "one\ntwo"},
			},
		},
		{
			name:  "triple newline",
			input: "a\n\n\nb",
			expected: []Token{
				{Kind: TokenText, Text: "a"},
				{Kind: TokenBreak},
				{Kind: TokenText, Text: "\nb"},
			},
		},
		{
			name:  "non-greedy bold",
			input: "**a** and **b**",
			expected: []Token{
				{Kind: TokenBold, Text: "a", Children: []Token{{Kind: TokenText, Text: "a"}}},
				{Kind: TokenText, Text: " and "},
				{Kind: TokenBold, Text: "b", Children: []Token{{Kind: TokenText, Text: "b"}}},
			},
		},
		{
			name:  "code keeps asterisks literal",
			input: "`a**b**c`",
			expected: []Token{
				{Kind: TokenCode, Text: "a**b**c"},
			},
		},
		{
			name:  "code inside bold",
			input: "**use `go test`**",
			expected: []Token{
				{Kind: TokenBold, Text: "use `go test`", Children: []Token{
					{Kind: TokenText, Text: "use "},
					{Kind: TokenCode, Text: "go test"},
				}},
			},
		},
		{
			name:     "unterminated bold",
			input:    "**open",
			expected: []Token{{Kind: TokenText, Text: "**open"}},
		},
		{
			name:     "unterminated code",
			input:    "`open",
			expected: []Token{{Kind: TokenText, Text: "`open"}},
		},
		{
			name:  "bold does not cross newline",
			input: "**a\nb**",
			expected: []Token{
				{Kind: TokenText, Text: "**a\nb**"},
			},
		},
		{
			name:  "bold spans a paragraph break",
			input: "**a\n\nb**",
			expected: []Token{
				{Kind: TokenBold, Text: "a\n\nb", Children: []Token{
					{Kind: TokenText, Text: "a"},
					{Kind: TokenBreak},
					{Kind: TokenText, Text: "b"},
				}},
			},
		},
		{
			name:  "code spans a paragraph break",
			input: "`x\n\ny`",
			expected: []Token{
				{Kind: TokenCode, Text: "x\n\ny", Children: []Token{
					{Kind: TokenText, Text: "x"},
					{Kind: TokenBreak},
					{Kind: TokenText, Text: "y"},
				}},
			},
		},
		{
			name:  "lone newline after a break still ends the span",
			input: "**a\n\n\nb**",
			expected: []Token{
				{Kind: TokenText, Text: "**a"},
				{Kind: TokenBreak},
				{Kind: TokenText, Text: "\nb**"},
			},
		},
		{
			name:  "empty bold",
			input: "****",
			expected: []Token{
				{Kind: TokenBold, Text: "", Children: nil},
			},
		},
		{
			name:  "leading extra asterisk",
			input: "***a**",
			expected: []Token{
				{Kind: TokenBold, Text: "*a", Children: []Token{{Kind: TokenText, Text: "*a"}}},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\n got: %+v\nwant: %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	kinds := map[TokenKind]string{
		TokenText:     "text",
		TokenBreak:    "break",
		TokenBold:     "bold",
		TokenCode:     "code",
		TokenKind(99): "unknown",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("TokenKind(%d).String() = %s, want %s", kind, got, want)
		}
	}
}
