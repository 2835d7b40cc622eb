package render

import "strings"

// TokenKind tags a segment of limited-markup text
type TokenKind int

const (
	// TokenText is literal text, shown as-is
	TokenText TokenKind = iota
	// TokenBreak is a paragraph break produced by a blank line
	TokenBreak
	// TokenBold is a **strong** span; delimiters are not part of Text
	TokenBold
	// TokenCode is a `code` span; delimiters are not part of Text
	TokenCode
)

// String returns a short name for the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenBreak:
		return "break"
	case TokenBold:
		return "bold"
	case TokenCode:
		return "code"
	default:
		return "unknown"
	}
}

// Token is one segment produced by Tokenize.
// Bold tokens carry their content split into Children (text, break and code).
// Code tokens carry Children only when their content holds a paragraph break,
// and then only text and break tokens.
type Token struct {
	Kind     TokenKind
	Text     string
	Children []Token
}

const (
	paragraphBreak = "\n\n"
	boldDelim      = "**"
	codeDelim      = "`"
)

// Tokenize scans assistant text left to right into text, break, bold and code
// tokens. Spans are non-greedy and never nest in themselves. A span may
// contain a paragraph break but not a lone newline. A code span opened first
// keeps its asterisks literal. An unterminated delimiter is kept as literal
// text.
func Tokenize(s string) []Token {
	return scan(s, true)
}

func scan(s string, allowBold bool) []Token {
	var tokens []Token
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		rest := s[i:]

		switch {
		case strings.HasPrefix(rest, paragraphBreak):
			flush()
			tokens = append(tokens, Token{Kind: TokenBreak})
			i += len(paragraphBreak)
			continue

		case allowBold && strings.HasPrefix(rest, boldDelim):
			if end, ok := closing(rest[len(boldDelim):], boldDelim); ok {
				inner := rest[len(boldDelim) : len(boldDelim)+end]
				flush()
				tokens = append(tokens, Token{
					Kind:     TokenBold,
					Text:     inner,
					Children: scan(inner, false),
				})
				i += len(boldDelim) + end + len(boldDelim)
				continue
			}

		case strings.HasPrefix(rest, codeDelim):
			if end, ok := closing(rest[len(codeDelim):], codeDelim); ok {
				inner := rest[len(codeDelim) : len(codeDelim)+end]
				flush()
				tok := Token{Kind: TokenCode, Text: inner}
				if strings.Contains(inner, paragraphBreak) {
					tok.Children = splitBreaks(inner)
				}
				tokens = append(tokens, tok)
				i += len(codeDelim) + end + len(codeDelim)
				continue
			}
		}

		text.WriteByte(s[i])
		i++
	}

	flush()
	return tokens
}

// splitBreaks cuts code content at paragraph breaks, leaving the rest literal
func splitBreaks(s string) []Token {
	var tokens []Token
	for i, part := range strings.Split(s, paragraphBreak) {
		if i > 0 {
			tokens = append(tokens, Token{Kind: TokenBreak})
		}
		if part != "" {
			tokens = append(tokens, Token{Kind: TokenText, Text: part})
		}
	}
	return tokens
}

// closing finds the first delim in s. A paragraph break is stepped over; a
// lone newline ends the search.
func closing(s, delim string) (int, bool) {
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], delim):
			return i, true
		case strings.HasPrefix(s[i:], paragraphBreak):
			i++
		case s[i] == '\n':
			return -1, false
		}
	}
	return -1, false
}
