package document

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TokenType names a pandoc inline token.
type TokenType string

const (
	TokenStr       TokenType = "Str"
	TokenSpace     TokenType = "Space"
	TokenSoftBreak TokenType = "SoftBreak"
)

// ErrUnsupportedToken is returned for tokens that do not map to plain text.
var ErrUnsupportedToken = errors.New("unsupported text token")

// Token is a pandoc inline token in its JSON shape: {"t": type, "c": content}.
type Token struct {
	T TokenType `json:"t" msgpack:"t"`
	C string    `json:"c,omitempty" msgpack:"c,omitempty"`
}

// ReadText converts text tokens to document text. Space and SoftBreak both
// become a single space. With rawTeX, backslashes in Str content are doubled
// so that a literal backslash stays distinct from the start of raw TeX.
func ReadText(tokens []Token, rawTeX bool) (string, error) {
	var b strings.Builder
	for i, tok := range tokens {
		switch tok.T {
		case TokenStr:
			if rawTeX {
				b.WriteString(EscapeTeX(tok.C))
			} else {
				b.WriteString(tok.C)
			}
		case TokenSpace, TokenSoftBreak:
			b.WriteByte(' ')
		default:
			return "", errors.Wrapf(ErrUnsupportedToken, "token %d: %q", i, tok.T)
		}
	}
	return b.String(), nil
}

// EscapeTeX doubles every backslash in s.
func EscapeTeX(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

// WriteTokens splits document text into Str and Space tokens. Newlines become
// SoftBreak.
func WriteTokens(text string) []Token {
	tokens := make([]Token, 0)
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, Token{T: TokenStr, C: word.String()})
			word.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case ' ':
			flush()
			tokens = append(tokens, Token{T: TokenSpace})
		case '\n':
			flush()
			tokens = append(tokens, Token{T: TokenSoftBreak})
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}
