package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var (
	// ErrEmptyValue is returned for declarations without value, e.g. "color: ;".
	ErrEmptyValue = errors.New("declaration has no value")
	// ErrMalformed is returned when declaration does not start with
	// "property:".
	ErrMalformed = errors.New("malformed declaration")
)

// ParseDeclarations parses declaration list as found in inline style
// attribute ("font-size: 16px; line-height: 1.5"). Values are normalized:
// surrounding whitespace is removed and inner whitespace runs are collapsed
// into single space. Everything else, including spacing inside function
// arguments, is kept as written.
func ParseDeclarations(text string) (Declarations, error) {
	var (
		decls  Declarations
		tokens []css.Token
		depth  int
	)

	lexer := css.NewLexer(parse.NewInputString(text))
	for {
		tt, data := lexer.Next()

		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return Declarations{}, fmt.Errorf("unable to parse declarations %q: %w", text, err)
			}
			if err := addDeclaration(&decls, tokens); err != nil {
				return Declarations{}, err
			}
			return decls, nil

		case css.CommentToken:
			continue

		case css.SemicolonToken:
			if depth == 0 {
				if err := addDeclaration(&decls, tokens); err != nil {
					return Declarations{}, err
				}
				tokens = tokens[:0]
				continue
			}

		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++

		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		}
		// lexer reuses its buffer, keep own copy
		tokens = append(tokens, css.Token{TokenType: tt, Data: []byte(string(data))})
	}
}

// addDeclaration expects "property : value" tokens, empty declarations
// (";;") are ignored.
func addDeclaration(decls *Declarations, tokens []css.Token) error {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return nil
	}

	name := tokens[0]
	if name.TokenType != css.IdentToken && name.TokenType != css.CustomPropertyNameToken {
		return fmt.Errorf("%w: unexpected %q", ErrMalformed, joinTokens(tokens))
	}
	rest := trimWhitespace(tokens[1:])
	if len(rest) == 0 || rest[0].TokenType != css.ColonToken {
		return fmt.Errorf("%w: no colon after %q", ErrMalformed, name.Data)
	}

	property := string(name.Data)
	value := joinTokens(rest[1:])
	if value == "" {
		return fmt.Errorf("property %q: %w", property, ErrEmptyValue)
	}
	decls.Set(property, value)
	return nil
}

// MustParseDeclarations is like ParseDeclarations but panics on error. It is
// intended for declarations known at compile time.
func MustParseDeclarations(text string) Declarations {
	decls, err := ParseDeclarations(text)
	if err != nil {
		panic(err)
	}
	return decls
}

func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// joinTokens builds value string, every whitespace run becomes single space.
func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.Write(t.Data)
	}
	return b.String()
}
