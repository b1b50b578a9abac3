package css

import (
	"strings"

	"bennypowers.dev/cssom/internal/color"
	"bennypowers.dev/cssom/internal/value"
)

// ParseValue parses the text of a declaration value into a production.
// Whitespace separated values become a space list and commas split a comma
// list. An empty value yields an empty space list.
func ParseValue(text string) (value.Value, error) {
	b := &builder{src: text, toks: tokenize(text)}
	items, err := b.parseSequence(tokEOF)
	if err != nil {
		return nil, err
	}
	if v := value.Group(items); v != nil {
		return v, nil
	}
	return value.SpaceList(), nil
}

// MustParseValue is like ParseValue but panics on error
func MustParseValue(text string) value.Value {
	v, err := ParseValue(text)
	if err != nil {
		panic(err)
	}
	return v
}

// builder turns a token stream into component value productions
type builder struct {
	src  string
	toks []token
	pos  int
}

func (b *builder) peek() token {
	if b.pos >= len(b.toks) {
		return token{kind: tokEOF, start: len(b.src), end: len(b.src)}
	}
	return b.toks[b.pos]
}

func (b *builder) advance() token {
	tok := b.peek()
	if b.pos < len(b.toks) {
		b.pos++
	}
	return tok
}

// parseSequence consumes component values up to (and including) the stop
// token. Whitespace is dropped; commas are kept as *value.Delim.
func (b *builder) parseSequence(stop tokenKind) ([]value.Value, error) {
	var items []value.Value
	for {
		tok := b.advance()
		switch tok.kind {
		case stop:
			return items, nil
		case tokEOF:
			return nil, NewInvalidValueError(b.src, tok.start, "unexpected end of value")
		case tokWhitespace:
			continue
		case tokRParen, tokRBrack, tokRBrace:
			return nil, NewInvalidValueError(b.src, tok.start, "unbalanced "+tok.value)
		case tokSemicolon:
			return nil, NewInvalidValueError(b.src, tok.start, "unexpected ;")
		case tokBadString:
			return nil, NewInvalidValueError(b.src, tok.start, "unterminated string")
		case tokBadURL:
			return nil, NewInvalidValueError(b.src, tok.start, "malformed url()")
		}

		v, err := b.component(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (b *builder) component(tok token) (value.Value, error) {
	switch tok.kind {
	case tokIdent:
		return &value.Ident{Text: tok.value}, nil
	case tokString:
		return &value.String{Value: tok.value}, nil
	case tokURL:
		return &value.URI{Value: tok.value}, nil
	case tokNumber:
		return &value.Numeric{Value: tok.number, Integer: tok.integer}, nil
	case tokPercentage:
		return &value.Numeric{Value: tok.number, Unit: "%", Integer: tok.integer}, nil
	case tokDimension:
		return &value.Numeric{Value: tok.number, Unit: tok.value, Integer: tok.integer}, nil
	case tokUnicodeRange:
		return &value.UnicodeRange{Text: tok.value}, nil
	case tokComma:
		return &value.Delim{Text: ","}, nil
	case tokColon:
		return &value.Delim{Text: ":"}, nil
	case tokHash:
		text := b.src[tok.start:tok.end]
		if rgba, err := color.Parse(text); err == nil {
			return &value.Color{Text: text, RGBA: rgba}, nil
		}
		return &value.Raw{Text: text}, nil
	case tokFunction:
		return b.function(tok)
	case tokLParen, tokLBrack, tokLBrace:
		return b.block(tok)
	}
	return &value.Delim{Text: tok.value}, nil
}

func (b *builder) block(open token) (value.Value, error) {
	closing := map[tokenKind]tokenKind{tokLParen: tokRParen, tokLBrack: tokRBrack, tokLBrace: tokRBrace}[open.kind]
	if _, err := b.parseSequence(closing); err != nil {
		return nil, err
	}
	return &value.Raw{Text: b.src[open.start:b.toks[b.pos-1].end]}, nil
}

func (b *builder) function(open token) (value.Value, error) {
	args, err := b.parseSequence(tokRParen)
	if err != nil {
		return nil, err
	}
	closing := b.toks[b.pos-1]
	inner := strings.TrimSpace(b.src[open.end:closing.start])
	text := b.src[open.start:closing.end]
	name := strings.ToLower(open.value)

	switch name {
	case "var":
		return b.varFunction(open, args)
	case "env":
		return b.envFunction(open, args)
	case "attr":
		return &value.Attr{Params: args}, nil
	case "url", "src":
		if len(args) == 1 {
			if s, ok := args[0].(*value.String); ok {
				return &value.URI{Value: s.Value}, nil
			}
		}
		return nil, NewInvalidValueError(b.src, open.start, name+"() expects a single string")
	}

	if color.IsFunction(name) {
		rgba, _ := color.Parse(text)
		return &value.Color{Text: text, RGBA: rgba}, nil
	}

	return &value.Function{Name: open.value, Args: args, Inner: inner}, nil
}

// varFunction builds var(<custom-property-name> [, <fallback>]?)
func (b *builder) varFunction(open token, args []value.Value) (value.Value, error) {
	name, fallback, ok := splitReference(args)
	if !ok || !strings.HasPrefix(name, "--") {
		return nil, NewInvalidValueError(b.src, open.start, "var() requires a custom property name")
	}
	return &value.Var{Name: name, Fallback: fallback}, nil
}

// envFunction builds env(<custom-ident> <integer>* [, <fallback>]?)
func (b *builder) envFunction(open token, args []value.Value) (value.Value, error) {
	name, fallback, ok := splitReference(args)
	if !ok {
		return nil, NewInvalidValueError(b.src, open.start, "env() requires an environment variable name")
	}
	return &value.Env{Name: name, Fallback: fallback}, nil
}

// splitReference reads the leading identifier of a var()/env() argument
// list and groups everything after the first comma as the fallback.
func splitReference(args []value.Value) (string, value.Value, bool) {
	if len(args) == 0 {
		return "", nil, false
	}
	ident, ok := args[0].(*value.Ident)
	if !ok {
		return "", nil, false
	}
	for i, arg := range args[1:] {
		if d, ok := arg.(*value.Delim); ok && d.IsComma() {
			return ident.Text, value.Group(args[i+2:]), true
		}
	}
	return ident.Text, nil, true
}
