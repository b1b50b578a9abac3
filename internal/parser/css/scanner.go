package css

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// tokenKind is the type of a CSS syntax token
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWhitespace
	tokIdent
	tokFunction
	tokHash
	tokString
	tokBadString
	tokURL
	tokBadURL
	tokDelim
	tokNumber
	tokPercentage
	tokDimension
	tokUnicodeRange
	tokComma
	tokColon
	tokSemicolon
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokLBrace
	tokRBrace
)

// eof represents the end of input.
const eof rune = -1

// token is a single token along with its byte span in the source
type token struct {
	kind    tokenKind
	value   string // ident, function, hash or at-keyword name; string contents; delim text; unit
	number  float64
	integer bool
	start   int
	end     int
}

// scanner breaks a CSS component value string into tokens following
// CSS Syntax Level 3 §4. Comments are skipped.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

// tokenize scans the whole input
func tokenize(src string) []token {
	s := newScanner(src)
	var toks []token
	for {
		tok := s.scan()
		if tok.kind == tokEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// peek returns the rune n runes ahead of the current position without
// consuming anything.
func (s *scanner) peek(n int) rune {
	pos := s.pos
	for i := 0; ; i++ {
		if pos >= len(s.src) {
			return eof
		}
		r, size := utf8.DecodeRuneInString(s.src[pos:])
		if i == n {
			return r
		}
		pos += size
	}
}

func (s *scanner) next() rune {
	if s.pos >= len(s.src) {
		return eof
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return r
}

func (s *scanner) scan() token {
	for {
		start := s.pos
		ch := s.peek(0)

		switch {
		case ch == eof:
			return token{kind: tokEOF, start: start, end: start}
		case ch == '/' && s.peek(1) == '*':
			s.skipComment()
			continue
		case isWhitespace(ch):
			for isWhitespace(s.peek(0)) {
				s.next()
			}
			return s.emit(tokWhitespace, start, "")
		case ch == '"' || ch == '\'':
			return s.scanString(start)
		case ch == '#':
			s.next()
			if isNameChar(s.peek(0)) || isValidEscape(s.peek(0), s.peek(1)) {
				return s.emit(tokHash, start, s.scanName())
			}
			return s.emit(tokDelim, start, "#")
		case ch == '(':
			s.next()
			return s.emit(tokLParen, start, "(")
		case ch == ')':
			s.next()
			return s.emit(tokRParen, start, ")")
		case ch == '[':
			s.next()
			return s.emit(tokLBrack, start, "[")
		case ch == ']':
			s.next()
			return s.emit(tokRBrack, start, "]")
		case ch == '{':
			s.next()
			return s.emit(tokLBrace, start, "{")
		case ch == '}':
			s.next()
			return s.emit(tokRBrace, start, "}")
		case ch == ',':
			s.next()
			return s.emit(tokComma, start, ",")
		case ch == ':':
			s.next()
			return s.emit(tokColon, start, ":")
		case ch == ';':
			s.next()
			return s.emit(tokSemicolon, start, ";")
		case ch == '+' || ch == '.':
			if s.startsNumber() {
				return s.scanNumeric(start)
			}
			s.next()
			return s.emit(tokDelim, start, string(ch))
		case ch == '-':
			if s.startsNumber() {
				return s.scanNumeric(start)
			}
			if s.startsIdent() {
				return s.scanIdentLike(start)
			}
			s.next()
			return s.emit(tokDelim, start, "-")
		case ch == '\\':
			if isValidEscape(ch, s.peek(1)) {
				return s.scanIdentLike(start)
			}
			s.next()
			return s.emit(tokDelim, start, "\\")
		case isDigit(ch):
			return s.scanNumeric(start)
		case (ch == 'u' || ch == 'U') && s.peek(1) == '+' && (isHexDigit(s.peek(2)) || s.peek(2) == '?'):
			return s.scanUnicodeRange(start)
		case isNameStart(ch):
			return s.scanIdentLike(start)
		}

		s.next()
		return s.emit(tokDelim, start, string(ch))
	}
}

func (s *scanner) emit(kind tokenKind, start int, value string) token {
	return token{kind: kind, value: value, start: start, end: s.pos}
}

func (s *scanner) skipComment() {
	s.pos += 2
	if end := strings.Index(s.src[s.pos:], "*/"); end >= 0 {
		s.pos += end + 2
		return
	}
	s.pos = len(s.src)
}

// scanString consumes a quoted string (§4.3.5)
func (s *scanner) scanString(start int) token {
	ending := s.next()
	var b strings.Builder
	for {
		ch := s.next()
		switch {
		case ch == eof || ch == ending:
			return s.emit(tokString, start, b.String())
		case ch == '\n':
			s.pos--
			return s.emit(tokBadString, start, b.String())
		case ch == '\\':
			switch next := s.peek(0); {
			case next == eof:
			case next == '\n':
				s.next()
			default:
				b.WriteRune(s.scanEscape())
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// scanNumeric consumes a number, percentage or dimension (§4.3.3)
func (s *scanner) scanNumeric(start int) token {
	number, integer := s.scanNumber()
	if s.startsIdent() {
		tok := s.emit(tokDimension, start, s.scanName())
		tok.number, tok.integer = number, integer
		return tok
	}
	if s.peek(0) == '%' {
		s.next()
		tok := s.emit(tokPercentage, start, "%")
		tok.number, tok.integer = number, integer
		return tok
	}
	tok := s.emit(tokNumber, start, "")
	tok.number, tok.integer = number, integer
	return tok
}

func (s *scanner) scanNumber() (float64, bool) {
	begin := s.pos
	integer := true
	if ch := s.peek(0); ch == '+' || ch == '-' {
		s.next()
	}
	for isDigit(s.peek(0)) {
		s.next()
	}
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		integer = false
		s.next()
		for isDigit(s.peek(0)) {
			s.next()
		}
	}
	if ch := s.peek(0); ch == 'e' || ch == 'E' {
		next := s.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.peek(2))) {
			integer = false
			s.next()
			s.next()
			for isDigit(s.peek(0)) {
				s.next()
			}
		}
	}
	f, err := strconv.ParseFloat(s.src[begin:s.pos], 64)
	if err != nil {
		return 0, integer
	}
	return f, integer
}

// scanIdentLike consumes an ident, function or url token (§4.3.4)
func (s *scanner) scanIdentLike(start int) token {
	name := s.scanName()
	if s.peek(0) != '(' {
		return s.emit(tokIdent, start, name)
	}
	s.next()
	if strings.EqualFold(name, "url") {
		save := s.pos
		for isWhitespace(s.peek(0)) {
			s.next()
		}
		if ch := s.peek(0); ch != '"' && ch != '\'' {
			return s.scanURL(start)
		}
		s.pos = save
	}
	return s.emit(tokFunction, start, name)
}

// scanURL consumes the remainder of an unquoted url(...) (§4.3.6)
func (s *scanner) scanURL(start int) token {
	var b strings.Builder
	for {
		ch := s.next()
		switch {
		case ch == ')' || ch == eof:
			return s.emit(tokURL, start, b.String())
		case isWhitespace(ch):
			for isWhitespace(s.peek(0)) {
				s.next()
			}
			if next := s.peek(0); next == ')' || next == eof {
				s.next()
				return s.emit(tokURL, start, b.String())
			}
			s.skipBadURL()
			return s.emit(tokBadURL, start, "")
		case ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch):
			s.skipBadURL()
			return s.emit(tokBadURL, start, "")
		case ch == '\\':
			if isValidEscape(ch, s.peek(0)) {
				b.WriteRune(s.scanEscape())
				continue
			}
			s.skipBadURL()
			return s.emit(tokBadURL, start, "")
		default:
			b.WriteRune(ch)
		}
	}
}

func (s *scanner) skipBadURL() {
	for {
		ch := s.next()
		switch {
		case ch == ')' || ch == eof:
			return
		case ch == '\\' && isValidEscape(ch, s.peek(0)):
			s.scanEscape()
		}
	}
}

// scanUnicodeRange consumes U+XXXX, U+XX?? or U+XXXX-YYYY
func (s *scanner) scanUnicodeRange(start int) token {
	s.next()
	s.next()
	n := 0
	for n < 6 && (isHexDigit(s.peek(0)) || s.peek(0) == '?') {
		s.next()
		n++
	}
	if s.peek(0) == '-' && isHexDigit(s.peek(1)) {
		s.next()
		for n = 0; n < 6 && isHexDigit(s.peek(0)); n++ {
			s.next()
		}
	}
	return s.emit(tokUnicodeRange, start, s.src[start:s.pos])
}

// scanName consumes a name sequence (§4.3.11), resolving escapes
func (s *scanner) scanName() string {
	var b strings.Builder
	for {
		ch := s.peek(0)
		switch {
		case isNameChar(ch):
			s.next()
			b.WriteRune(ch)
		case isValidEscape(ch, s.peek(1)):
			s.next()
			b.WriteRune(s.scanEscape())
		default:
			return b.String()
		}
	}
}

// scanEscape consumes an escaped code point; the backslash is already consumed
func (s *scanner) scanEscape() rune {
	ch := s.next()
	if !isHexDigit(ch) {
		if ch == eof {
			return utf8.RuneError
		}
		return ch
	}
	hex := []rune{ch}
	for len(hex) < 6 && isHexDigit(s.peek(0)) {
		hex = append(hex, s.next())
	}
	if isWhitespace(s.peek(0)) {
		s.next()
	}
	v, err := strconv.ParseUint(string(hex), 16, 32)
	if err != nil || v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return utf8.RuneError
	}
	return rune(v)
}

// startsNumber checks whether the next code points start a number (§4.3.10)
func (s *scanner) startsNumber() bool {
	ch0, ch1 := s.peek(0), s.peek(1)
	switch {
	case ch0 == '+' || ch0 == '-':
		return isDigit(ch1) || (ch1 == '.' && isDigit(s.peek(2)))
	case ch0 == '.':
		return isDigit(ch1)
	}
	return isDigit(ch0)
}

// startsIdent checks whether the next code points start an ident (§4.3.9)
func (s *scanner) startsIdent() bool {
	ch0, ch1 := s.peek(0), s.peek(1)
	switch {
	case ch0 == '-':
		return isNameStart(ch1) || ch1 == '-' || isValidEscape(ch1, s.peek(2))
	case isNameStart(ch0):
		return true
	}
	return isValidEscape(ch0, ch1)
}

func isValidEscape(ch0, ch1 rune) bool {
	return ch0 == '\\' && ch1 != '\n' && ch1 != eof
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isNameStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isNameChar(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

func isNonPrintable(ch rune) bool {
	return (ch >= 0 && ch <= 8) || ch == 0xb || (ch >= 0xe && ch <= 0x1f) || ch == 0x7f
}
