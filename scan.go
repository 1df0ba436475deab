package dns

import (
	"strconv"
	"strings"
)

// ParseError is returned by NewRR and by the per-type RR.parse methods. It
// carries the raw token the lexer stopped at, which keeps the error useful
// without needing a full zone-file line/column tracker.
type ParseError struct {
	err  string
	lex  lex
	name string
}

func (e *ParseError) Error() string {
	var s string
	if e.name != "" {
		s = e.name + ": "
	}
	s += "dns: " + e.err
	if e.lex.token != "" {
		s += ": " + strconv.Quote(e.lex.token)
	}
	return s
}

// token kinds produced by the lexer.
const (
	zEOF = iota
	zString
	zBlank
	zQuote
	zNewline
)

type lex struct {
	token string
	value int
	err   bool
}

// zlexer tokenizes the presentation-format rdata of a single resource
// record. It understands quoted strings, backslash escapes, ';' comments
// and '(' ')' line continuation, same as a zone-file parser would, but is
// only ever driven across one record's worth of text at a time.
type zlexer struct {
	s      string
	pos    int
	paren  int
	comma  bool
	quote  bool
	peeked *lex
}

func newZLexer(s string) *zlexer { return &zlexer{s: s} }

func (z *zlexer) Next() (lex, bool) {
	if z.peeked != nil {
		l := *z.peeked
		z.peeked = nil
		return l, true
	}
	return z.next(), true
}

func (z *zlexer) Peek() lex {
	if z.peeked == nil {
		l := z.next()
		z.peeked = &l
	}
	return *z.peeked
}

func (z *zlexer) next() lex {
	if z.pos >= len(z.s) {
		return lex{value: zEOF}
	}

	c := z.s[z.pos]

	if z.quote && c != '"' {
		// Inside quotes blanks, ';' and parentheses are part of the string.
		var b strings.Builder
		for z.pos < len(z.s) && z.s[z.pos] != '"' {
			if z.s[z.pos] == '\\' && z.pos+1 < len(z.s) {
				b.WriteByte(z.s[z.pos])
				z.pos++
			}
			b.WriteByte(z.s[z.pos])
			z.pos++
		}
		return lex{value: zString, token: b.String()}
	}

	switch {
	case c == '(':
		z.paren++
		z.pos++
		return z.next()
	case c == ')':
		z.paren--
		z.pos++
		return z.next()
	case c == ';':
		for z.pos < len(z.s) && z.s[z.pos] != '\n' {
			z.pos++
		}
		return z.next()
	case c == '\n':
		z.pos++
		if z.paren > 0 {
			return lex{value: zBlank, token: " "}
		}
		return lex{value: zNewline, token: "\n"}
	case c == ' ' || c == '\t':
		for z.pos < len(z.s) && (z.s[z.pos] == ' ' || z.s[z.pos] == '\t') {
			z.pos++
		}
		return lex{value: zBlank, token: " "}
	case c == '"':
		z.pos++
		z.quote = !z.quote
		return lex{value: zQuote, token: "\""}
	default:
		return z.readString()
	}
}

func (z *zlexer) readString() lex {
	var b strings.Builder
	for z.pos < len(z.s) {
		c := z.s[z.pos]
		switch {
		case c == '\\' && z.pos+1 < len(z.s):
			b.WriteByte(c)
			b.WriteByte(z.s[z.pos+1])
			z.pos += 2
		case c == ' ' || c == '\t' || c == '\n' || c == '"' || c == ';' || c == '(' || c == ')':
			return lex{value: zString, token: b.String()}
		default:
			b.WriteByte(c)
			z.pos++
		}
	}
	return lex{value: zString, token: b.String()}
}

// toAbsoluteName turns a presentation-format name into a fully qualified
// one, appending origin to relative names.
func toAbsoluteName(s string, o Name) (Name, bool) {
	name, err := NameFromString(s)
	if err != nil {
		return Name{}, false
	}
	if strings.HasSuffix(s, ".") {
		return name, true
	}
	abs, err := o.Concat(name)
	if err != nil {
		return Name{}, false
	}
	return abs, true
}

// slurpRemainder consumes the rest of the current line and reports an error
// if anything other than blanks remain before the newline/EOF.
func slurpRemainder(c *zlexer) *ParseError {
	l, _ := c.Next()
	for l.value == zBlank {
		l, _ = c.Next()
	}
	if l.value != zNewline && l.value != zEOF {
		return &ParseError{err: "garbage after rdata", lex: l}
	}
	return nil
}

// NewRR parses the presentation-format resource record in s, e.g.
//
//	miek.nl. 3600 IN MX 10 mx.miek.nl.
//
// A leading "$ORIGIN" or "$TTL" directive is not supported; the name must
// always be present and fully or partially qualified against the root.
func NewRR(s string) (RR, error) {
	if len(s) == 0 || s[0] == '\n' {
		return nil, nil
	}
	if s[len(s)-1] != '\n' {
		s += "\n"
	}
	return parseRR(s, mustParseName("."))
}

func parseRR(s string, origin Name) (RR, error) {
	c := newZLexer(s)

	l, _ := c.Next()
	for l.value == zBlank {
		l, _ = c.Next()
	}
	if l.value == zNewline || l.value == zEOF {
		return nil, nil
	}
	if l.value != zString {
		return nil, &ParseError{err: "expecting domain name", lex: l}
	}

	name, err := NameFromString(l.token)
	if err != nil {
		return nil, &ParseError{err: "bad owner name: " + err.Error(), lex: l}
	}
	if !strings.HasSuffix(l.token, ".") {
		name, err = origin.Concat(name)
		if err != nil {
			return nil, &ParseError{err: "bad owner name: " + err.Error(), lex: l}
		}
	}

	l, _ = c.Next()
	if l.value != zBlank {
		return nil, &ParseError{err: "expecting blank after owner name", lex: l}
	}

	ttl := uint32(defaultTtl)
	class := ClassINET

	for {
		l, _ = c.Next()
		if l.value != zString {
			break
		}
		if n, err := strconv.ParseUint(l.token, 10, 32); err == nil {
			ttl = uint32(n)
			l, _ = c.Next() // zBlank
			continue
		}
		if cl, ok := StringToClass[strings.ToUpper(l.token)]; ok {
			class = Class(cl)
			l, _ = c.Next() // zBlank
			continue
		}
		break
	}

	if l.value != zString {
		return nil, &ParseError{err: "expecting RR type", lex: l}
	}
	rrtypeU16, ok := StringToType[strings.ToUpper(l.token)]
	if !ok {
		return nil, &ParseError{err: "unknown RR type", lex: l}
	}
	rrtype := Type(rrtypeU16)

	newFn, ok := TypeToRR[rrtype]
	if !ok {
		newFn = func() RR { return new(RFC3597) }
	}
	rr := newFn()
	*rr.Header() = RR_Header{Name: name, Rrtype: rrtype, Class: class, Ttl: ttl}

	l, _ = c.Next()
	if l.value == zBlank {
		// rdata follows
	} else if l.value == zNewline || l.value == zEOF {
		if _, ok := rr.(*ANY); ok {
			return rr, nil
		}
		if _, ok := rr.(*NULL); ok {
			return rr, nil
		}
		return nil, &ParseError{err: "no rdata for RR with required rdata", lex: l}
	}

	type parser interface {
		parse(c *zlexer, o Name) *ParseError
	}
	p, ok := rr.(parser)
	if !ok {
		return nil, &ParseError{err: "RR type has no presentation-format parser"}
	}
	if perr := p.parse(c, origin); perr != nil {
		return nil, perr
	}
	return rr, nil
}
