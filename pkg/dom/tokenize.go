package dom

import (
	"fmt"
	gohtml "html"
	"strings"
)

type tokenKind int

const (
	tokenOpen tokenKind = iota
	tokenClose
	tokenText
	tokenEOF
)

// token is one unit of markup as the parser consumes it. Comments, doctype
// declarations, and processing instructions never surface as tokens.
type token struct {
	kind      tokenKind
	name      string
	attrs     map[string]string
	text      string
	selfClose bool
}

// scanner walks an HTML source string once, producing one token per next
// call. It is only as strict as the parser needs: tag and attribute names
// are lowercased, entity references in text are decoded, and whitespace-only
// runs between tags are swallowed.
type scanner struct {
	src string
	i   int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) next() (token, error) {
	for {
		if s.i >= len(s.src) {
			return token{kind: tokenEOF}, nil
		}
		if s.src[s.i] != '<' {
			tok, ok := s.textRun()
			if !ok {
				continue
			}
			return tok, nil
		}
		if s.skipMarkupDecl() {
			continue
		}
		return s.tag()
	}
}

// skipMarkupDecl consumes a comment, doctype declaration, or processing
// instruction at the current position, reporting whether it consumed one.
// An unterminated declaration swallows the rest of the input.
func (s *scanner) skipMarkupDecl() bool {
	rest := s.src[s.i:]
	var closer string
	switch {
	case strings.HasPrefix(rest, "<!--"):
		closer = "-->"
	case strings.HasPrefix(rest, "<?"):
		closer = "?>"
	case strings.HasPrefix(rest, "<!"):
		closer = ">"
	default:
		return false
	}
	if end := strings.Index(rest, closer); end >= 0 {
		s.i += end + len(closer)
	} else {
		s.i = len(s.src)
	}
	return true
}

// textRun consumes up to the next '<'. Runs that are pure whitespace
// (indentation between tags) produce no token.
func (s *scanner) textRun() (token, bool) {
	start := s.i
	if end := strings.IndexByte(s.src[s.i:], '<'); end >= 0 {
		s.i += end
	} else {
		s.i = len(s.src)
	}
	raw := s.src[start:s.i]
	if strings.TrimSpace(raw) == "" {
		return token{}, false
	}
	return token{kind: tokenText, text: gohtml.UnescapeString(foldSpace(raw))}, true
}

// foldSpace collapses each whitespace run to a single space. Boundary runs
// survive as one space so inline flow keeps its word separation.
func foldSpace(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pending := false
	for i := 0; i < len(raw); i++ {
		if isSpaceByte(raw[i]) {
			pending = true
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteByte(raw[i])
	}
	if pending {
		b.WriteByte(' ')
	}
	return b.String()
}

func (s *scanner) tag() (token, error) {
	s.i++ // consume '<'
	closing := false
	if s.i < len(s.src) && s.src[s.i] == '/' {
		closing = true
		s.i++
	}
	name := strings.ToLower(s.takeWhile(isNameByte))
	if name == "" {
		return token{}, fmt.Errorf("malformed tag at offset %d", s.i)
	}

	if closing {
		end := strings.IndexByte(s.src[s.i:], '>')
		if end < 0 {
			return token{}, fmt.Errorf("unterminated </%s>", name)
		}
		s.i += end + 1
		return token{kind: tokenClose, name: name}, nil
	}

	tok := token{kind: tokenOpen, name: name, attrs: make(map[string]string)}
	for {
		s.skipSpace()
		if s.i >= len(s.src) {
			return token{}, fmt.Errorf("unterminated <%s>", name)
		}
		switch s.src[s.i] {
		case '>':
			s.i++
			return tok, nil
		case '/':
			s.i++
			s.skipSpace()
			if s.i < len(s.src) && s.src[s.i] == '>' {
				s.i++
				tok.selfClose = true
				return tok, nil
			}
		default:
			key, val, err := s.attribute()
			if err != nil {
				return token{}, fmt.Errorf("in <%s>: %w", name, err)
			}
			tok.attrs[key] = val
		}
	}
}

// attribute reads one name or name=value pair. A bare name gets the empty
// value, matching how boolean attributes like data-scrollfx-debug are
// written in pages.
func (s *scanner) attribute() (string, string, error) {
	key := strings.ToLower(s.takeWhile(isAttrByte))
	if key == "" {
		return "", "", fmt.Errorf("malformed attribute at offset %d", s.i)
	}
	s.skipSpace()
	if s.i >= len(s.src) || s.src[s.i] != '=' {
		return key, "", nil
	}
	s.i++
	s.skipSpace()
	if s.i >= len(s.src) {
		return "", "", fmt.Errorf("missing value for attribute %q", key)
	}
	if q := s.src[s.i]; q == '"' || q == '\'' {
		s.i++
		end := strings.IndexByte(s.src[s.i:], q)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated value for attribute %q", key)
		}
		val := s.src[s.i : s.i+end]
		s.i += end + 1
		return key, val, nil
	}
	val := s.takeWhile(func(c byte) bool { return !isSpaceByte(c) && c != '>' })
	return key, val, nil
}

// rawText consumes everything up to and including the closing tag of a raw
// text element (script, style), where '<' carries no markup meaning.
func (s *scanner) rawText(name string) string {
	closer := "</" + name + ">"
	end := strings.Index(strings.ToLower(s.src[s.i:]), closer)
	if end < 0 {
		body := s.src[s.i:]
		s.i = len(s.src)
		return body
	}
	body := s.src[s.i : s.i+end]
	s.i += end + len(closer)
	return body
}

func (s *scanner) takeWhile(keep func(byte) bool) string {
	start := s.i
	for s.i < len(s.src) && keep(s.src[s.i]) {
		s.i++
	}
	return s.src[start:s.i]
}

func (s *scanner) skipSpace() {
	for s.i < len(s.src) && isSpaceByte(s.src[s.i]) {
		s.i++
	}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isAttrByte(c byte) bool {
	return isNameByte(c) || c == ':' || c == '.'
}
