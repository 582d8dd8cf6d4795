package vmf

import (
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports an unparseable document: unmatched braces, an
// unterminated quoted string, or a stray token. Line numbers are 1-based.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("vmf: line %d: %s", e.Line, e.Message)
}

// token kinds produced by the lexer.
const (
	tokEOF = iota
	tokString // quoted or bare token
	tokOpen
	tokClose
)

type token struct {
	kind int
	text string
	line int
}

// lexer splits VMF text into quoted strings, bare words, braces and
// nothing else. // comments run to end of line. Quoted strings carry no
// escape sequences; they end at the next double quote.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '{':
			l.pos++
			return token{kind: tokOpen, line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokClose, line: l.line}, nil
		case c == '"':
			start := l.pos + 1
			startLine := l.line
			i := start
			for i < len(l.src) && l.src[i] != '"' {
				if l.src[i] == '\n' {
					l.line++
				}
				i++
			}
			if i >= len(l.src) {
				return token{}, &SyntaxError{Line: startLine, Message: "unterminated quoted string"}
			}
			l.pos = i + 1
			return token{kind: tokString, text: l.src[start:i], line: startLine}, nil
		default:
			start := l.pos
			i := start
			for i < len(l.src) && !strings.ContainsRune(" \t\r\n{}\"", rune(l.src[i])) {
				i++
			}
			l.pos = i
			return token{kind: tokString, text: l.src[start:i], line: l.line}, nil
		}
	}
	return token{kind: tokEOF, line: l.line}, nil
}

// Parse reads a whole VMF document and returns its root node. The root is
// anonymous; top-level blocks are its children. Parse is a pure function of
// the input text.
func Parse(r io.Reader) (*Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vmf: read input: %w", err)
	}
	return ParseString(string(b))
}

// ParseString parses VMF text. See Parse.
func ParseString(src string) (*Node, error) {
	l := newLexer(src)
	root := &Node{}
	if err := parseBody(l, root, true); err != nil {
		return nil, err
	}
	return root, nil
}

// parseBody fills n with properties and child blocks until the closing
// brace (or EOF when topLevel).
func parseBody(l *lexer, n *Node, topLevel bool) error {
	for {
		tok, err := l.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			if !topLevel {
				return &SyntaxError{Line: tok.line, Message: fmt.Sprintf("unexpected end of input inside block %q", n.Name)}
			}
			return nil
		case tokClose:
			if topLevel {
				return &SyntaxError{Line: tok.line, Message: "unmatched '}'"}
			}
			return nil
		case tokOpen:
			return &SyntaxError{Line: tok.line, Message: "unexpected '{' without a block name"}
		case tokString:
			// A name token starts either a property (followed by a value
			// token) or a child block (followed by '{').
			next, err := l.next()
			if err != nil {
				return err
			}
			switch next.kind {
			case tokString:
				n.Add(tok.text, next.text)
			case tokOpen:
				child := &Node{Name: tok.text}
				if err := parseBody(l, child, false); err != nil {
					return err
				}
				n.AddChild(child)
			case tokClose:
				return &SyntaxError{Line: next.line, Message: fmt.Sprintf("key %q has no value", tok.text)}
			case tokEOF:
				return &SyntaxError{Line: next.line, Message: fmt.Sprintf("unexpected end of input after %q", tok.text)}
			}
		}
	}
}
