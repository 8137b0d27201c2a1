// Package dump writes and reads the flat text files a run leaves behind:
// brace-delimited nested lists in the style consumed by notebook tooling,
// plus optional PNG renderings.
package dump

import (
	"fmt"
	"strings"
)

// node is either a list of nodes or a scalar token.
type node struct {
	list   []node
	scalar string
	isList bool
}

// parseNested parses text such as "{{1,0},{0,1}}" into a node tree.
// Whitespace is ignored and a trailing comma before a closing brace is allowed.
func parseNested(text string) (node, error) {
	p := &nestedParser{src: text}
	p.skipSpace()
	n, err := p.parse()
	if err != nil {
		return node{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return node{}, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return n, nil
}

type nestedParser struct {
	src string
	pos int
}

func (p *nestedParser) skipSpace() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *nestedParser) parse() (node, error) {
	if p.pos >= len(p.src) {
		return node{}, fmt.Errorf("unexpected end of input")
	}
	if p.src[p.pos] != '{' {
		start := p.pos
		for p.pos < len(p.src) && !strings.ContainsRune("{},\t\r\n ", rune(p.src[p.pos])) {
			p.pos++
		}
		if p.pos == start {
			return node{}, fmt.Errorf("expected value at offset %d", start)
		}
		return node{scalar: p.src[start:p.pos]}, nil
	}

	p.pos++ // '{'
	n := node{isList: true}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return node{}, fmt.Errorf("unclosed brace")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return n, nil
		}
		child, err := p.parse()
		if err != nil {
			return node{}, err
		}
		n.list = append(n.list, child)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.pos < len(p.src) && p.src[p.pos] == '}' {
			continue
		}
		return node{}, fmt.Errorf("expected ',' or '}' at offset %d", p.pos)
	}
}
