/*
Package parser provides the crisp reader.

	expr    := '(' <expr>* ')' | ''' <expr> | ',' <expr> | <number> | <symbol>
	number  := /[+-]?[0-9]+/
	symbol  := /[^[:space:]()',;]+/ starting with a letter or operator rune
*/
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nonk123/crisp/crisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQExpr
	nodeUExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQExpr:   "QEXPR",
	nodeUExpr:   "UEXPR",
}

// ParseCVal parses CVal values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in
// parsing.
func ParseCVal(text []byte) ([]*crisp.CVal, int, error) {
	var v []*crisp.CVal
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		cv := getCVal(root)
		if cv != nil {
			v = append(v, cv)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return v, s.GetCursor(), io.ErrUnexpectedEOF
	}
	return v, s.GetCursor(), nil
}

// NewReader returns a crisp.Reader backed by ParseCVal.
func NewReader() crisp.Reader {
	return &reader{}
}

type reader struct{}

func (*reader) Read(name string, r io.Reader) ([]*crisp.CVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v, n, err := ParseCVal(text)
	if err != nil {
		return nil, fmt.Errorf("%s: offset %d: %w", name, n, err)
	}
	return v, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	u := parsec.Atom(",", "UNQUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	decimal := parsec.Token(`[+-]?[0-9]+`, "DECIMAL")
	symbol := parsec.Token(`(?:\pL|[_+\-*/\=<>!&~%?])(?:\pL|[0-9]|[_+\-*/\=<>!&~%?.])*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		decimal,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	qexpr := parsec.And(astNode(nodeQExpr), q, &expr)
	uexpr := parsec.And(astNode(nodeUExpr), u, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, qexpr, uexpr)
	return expr
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return nil
		}
		switch term.Name {
		case "DECIMAL":
			x, err := strconv.Atoi(term.Value)
			if err != nil {
				return crisp.Errorf(crisp.ErrnoMalformed, "bad number: %v (%s)", err, term.Value)
			}
			return crisp.Number(x)
		case "SYMBOL":
			if term.Value == crisp.NilSymbol {
				return crisp.Nil()
			}
			return crisp.Symbol(term.Value)
		}
		return nil
	case nodeSExpr:
		// We don't want the terminal parsec nodes '(' and ')'
		var cells []*crisp.CVal
		for _, c := range nodes {
			if cv, ok := c.(*crisp.CVal); ok {
				cells = append(cells, cv)
			}
		}
		return crisp.SExpr(cells...)
	case nodeQExpr:
		return crisp.Quote(nodes[1].(*crisp.CVal))
	case nodeUExpr:
		return crisp.Unquote(nodes[1].(*crisp.CVal))
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getCVal(root parsec.ParsecNode) *crisp.CVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only whitespace on a line
		return nil
	}
	cv, ok := nodes[0].(*crisp.CVal)
	if !ok {
		// we can be here if there is only a comment on a line
		return nil
	}
	return cv
}
