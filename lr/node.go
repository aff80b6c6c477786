package lr

import (
	"fmt"

	"github.com/npillmayer/lrcalc"
)

// Node is a node of the parse tree built by a parser. Terminal nodes carry
// the token they have been created from. Every node carries the semantic
// value computed for it; for terminals this is the lexeme as a string,
// unless the token provides a value itself.
//
// A node is owned by its parent. The root node is handed to the client after
// a successful parse.
type Node struct {
	Symbol   *Symbol
	Value    lrcalc.Value
	Token    lrcalc.Token // nil for non-terminals
	Span     lrcalc.Span
	Children []*Node
}

// Leaf creates a terminal node from a token.
func Leaf(A *Symbol, token lrcalc.Token) *Node {
	n := &Node{Symbol: A, Token: token}
	if token != nil {
		n.Span = token.Span()
		if v, ok := token.Value().(lrcalc.Value); ok {
			n.Value = v
		} else {
			n.Value = lrcalc.String(token.Lexeme())
		}
	}
	return n
}

// IsLeaf is true for terminal nodes.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// Lexeme returns the lexeme of a terminal node, or "".
func (n *Node) Lexeme() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Lexeme()
}

// Tokens returns the tokens covered by n, from left to right.
func (n *Node) Tokens() []lrcalc.Token {
	var toks []lrcalc.Token
	n.Walk(func(node *Node, depth int) {
		if node.Token != nil {
			toks = append(toks, node.Token)
		}
	})
	return toks
}

// Walk visits n and its descendents in pre-order, calling f with the
// depth of each node (0 for n).
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

func (n *Node) String() string {
	if n.Token != nil {
		return fmt.Sprintf("%s %q", n.Symbol, n.Token.Lexeme())
	}
	return fmt.Sprintf("%s = %s", n.Symbol, n.Value)
}
