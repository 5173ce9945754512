// Package newick parses trees in newick format, just enough to
// validate a stored tree and enumerate its leaves.
package newick

import (
	"strconv"
	"strings"

	"github.com/omicsdesk/genomaps/pkg/errors"
)

// ErrParse indicates a malformed newick string
var ErrParse = errors.New("malformed newick tree")

// Node is one vertex of a parsed tree
type Node struct {
	Name     string
	Length   float64
	Children []*Node
}

// IsLeaf tells whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the leaf names in tree order
func (n *Node) Leaves() []string {
	if n.IsLeaf() {
		return []string{n.Name}
	}
	var leaves []string
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}

// NumLeaves counts the leaves of the tree
func (n *Node) NumLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.NumLeaves()
	}
	return count
}

type parser struct {
	input string
	pos   int
}

// Parse reads a single newick tree terminated by a semicolon
func Parse(input string) (*Node, error) {
	p := &parser{input: strings.TrimSpace(input)}
	if p.input == "" {
		return nil, ErrParse.WrapMessage(nil, "empty input")
	}
	root, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.input) || p.input[p.pos] != ';' {
		return nil, ErrParse.WrapMessage(nil, "missing terminating semicolon at offset %d", p.pos)
	}
	p.pos++
	if rest := strings.TrimSpace(p.input[p.pos:]); rest != "" {
		return nil, ErrParse.WrapMessage(nil, "trailing content after tree: %q", rest)
	}
	return root, nil
}

func (p *parser) node() (*Node, error) {
	node := &Node{}
	if p.peek() == '(' {
		p.pos++
		for {
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case ')':
				p.pos++
			default:
				return nil, ErrParse.WrapMessage(nil, "unbalanced parentheses at offset %d", p.pos)
			}
			break
		}
	}
	node.Name = p.label()
	if p.peek() == ':' {
		p.pos++
		length, err := p.length()
		if err != nil {
			return nil, err
		}
		node.Length = length
	}
	return node, nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) label() string {
	if p.peek() == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != '\'' {
			p.pos++
		}
		name := p.input[start:p.pos]
		if p.pos < len(p.input) {
			p.pos++
		}
		return name
	}
	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune("(),:;", rune(p.input[p.pos])) {
		p.pos++
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

func (p *parser) length() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune("(),:;", rune(p.input[p.pos])) {
		p.pos++
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, ErrParse.WrapMessage(err, "branch length at offset %d", start)
	}
	return value, nil
}
