package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing stylesheets with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		return NewParser()
	},
}

// NewParser creates a new CSS parser. Prefer AcquireParser.
func NewParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(cssLang); err != nil {
		panic(fmt.Sprintf("failed to set CSS language: %v", err))
	}
	return &Parser{parser: parser}
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Parse parses a stylesheet and extracts custom property declarations,
// var() calls and @property rules
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, ErrParseFailed
	}
	defer tree.Close()

	w := &walker{
		source: src,
		index:  position.NewIndex(source),
		result: &ParseResult{
			Variables:  []*Variable{},
			VarCalls:   []*VarCall{},
			Properties: []*PropertyRule{},
		},
	}
	w.walk(tree.RootNode())

	log.Debug("Parsed stylesheet: %d custom properties, %d var() calls, %d @property rules",
		len(w.result.Variables), len(w.result.VarCalls), len(w.result.Properties))

	return w.result, nil
}

// walker carries the state of one Parse call
type walker struct {
	source []byte
	index  *position.Index
	result *ParseResult
}

func (w *walker) text(node *sitter.Node) string {
	return string(w.source[node.StartByte():node.EndByte()])
}

// position converts a tree-sitter point, whose column counts bytes, to UTF-16
func (w *walker) position(p sitter.Point) Position {
	return Position{
		Line:      uint32(p.Row),
		Character: w.index.Column(p.Row, p.Column),
	}
}

func (w *walker) rangeOf(node *sitter.Node) Range {
	return Range{
		Start: w.position(node.StartPosition()),
		End:   w.position(node.EndPosition()),
	}
}

// walk recursively walks the tree to find declarations, var() calls and @property rules
func (w *walker) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "declaration":
		w.handleDeclaration(node)
	case "call_expression":
		w.handleCallExpression(node)
	case "at_rule":
		w.handleAtRule(node)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(i))
	}
}

// declarationParts returns the property name node and the value node span,
// which runs from after the colon to before any !important or semicolon
func (w *walker) declarationParts(node *sitter.Node) (name *sitter.Node, start, end *sitter.Node) {
	afterColon := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch kind := child.Kind(); {
		case kind == "property_name":
			name = child
		case kind == ":":
			afterColon = true
		case kind == ";" || kind == "important":
			return name, start, end
		case afterColon:
			if start == nil {
				start = child
			}
			end = child
		}
	}
	return name, start, end
}

// handleDeclaration records custom property declarations
func (w *walker) handleDeclaration(node *sitter.Node) {
	nameNode, start, end := w.declarationParts(node)
	if nameNode == nil {
		return
	}

	name := w.text(nameNode)
	if !strings.HasPrefix(name, "--") {
		return
	}

	variable := &Variable{
		Name:  name,
		Type:  VariableDeclaration,
		Range: w.rangeOf(node),
	}
	if start != nil {
		variable.Value = strings.TrimSpace(string(w.source[start.StartByte():end.EndByte()]))
		variable.ValueRange = Range{
			Start: w.position(start.StartPosition()),
			End:   w.position(end.EndPosition()),
		}
	}

	w.result.Variables = append(w.result.Variables, variable)
}

// handleCallExpression records var() calls
func (w *walker) handleCallExpression(node *sitter.Node) {
	var functionNameNode, argumentsNode *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function_name":
			functionNameNode = child
		case "arguments":
			argumentsNode = child
		}
	}

	if functionNameNode == nil || argumentsNode == nil {
		return
	}
	if !strings.EqualFold(w.text(functionNameNode), "var") {
		return
	}

	// The name is the first argument; everything after the first comma,
	// nested commas included, is the fallback.
	var name string
	var fallback *string
	var comma *sitter.Node
	var closing *sitter.Node
	for i := uint(0); i < argumentsNode.ChildCount(); i++ {
		child := argumentsNode.Child(i)
		switch child.Kind() {
		case "(":
		case ")":
			closing = child
		case ",":
			if comma == nil {
				comma = child
			}
		default:
			if name == "" && comma == nil {
				name = strings.TrimSpace(w.text(child))
			}
		}
	}

	if name == "" {
		return
	}
	if comma != nil {
		endByte := argumentsNode.EndByte()
		if closing != nil {
			endByte = closing.StartByte()
		}
		fb := strings.TrimSpace(string(w.source[comma.EndByte():endByte]))
		fallback = &fb
	}

	w.result.VarCalls = append(w.result.VarCalls, &VarCall{
		Name:     name,
		Fallback: fallback,
		Type:     VarReference,
		Range:    w.rangeOf(node),
	})
}

// handleAtRule records @property rules and their descriptors
func (w *walker) handleAtRule(node *sitter.Node) {
	var keyword, block *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "at_keyword":
			keyword = child
		case "block":
			block = child
		}
	}
	if keyword == nil || block == nil || !strings.EqualFold(w.text(keyword), "@property") {
		return
	}

	rule := &PropertyRule{
		Name:  strings.TrimSpace(string(w.source[keyword.EndByte():block.StartByte()])),
		Range: w.rangeOf(node),
	}

	for i := uint(0); i < block.ChildCount(); i++ {
		child := block.Child(i)
		if child.Kind() != "declaration" {
			continue
		}
		nameNode, start, end := w.declarationParts(child)
		if nameNode == nil {
			continue
		}
		text := ""
		if start != nil {
			text = strings.TrimSpace(string(w.source[start.StartByte():end.EndByte()]))
		}
		switch strings.ToLower(w.text(nameNode)) {
		case "syntax":
			unquoted := unquote(text)
			rule.Syntax = &unquoted
		case "inherits":
			rule.Inherits = &text
		case "initial-value":
			rule.InitialValue = &text
		}
	}

	w.result.Properties = append(w.result.Properties, rule)
}

// unquote strips one pair of matching quotes
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
