package css_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// TestTreeSitterPropertyRule checks the node kinds the stylesheet walker
// relies on for @property rules
func TestTreeSitterPropertyRule(t *testing.T) {
	cssCode := `@property --gap {
  syntax: '<length>';
  initial-value: 0px;
}`

	parser := sitter.NewParser()
	defer parser.Close()
	require.NoError(t, parser.SetLanguage(sitter.NewLanguage(tree_sitter_css.Language())))

	tree := parser.Parse([]byte(cssCode), nil)
	require.NotNil(t, tree, "Failed to parse CSS")
	defer tree.Close()

	kinds := map[string]bool{}
	collectKinds(t, tree.RootNode(), []byte(cssCode), 0, kinds)

	for _, kind := range []string{"at_rule", "at_keyword", "block", "declaration", "property_name"} {
		require.True(t, kinds[kind], "expected a %s node", kind)
	}
}

func collectKinds(t *testing.T, node *sitter.Node, source []byte, depth int, kinds map[string]bool) {
	if node == nil {
		return
	}
	kinds[node.Kind()] = true

	nodeText := string(source[node.StartByte():node.EndByte()])
	if len(nodeText) > 50 {
		nodeText = nodeText[:50] + "..."
	}
	t.Logf("%s%s: %q", strings.Repeat("  ", depth), node.Kind(), nodeText)

	for i := uint(0); i < node.ChildCount(); i++ {
		collectKinds(t, node.Child(i), source, depth+1, kinds)
	}
}
