// Package resolver builds the var() dependency graph of the custom
// properties declared in a stylesheet.
package resolver

import (
	"fmt"

	"bennypowers.dev/cssom/internal/collections"
	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/value"
)

// DependencyGraph represents a directed graph of custom property references
type DependencyGraph struct {
	// adjacency list: property name -> properties it references
	dependencies map[string][]string
	// reverse lookup: property name -> properties that reference it
	dependents map[string][]string
	// every declared property
	nodes collections.Set[string]
}

// BuildDependencyGraph builds a dependency graph from custom property
// declarations. A property declared more than once depends on the union of
// the references of its declarations. Values that do not parse contribute
// no edges.
func BuildDependencyGraph(variables []*css.Variable) *DependencyGraph {
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        collections.NewSet[string](),
	}

	edges := make(map[string]collections.Set[string])
	for _, v := range variables {
		graph.nodes.Add(v.Name)
		if edges[v.Name] == nil {
			edges[v.Name] = collections.NewSet[string]()
		}

		parsed, err := css.ParseValue(v.Value)
		if err != nil {
			log.Debug("Skipping references of %s: %v", v.Name, err)
			continue
		}
		for _, ref := range References(parsed) {
			edges[v.Name].Add(ref)
		}
	}

	for name, deps := range edges {
		if len(deps) == 0 {
			continue
		}
		sorted := collections.Sorted(deps)
		graph.dependencies[name] = sorted
		for _, dep := range sorted {
			graph.dependents[dep] = append(graph.dependents[dep], name)
		}
	}

	return graph
}

// References returns the names of every custom property v refers to,
// including references nested in fallbacks and function arguments
func References(v value.Value) []string {
	seen := collections.NewSet[string]()
	var refs []string
	var visit func(value.Value)
	visit = func(v value.Value) {
		switch v := v.(type) {
		case *value.Var:
			if !seen.Has(v.Name) {
				seen.Add(v.Name)
				refs = append(refs, v.Name)
			}
			if v.Fallback != nil {
				visit(v.Fallback)
			}
		case *value.Env:
			if v.Fallback != nil {
				visit(v.Fallback)
			}
		case *value.Attr:
			for _, p := range v.Params {
				visit(p)
			}
		case *value.Function:
			for _, arg := range v.Args {
				visit(arg)
			}
		case *value.List:
			for _, item := range v.Items {
				visit(item)
			}
		}
	}
	visit(v)
	return refs
}

// GetDependencies returns the properties the given property references
func (g *DependencyGraph) GetDependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return deps
	}
	return []string{}
}

// GetDependents returns the properties that reference the given property
func (g *DependencyGraph) GetDependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular reference
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns a cycle path if one exists, or nil if no cycle.
// The path starts and ends with the same property.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range collections.Sorted(g.nodes) {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}

	return nil
}

// findCycleDFS finds a cycle and returns the path
func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		// node is on the path, since it is pushed right after recStack is set
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		cycle := append([]string{}, path[cycleStart:]...)
		return append(cycle, node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// Cyclic returns every property that lies on a reference cycle. Such
// properties are invalid at computed-value time.
func (g *DependencyGraph) Cyclic() collections.Set[string] {
	cyclic := collections.NewSet[string]()
	for node := range g.nodes {
		if g.reaches(node, node) {
			cyclic.Add(node)
		}
	}
	return cyclic
}

// reaches reports whether target is reachable from the dependencies of start
func (g *DependencyGraph) reaches(start, target string) bool {
	visited := collections.NewSet[string]()
	stack := append([]string{}, g.dependencies[start]...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == target {
			return true
		}
		if visited.Has(node) {
			continue
		}
		visited.Add(node)
		stack = append(stack, g.dependencies[node]...)
	}
	return false
}

// TopologicalSort returns properties in dependency order (dependencies
// first). References to undeclared properties are not included.
// Returns an error if the graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, NewCircularReferenceError(cycle)
	}

	visited := make(map[string]bool)
	result := []string{}

	for _, node := range collections.Sorted(g.nodes) {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

// topologicalSortDFS performs DFS for topological sort
func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	// undeclared references are leaves outside the stylesheet
	if g.nodes.Has(node) {
		*stack = append(*stack, node)
	}
}
