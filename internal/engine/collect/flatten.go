package collect

import (
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

// Flatten walks the graph below root depth first and returns every artifact once.
// Nodes without a dependency, such as the synthetic root, are skipped. When the same
// coordinates occur more than once the first visited occurrence decides the scope.
func Flatten(root *ports.DependencyNode) *domain.ResolvedDependencies {
	out := domain.NewResolvedDependencies()
	if root == nil {
		return out
	}

	visited := make(map[*ports.DependencyNode]struct{})
	stack := []*ports.DependencyNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}

		if d := n.Dependency; d != nil && !d.Artifact.IsZero() {
			scope := d.Scope
			if scope == "" {
				scope = domain.DefaultScope
			}
			out.Add(d.Artifact, scope)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}
