package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/laplace/internal/presentation/graph"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
)

// DescribeSignal builds the markdown sheet of a catalog entry evaluated at
// params: formulas, roots and the parameter table.
func DescribeSignal(sig *catalog.Signal, params domain.Params) (string, error) {
	resolved, err := sig.Resolve(params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sig.DisplayName)
	fmt.Fprintf(&b, "`%s`\n\n", sig.ID)
	if sig.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", sig.Description)
	}

	b.WriteString("## Formulas\n\n")
	fmt.Fprintf(&b, "- Time: `%s`\n", sig.FormulaTime)
	fmt.Fprintf(&b, "- Laplace: `%s`\n\n", sig.FormulaLaplace)

	poles, zeros := sig.Model().Roots(resolved)
	b.WriteString("## Roots\n\n")
	fmt.Fprintf(&b, "- Poles (%s): %s\n", sig.Poles, joinRoots(poles))
	fmt.Fprintf(&b, "- Zeros: %s\n\n", joinRoots(zeros))

	b.WriteString("## Parameters\n\n")
	if len(sig.Parameters) == 0 {
		b.WriteString("_None._\n")
		return b.String(), nil
	}
	b.WriteString("| Name | Label | Value | Default | Range | Step |\n")
	b.WriteString("|------|-------|-------|---------|-------|------|\n")
	for _, p := range sig.Parameters {
		fmt.Fprintf(&b, "| %s | %s | %g | %g | [%g, %g] | %g |\n",
			p.Name, p.Label, resolved[p.Name], p.Default, p.Min, p.Max, p.Step)
	}
	return b.String(), nil
}

func joinRoots(roots []complex128) string {
	if len(roots) == 0 {
		return "none"
	}
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = "`" + graph.FormatComplex(r) + "`"
	}
	return strings.Join(parts, ", ")
}
