package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
)

// PlaneRadius is the smallest half-width of the plotted s-plane. It matches
// the surface grid; roots further out widen the view.
const PlaneRadius = 5.0

// GeneratePoleZeroMap produces a Mermaid quadrant chart of the poles and
// zeros of a signal at the given (resolved) params. The vertical midline is
// the imaginary axis: roots left of it decay, roots right of it grow.
func GeneratePoleZeroMap(sig *catalog.Signal, params domain.Params) string {
	poles, zeros := sig.Model().Roots(params)

	radius := PlaneRadius
	for _, r := range append(append([]complex128{}, poles...), zeros...) {
		radius = max(radius, math.Abs(real(r))*1.1, math.Abs(imag(r))*1.1)
	}

	var sb strings.Builder
	sb.WriteString("quadrantChart\n")
	fmt.Fprintf(&sb, "    title %s pole-zero map\n", sanitizeMermaidLabel(sig.DisplayName))
	sb.WriteString("    x-axis Decaying --> Growing\n")
	sb.WriteString("    y-axis Negative frequency --> Positive frequency\n")
	sb.WriteString("    quadrant-1 Unstable\n")
	sb.WriteString("    quadrant-2 Stable\n")
	sb.WriteString("    quadrant-3 Stable\n")
	sb.WriteString("    quadrant-4 Unstable\n")
	fmt.Fprintf(&sb, "    %%%% s-plane half-width %.2f\n", radius)

	writeRoots(&sb, "Pole", poles, radius, "radius: 8, color: #e11d48")
	writeRoots(&sb, "Zero", zeros, radius, "radius: 6, color: #2563eb")
	return sb.String()
}

func writeRoots(sb *strings.Builder, kind string, roots []complex128, radius float64, style string) {
	for i, r := range roots {
		x := (real(r) + radius) / (2 * radius)
		y := (imag(r) + radius) / (2 * radius)
		fmt.Fprintf(sb, "    %%%% %s %d at %s\n", kind, i+1, FormatComplex(r))
		fmt.Fprintf(sb, "    %s %d: [%.4f, %.4f] %s\n", kind, i+1, x, y, style)
	}
}

// FormatComplex renders a root as "σ ± jω".
func FormatComplex(c complex128) string {
	re, im := real(c)+0, imag(c)+0
	switch {
	case im == 0:
		return fmt.Sprintf("%.2f", re)
	case im < 0:
		return fmt.Sprintf("%.2f - j%.2f", re, -im)
	default:
		return fmt.Sprintf("%.2f + j%.2f", re, im)
	}
}

func sanitizeMermaidLabel(s string) string {
	r := strings.NewReplacer(":", " ", "[", "(", "]", ")", "\"", "'", "\n", " ")
	return r.Replace(s)
}
