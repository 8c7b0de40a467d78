// Package report prints a short terminal summary of cut trees.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
	"github.com/KyungWonPark/corrdendro/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

// Summary renders one line per group: a colored token and its size.
func Summary(variant string, t *cluster.Tree, p *cluster.Partition, palette render.Palette) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		titleStyle.Render(variant),
		dimStyle.Render(fmt.Sprintf("(%s, %d leaves, max distance %.4g)", t.Method, t.Leaves(), t.MaxDistance())))

	width := 0
	for _, g := range p.Groups {
		if w := lipgloss.Width(g.Token); w > width {
			width = w
		}
	}

	for _, g := range p.Groups {
		token := lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Hex(g.Token))).
			Width(width).
			Render(g.Token)
		fmt.Fprintf(&b, "  %s %d\n", token, len(g.Members))
	}

	return b.String()
}
