package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/semgraph/pkg/analysis"
	"github.com/dd0wney/semgraph/pkg/criticality"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	criticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F87"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))
)

// renderReport formats a report for the terminal. Each list is cut to top
// rows; top <= 0 prints everything.
func renderReport(r *analysis.Report, top int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Semantic graph analysis"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("run %s  %s", r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf(
		"Facts: %d\nNodes: %d\nEdges: %d\nComponents: %d\nTopic clusters: %d\nCritical entities: %d",
		r.Graph.Facts, r.Graph.Nodes, r.Graph.Edges,
		len(r.Components), len(r.TopicClusters), r.CriticalCount(),
	)
	b.WriteString(statsBoxStyle.Render(stats))
	b.WriteString("\n")

	section(&b, "Bridge entities")
	if len(r.Bridges) == 0 {
		none(&b)
	}
	for _, n := range limit(r.Bridges, top) {
		fmt.Fprintf(&b, "  %-32s %.3f\n", n.Term, n.Score)
	}

	section(&b, "Structural holes")
	holes := append(append([]analysis.Hole{}, r.Holes...), r.TopicHoles...)
	if len(holes) == 0 {
		none(&b)
	}
	for _, h := range limit(holes, top) {
		fmt.Fprintf(&b, "  [%s] %.3f  %s  <->  %s\n",
			h.BridgeType, h.Strength, joinTerms(h.TermsA), joinTerms(h.TermsB))
		if h.CandidateA != nil && h.CandidateB != nil {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("      bridge via %s and %s", h.CandidateA.Term, h.CandidateB.Term)))
			b.WriteString("\n")
		}
	}

	if total := r.HoleCount + r.TopicHoleCount; total > len(holes) || (top > 0 && len(holes) > top) {
		shown := len(limit(holes, top))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  showing %d of %d holes", shown, max(total, len(holes)))))
		b.WriteString("\n")
	}

	section(&b, "Criticality")
	if len(r.Criticality) == 0 {
		none(&b)
	}
	for _, c := range limit(r.Criticality, top) {
		line := fmt.Sprintf("  %-32s %.3f", c.Entity, c.Score)
		if c.Critical {
			line = criticalStyle.Render(line + "  critical")
		}
		b.WriteString(line)
		if c.Verification != criticality.StatusUnverified {
			fmt.Fprintf(&b, "  (%s)", c.Verification)
		}
		b.WriteString("\n")
	}

	section(&b, "Cannibalization risk")
	pairs(&b, r.Cannibalization, top)

	section(&b, "Link candidates")
	pairs(&b, r.LinkCandidates, top)

	if len(r.Graph.Ambiguous) > 0 {
		section(&b, "Ambiguous entities")
		for _, term := range limit(r.Graph.Ambiguous, top) {
			fmt.Fprintf(&b, "  %s\n", term)
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
}

func none(b *strings.Builder) {
	b.WriteString(mutedStyle.Render("  none"))
	b.WriteString("\n")
}

func pairs(b *strings.Builder, ps []analysis.Pair, top int) {
	if len(ps) == 0 {
		none(b)
		return
	}
	for _, p := range limit(ps, top) {
		fmt.Fprintf(b, "  %-24s %-24s %.3f  (J=%.2f W=%.2f C=%d)\n",
			p.A, p.B, p.Distance, p.Signals.Jaccard, p.Signals.ContextWeight, p.Signals.Cooccurrence)
	}
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

func joinTerms(terms []string) string {
	const maxShown = 4
	if len(terms) <= maxShown {
		return strings.Join(terms, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(terms[:maxShown], ", "), len(terms)-maxShown)
}
