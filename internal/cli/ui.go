package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorGreen = lipgloss.Color("35")  // Green - inclusions, owned remotes
	colorRed   = lipgloss.Color("167") // Soft red - exclusions
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleInclude = lipgloss.NewStyle().Foreground(colorGreen)
	styleExclude = lipgloss.NewStyle().Foreground(colorRed)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// printReport dumps the candidate set and the computed revision range:
// the debug view printed before rendering and the output of the range
// subcommand.
func printReport(res *analysis) {
	fmt.Println(styleTitle.Render("Candidates"))
	for _, id := range res.Candidates {
		fmt.Println("  " + styleValue.Render(string(id)))
	}
	fmt.Println(styleTitle.Render("Include"))
	for _, id := range res.Range.Include {
		fmt.Println("  " + styleInclude.Render(string(id)))
	}
	fmt.Println(styleTitle.Render("Exclude"))
	if len(res.Range.Exclude) == 0 {
		fmt.Println("  " + styleDim.Render("(none)"))
	}
	for _, id := range res.Range.Exclude {
		fmt.Println("  " + styleExclude.Render("^"+string(id)))
	}
}

// printRefs lists every classified ref with its origin and target, then the
// per-remote ownership decisions.
func printRefs(res *analysis) {
	fmt.Println(styleTitle.Render("References"))
	for _, ref := range res.Refs {
		origin := ref.Origin.String()
		fmt.Printf("  %-8s %s %s\n",
			styleDim.Render(origin),
			styleValue.Render(ref.Name),
			styleDim.Render(string(ref.Target)))
	}
	if len(res.Owned) == 0 {
		return
	}
	fmt.Println(styleTitle.Render(fmt.Sprintf("Remotes (username %q)", res.Username)))
	for _, remote := range slices.Sorted(maps.Keys(res.Owned)) {
		verdict := styleDim.Render("foreign")
		if res.Owned[remote] {
			verdict = styleInclude.Render("owned")
		}
		fmt.Printf("  %s %s\n", styleValue.Render(remote), verdict)
	}
}
