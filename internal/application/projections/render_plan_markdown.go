package projections

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var planMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderPlanMarkdown renders a plan detail as a markdown document: one
// heading per week, one exercise table per workout day.
func RenderPlanMarkdown(detail PlanDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", escapeCell(detail.Name))

	for _, wk := range detail.Weeks {
		fmt.Fprintf(&b, "\n## %s\n", escapeCell(wk.Name))
		for _, wo := range wk.Workouts {
			fmt.Fprintf(&b, "\n### %s\n\n", escapeCell(wo.Name))
			if len(wo.Exercises) == 0 {
				b.WriteString("_Rest day: no exercises planned._\n")
				continue
			}
			b.WriteString("| Exercise | Categories | Sets | Target RIR | Notes |\n")
			b.WriteString("|---|---|---|---|---|\n")
			for _, ex := range wo.Exercises {
				fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
					escapeCell(ex.Name),
					escapeCell(ex.Categories),
					ex.Sets,
					formatRIR(ex.TargetRIR),
					escapeCell(ex.Notes))
			}
		}
	}
	return b.String()
}

// RenderPlanHTML converts the markdown rendering to HTML for email and the
// web detail page.
func RenderPlanHTML(detail PlanDetail) (string, error) {
	var buf bytes.Buffer
	if err := planMarkdown.Convert([]byte(RenderPlanMarkdown(detail)), &buf); err != nil {
		return "", fmt.Errorf("render plan html: %w", err)
	}
	return buf.String(), nil
}

// escapeCell keeps user text from breaking the table syntax.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func formatRIR(rirs []int) string {
	parts := make([]string, len(rirs))
	for i, r := range rirs {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, ", ")
}
