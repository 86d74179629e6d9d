package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const probBarW = 24

func (m Model) View() string {
	left := editorStyle.Render(
		titleStyle.Render("Program (.algo)") + "\n\n" + m.editor.View())

	var right strings.Builder
	right.WriteString(titleStyle.Render("BockQSC1090 10-Qubit Dashboard"))
	right.WriteString("\n\n")
	right.WriteString(m.renderProgramResult())
	right.WriteString("\n")
	right.WriteString(m.renderMenu())
	if m.reportTitle != "" {
		right.WriteString("\n")
		right.WriteString(titleStyle.Render(m.reportTitle))
		right.WriteString("\n")
		right.WriteString(m.reportBody)
		right.WriteString("\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, resultStyle.Render(right.String()))

	controls := controlsStyle.Render(
		dimStyle.Render("Tab switch panel  Ctrl+R run program  ⏎ run experiment  q quit"))

	out := body + "\n" + controls
	if m.statusMsg != "" {
		out += "\n" + m.statusMsg
	}
	return out
}

// renderProgramResult shows the last run's bitstring and the per-qubit
// marginal probabilities as horizontal bars.
func (m Model) renderProgramResult() string {
	if m.probs == nil {
		return dimStyle.Render("no program run yet (Ctrl+R)") + "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "measured: %s\n", barStyle.Render(m.bitstring))
	for q, p := range m.probs {
		filled := int(p.Prob1*probBarW + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", probBarW-filled)
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q%d ", q)))
		sb.WriteString(barStyle.Render(bar))
		fmt.Fprintf(&sb, " P(1)=%.3f\n", p.Prob1)
	}
	if m.schedule != nil {
		fmt.Fprintf(&sb, "pulse schedule: %d gates, depth %d, total %s\n",
			len(m.schedule.Gates), m.schedule.Depth, m.schedule.Total)
	}
	return sb.String()
}

// renderMenu renders the experiment launcher list.
func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Experiments"))
	sb.WriteString("\n")
	for i, e := range experiments {
		if m.focus == focusMenu && i == m.menuIdx {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + e.name))
		} else {
			sb.WriteString(menuNormalStyle.Render("   " + e.name))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
