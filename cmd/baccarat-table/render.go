package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/chips"
	"github.com/weedbox/baccarattable/internal/script"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	bankerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pushStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderReport(w io.Writer, report *script.Report, showLog bool) {
	table := report.Table

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%s)", table.Meta.Name, table.Meta.Rules.Mode.DisplayName())))
	for _, result := range report.Results {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Round %d: %s", result.GameCount, result.Winner.DisplayName())))
		for _, line := range result.Lines {
			fmt.Fprintln(w, "  "+styleLine(line))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Balances"))
	banker := table.CurrentBanker()
	for _, player := range table.State.PlayerStates {
		name := player.PlayerID
		if name == banker {
			name = bankerStyle.Render(name + " (banker)")
		}
		fmt.Fprintf(w, "  %-24s $%s\n", name, player.Balance.StringFixed(2))
	}
	if table.IsRotatingBanker() {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  Bank limit: $%s", table.State.BankLimit.StringFixed(2))))
	}

	if showLog {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Activity Log"))
		for _, line := range table.State.ActivityLog {
			fmt.Fprintln(w, "  "+mutedStyle.Render(line))
		}
	}
}

func renderBreakdown(w io.Writer, amount decimal.Decimal, breakdown chips.Breakdown) {
	text := breakdown.String()
	if breakdown.IsEmpty() {
		text = mutedStyle.Render("nothing to pay")
	}
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("$"+amount.StringFixed(2)+":"), text)
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "BANKER"):
		return bankerStyle.Render(line)
	case strings.Contains(line, ": WON"):
		return winStyle.Render(line)
	case strings.Contains(line, ": LOST"):
		return lossStyle.Render(line)
	case strings.Contains(line, ": PUSH"):
		return pushStyle.Render(line)
	default:
		return line
	}
}
