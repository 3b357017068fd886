package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	positiveStyle = cellStyle.
			Foreground(lipgloss.Color("#96CEB4"))

	negativeStyle = cellStyle.
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// netColumn is the index of the signed net/round column.
const netColumn = 3

func renderSummary(res *simulator.Result, seed int64) string {
	rows := make([][]string, 0, len(res.Players))
	for _, p := range res.Players {
		lo, hi := p.Net.ConfidenceInterval95()
		o := p.Outcomes
		rows = append(rows, []string{
			p.Name,
			p.Strategy,
			fmt.Sprintf("%d", p.Net.Rounds),
			fmt.Sprintf("%+.3f", p.Net.Mean()),
			fmt.Sprintf("[%+.3f, %+.3f]", lo, hi),
			fmt.Sprintf("%.1f", p.Survived.Mean()),
			percent(p.Busted, p.Final.Rounds),
			fmt.Sprintf("%.1f", p.Final.Mean()),
			fmt.Sprintf("%.1f", p.Final.Median()),
			fmt.Sprintf("%.1f%%", 100*o.Rate(o.Wins)),
			fmt.Sprintf("%.1f%%", 100*o.Rate(o.Pushes)),
			fmt.Sprintf("%.1f%%", 100*o.Rate(o.Blackjacks)),
			fmt.Sprintf("%.1f%%", 100*o.Rate(o.Busts)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Player", "Strategy", "Rounds", "Net/round", "95% CI", "Survival", "Broke", "Final", "Median", "Win", "Push", "BJ", "Bust").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == netColumn && row >= 0 && row < len(rows) {
				if strings.HasPrefix(rows[row][col], "-") {
					return negativeStyle
				}
				return positiveStyle
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(titleStyle.Render(" Simulation results "))
	b.WriteString("\n\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d sessions, %d rounds, %d timed out, seed %d, %s",
		len(res.Sessions), res.Rounds, res.TimedOut, seed, res.Elapsed.Round(time.Millisecond))))
	return b.String()
}

func renderBanks(players []*game.Player, rounds int) string {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{fmt.Sprintf("%d", p.ID), p.Name, fmt.Sprintf("%d", p.Bank)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "Player", "Bank").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return titleStyle.Render(fmt.Sprintf(" Game over after %d rounds ", rounds)) + "\n\n" + t.Render()
}

func percent(n, of int) string {
	if of == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(of))
}
