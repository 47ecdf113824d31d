package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gorgonia/qttt/game"
	"github.com/logrusorgru/aurora"
	"github.com/muesli/termenv"
)

// au highlights messages. It is replaced by setupColour.
var au = aurora.NewAurora(true)

// setupColour picks the colour profile of the terminal. NO_COLOR and enabled == false force plain text.
func setupColour(enabled bool) {
	profile := termenv.EnvColorProfile()
	if !enabled || termenv.EnvNoColor() {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	au = aurora.NewAurora(profile != termenv.Ascii)
}

var (
	crossStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	noughtStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	lastMoveStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	boardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// render draws the board with row and column numbers. The last move is underlined.
func render(g game.State) string {
	n, _ := g.BoardSize()
	last := g.LastMove().Single
	board := g.Board()

	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < n; col++ {
		sb.WriteString(headerStyle(strconv.Itoa(col % 10)))
		sb.WriteByte(' ')
	}
	for row := 0; row < n; row++ {
		sb.WriteByte('\n')
		sb.WriteString(headerStyle(strconv.Itoa(row % 10)))
		sb.WriteByte(' ')
		for col := 0; col < n; col++ {
			i := row*n + col
			cell := board[i].Mark()
			switch board[i] {
			case game.Black:
				cell = crossStyle(cell)
			case game.White:
				cell = noughtStyle(cell)
			default:
				cell = emptyStyle(cell)
			}
			if game.Single(i) == last {
				cell = lastMoveStyle.Render(cell)
			}
			sb.WriteString(cell)
			sb.WriteByte(' ')
		}
	}
	return boardStyle.Render(sb.String())
}
