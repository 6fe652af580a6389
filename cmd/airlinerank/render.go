package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kbukum/airlinerank/aviation"
)

var (
	colorTitle   = lipgloss.Color("#89b4fa")
	colorHeader  = lipgloss.Color("#a6adc8")
	colorText    = lipgloss.Color("#cdd6f4")
	colorMuted   = lipgloss.Color("#7f849c")
	colorWarning = lipgloss.Color("#f38ba8")
	colorValue   = lipgloss.Color("#a6e3a1")
)

// renderRanking formats the ranking as a table headed by the origin.
func renderRanking(origin aviation.Airport, airlines []aviation.Airline, warning *string) string {
	var b strings.Builder

	title := fmt.Sprintf("Airlines from %s", origin.ID)
	if origin.Name != "" {
		title += " (" + origin.Name + ")"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(colorTitle).Bold(true).Render(title))
	b.WriteString("\n")

	if warning != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(colorWarning).Render("warning: " + *warning))
		b.WriteString("\n")
	}

	if len(airlines) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(colorMuted).Render("No airlines depart from this airport."))
		b.WriteString("\n")
		return b.String()
	}

	header := []string{"#", "ID", "AIRLINE", "TOTAL KM"}
	rows := make([][]string, 0, len(airlines))
	for i, a := range airlines {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.ID,
			a.Name,
			formatKm(a.Distance()),
		})
	}
	widths := columnWidths(header, rows)

	headerStyle := lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	b.WriteString(renderRow(header, widths, func(int) lipgloss.Style { return headerStyle }))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(renderRow(row, widths, func(col int) lipgloss.Style {
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorMuted)
			case 3:
				return lipgloss.NewStyle().Foreground(colorValue)
			default:
				return lipgloss.NewStyle().Foreground(colorText)
			}
		}))
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// renderRow pads each cell to its column width. Numeric columns (the first
// and last) are right-aligned.
func renderRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	out := make([]string, len(cells))
	last := len(cells) - 1
	for i, cell := range cells {
		s := style(i).Width(widths[i])
		if i == 0 || i == last {
			s = s.Align(lipgloss.Right)
		}
		out[i] = s.Render(cell)
	}
	return strings.Join(out, "  ")
}

// formatKm renders km with one decimal and thousands separators.
func formatKm(km float64) string {
	s := strconv.FormatFloat(km, 'f', 1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return grouped.String() + "." + frac
}
