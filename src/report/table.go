package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/DesmondYau/latencyviz/src/latency"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// SummaryTable renders summaries as a bordered terminal table.
func SummaryTable(sums []latency.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SOURCE", "TYPE", "ROWS", "KEPT", "EXCLUDED", "MEDIAN (ns)", "VARIANCE", "MEAN (ns)").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, s := range sums {
		typ := s.OrderType
		if typ == "" {
			typ = "all"
		}
		t.Row(
			s.Source,
			typ,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Kept),
			strconv.Itoa(s.Excluded),
			formatStat(s.Median),
			formatStat(s.Variance),
			formatStat(s.Mean),
		)
	}
	return t.String()
}

// Table renders the report's per-input summaries.
func Table(r *Report) string {
	return SummaryTable(r.Summaries())
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.1f", v)
}
