package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
)

const minColumnWidth = 6

// ConsoleExporter реализует интерфейс Exporter для вывода таблиц в консоль.
// Ширина колонок считается в ячейках терминала, поэтому эмодзи и CJK в именах
// не ломают выравнивание.
type ConsoleExporter struct {
	out   io.Writer
	width int
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter.
func NewConsoleExporter(out io.Writer, width int) ports.Exporter {
	return &ConsoleExporter{out: out, width: width}
}

// ExportSkins выводит каталог скинов таблицей.
func (e *ConsoleExporter) ExportSkins(skins []domain.Skin) error {
	fmt.Fprintln(e.out, "--- Community Skins ---")
	if len(skins) == 0 {
		fmt.Fprintln(e.out, "No skins found.")
		return nil
	}

	rows := make([][]string, 0, len(skins))
	for i, s := range skins {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, s.Author, s.Version, s.URL})
	}
	return e.writeTable([]string{"#", "NAME", "AUTHOR", "VERSION", "URL"}, rows)
}

// ExportStats выводит счетчики репозиториев.
func (e *ConsoleExporter) ExportStats(stats []domain.RepoStats) error {
	fmt.Fprintln(e.out, "--- Repositories ---")
	if len(stats) == 0 {
		fmt.Fprintln(e.out, "No repositories configured.")
		return nil
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Stars), strconv.Itoa(s.Forks), s.Language})
	}
	return e.writeTable([]string{"REPOSITORY", "STARS", "FORKS", "LANGUAGE"}, rows)
}

func (e *ConsoleExporter) writeTable(header []string, rows [][]string) error {
	widths := columnWidths(header, rows)
	fitWidths(widths, e.width)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(header, widths))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths))
	}

	_, err := io.WriteString(e.out, strings.Join(lines, "\n")+"\n")
	return err
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// fitWidths сужает самую широкую колонку, пока таблица не влезет в total.
func fitWidths(widths []int, total int) {
	if total <= 0 {
		return
	}
	sep := 2 * (len(widths) - 1)
	for {
		sum := sep
		widest := 0
		for i, w := range widths {
			sum += w
			if w > widths[widest] {
				widest = i
			}
		}
		if sum <= total || widths[widest] <= minColumnWidth {
			return
		}
		widths[widest] = max(widths[widest]-(sum-total), minColumnWidth)
	}
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		cell = runewidth.Truncate(cell, widths[i], "…")
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.Join(parts, "  ")
}
