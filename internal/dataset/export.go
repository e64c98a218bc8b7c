package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"pokedex-insights-go/internal/aggregator"
	"pokedex-insights-go/internal/insights"
	"pokedex-insights-go/internal/types"
)

const (
	SheetPokemon  = "Pokemon"
	SheetTypes    = "Types"
	SheetStats    = "Stats"
	SheetInsights = "Insights"
)

var pokemonHeader = func() []any {
	h := []any{"ID", "Name", "Types", "Height (dm)", "Weight (hg)", "Base XP"}
	for _, s := range types.CanonicalStats {
		h = append(h, s.Label())
	}
	return h
}()

// Export writes the records and their aggregate to w as an xlsx workbook.
// Sheets: Pokemon (one row per record), Types (ranked counts), Stats
// (averages) and, for a non-empty collection, Insights.
func Export(w io.Writer, records []types.Pokemon) error {
	f, err := build(records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportFile is Export to a path.
func ExportFile(path string, records []types.Pokemon) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := Export(out, records); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func build(records []types.Pokemon) (*excelize.File, error) {
	res := aggregator.Aggregate(records)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetPokemon); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("style: %w", err)
	}

	rows := [][]any{pokemonHeader}
	for _, p := range records {
		row := []any{p.ID, p.Name, strings.Join(p.Types, "/"), p.Height, p.Weight, ""}
		if p.BaseExperience != nil {
			row[5] = *p.BaseExperience
		}
		for _, s := range types.CanonicalStats {
			if v, ok := p.StatValue(s); ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, SheetPokemon, rows, bold); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{{"Type", "Count"}}
	for _, tc := range res.TypeFrequency.Ranked() {
		rows = append(rows, []any{tc.Type, tc.Count})
	}
	if err := writeSheet(f, SheetTypes, rows, bold); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{{"Stat", "Average"}}
	for _, s := range types.CanonicalStats {
		rows = append(rows, []any{s.Label(), res.StatAverage.Get(s)})
	}
	if err := writeSheet(f, SheetStats, rows, bold); err != nil {
		f.Close()
		return nil, err
	}

	if lines, err := insights.Build(res); err == nil {
		rows = [][]any{{"Insight"}}
		for _, l := range lines {
			rows = append(rows, []any{l})
		}
		if err := writeSheet(f, SheetInsights, rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("sheet %s header style: %w", sheet, err)
	}
	return nil
}
