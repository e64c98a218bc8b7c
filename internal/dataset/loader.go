package dataset

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"pokedex-insights-go/internal/logger"
	"pokedex-insights-go/internal/types"
)

// Snapshot is an offline record source backed by a workbook on disk,
// usually one written by Export.
type Snapshot struct {
	Path   string
	Logger *logger.Logger
}

func (s Snapshot) Records(ctx context.Context) ([]types.Pokemon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := s.Logger
	if log == nil {
		log = logger.Discard()
	}
	entry := log.Component("dataset.snapshot").WithField("path", s.Path)
	entry.Info("opening snapshot workbook")
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		entry.WithError(err).Error("open failed")
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	records, err := readRecords(f)
	if err != nil {
		return nil, err
	}
	entry.WithField("records", len(records)).Info("snapshot loaded")
	return records, nil
}

// Load reads records from a workbook stream.
func Load(r io.Reader) ([]types.Pokemon, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer f.Close()
	return readRecords(f)
}

type columns struct {
	id, name, types, height, weight, xp int
	stats                               [types.NumStats]int
}

func readRecords(f *excelize.File) ([]types.Pokemon, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, SheetPokemon) {
			sheet = s
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	cols := detectColumns(rows[0])
	if cols.name == -1 {
		return nil, fmt.Errorf("no name column in sheet %q", sheet)
	}

	out := make([]types.Pokemon, 0, len(rows)-1)
	for _, r := range rows[1:] {
		name := cell(r, cols.name)
		if name == "" {
			// blank rows carry nothing worth keeping
			continue
		}
		p := types.Pokemon{
			Name:   name,
			ID:     atoi(cell(r, cols.id)),
			Height: atoi(cell(r, cols.height)),
			Weight: atoi(cell(r, cols.weight)),
		}
		if v := cell(r, cols.types); v != "" {
			p.Types = strings.FieldsFunc(v, func(c rune) bool { return c == '/' || c == ',' || c == ' ' })
		}
		if v := cell(r, cols.xp); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				p.BaseExperience = &n
			}
		}
		for _, s := range types.CanonicalStats {
			v := cell(r, cols.stats[s])
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			p.Stats = append(p.Stats, types.StatEntry{Name: s.Key(), BaseValue: n})
		}
		out = append(out, p)
	}
	return out, nil
}

// detectColumns maps header names to indexes; -1 marks a missing column.
func detectColumns(header []string) columns {
	c := columns{id: -1, name: -1, types: -1, height: -1, weight: -1, xp: -1}
	for i := range c.stats {
		c.stats[i] = -1
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		if s, ok := statColumn(l); ok {
			if c.stats[s] == -1 {
				c.stats[s] = i
			}
			continue
		}
		switch {
		case l == "id" || l == "#" || strings.Contains(l, "number"):
			if c.id == -1 {
				c.id = i
			}
		case strings.Contains(l, "name"):
			if c.name == -1 {
				c.name = i
			}
		case strings.Contains(l, "type"):
			if c.types == -1 {
				c.types = i
			}
		case strings.Contains(l, "height"):
			c.height = i
		case strings.Contains(l, "weight"):
			c.weight = i
		case strings.Contains(l, "xp") || strings.Contains(l, "experience"):
			c.xp = i
		}
	}
	return c
}

func statColumn(l string) (types.Stat, bool) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(l)
	for _, s := range types.CanonicalStats {
		key := strings.ReplaceAll(s.Key(), "-", " ")
		if norm == key || norm == strings.ToLower(s.Label()) {
			return s, true
		}
	}
	return 0, false
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
