package aggregator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"
	"pokedex-insights-go/internal/types"
)

// ErrEmptyInput is returned by consumers of a Result computed from no records.
var ErrEmptyInput = errors.New("empty record collection")

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Frequency is a type → count mapping kept in first-encountered order.
type Frequency []TypeCount

// Count returns the counter for t, 0 when t never occurred.
func (f Frequency) Count(t string) int {
	for _, tc := range f {
		if tc.Type == t {
			return tc.Count
		}
	}
	return 0
}

// Total is the number of type tags counted.
func (f Frequency) Total() int {
	n := 0
	for _, tc := range f {
		n += tc.Count
	}
	return n
}

// Ranked returns a copy sorted by count descending. Equal counts keep
// insertion order.
func (f Frequency) Ranked() Frequency {
	out := slices.Clone(f)
	slices.SortStableFunc(out, func(a, b TypeCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Extreme points at the record holding a min or max and its scaled value.
type Extreme struct {
	Record  *types.Pokemon `json:"-"`
	Name    string         `json:"name"`
	Value   float64        `json:"value"`
	Display string         `json:"display"`
}

type Extremes struct {
	Heaviest *Extreme `json:"heaviest"`
	Lightest *Extreme `json:"lightest"`
	Tallest  *Extreme `json:"tallest"`
	Shortest *Extreme `json:"shortest"`
}

type Result struct {
	Total                 int            `json:"total"`
	AverageBaseExperience int            `json:"average_base_experience"`
	TypeFrequency         Frequency      `json:"type_frequency"`
	StatAverage           types.StatLine `json:"stat_average"`
	Extremes              Extremes       `json:"extremes"`
	ModalType             string         `json:"modal_type"`
	ModalCount            int            `json:"modal_count"`
}

// Empty reports whether the result was computed from no records.
func (r Result) Empty() bool { return r.Total == 0 }

// DistinctTypes is the number of different type tags seen.
func (r Result) DistinctTypes() int { return len(r.TypeFrequency) }

// Aggregate derives the dashboard statistics from the full collection.
// An empty collection yields a zeroed Result rather than an error; callers
// that need extremes check Empty.
func Aggregate(records []types.Pokemon) Result {
	res := Result{Total: len(records)}

	index := map[string]int{}
	var freq Frequency
	statValues := make([][]float64, types.NumStats)
	var xp []float64

	for _, r := range records {
		for _, t := range r.Types {
			if i, ok := index[t]; ok {
				freq[i].Count++
				continue
			}
			index[t] = len(freq)
			freq = append(freq, TypeCount{Type: t, Count: 1})
		}
		for _, e := range r.Stats {
			if s, ok := types.StatByKey(e.Name); ok {
				statValues[s] = append(statValues[s], float64(e.BaseValue))
			}
		}
		if r.BaseExperience != nil {
			xp = append(xp, float64(*r.BaseExperience))
		}
	}
	res.TypeFrequency = freq

	for _, s := range types.CanonicalStats {
		res.StatAverage[s] = average(statValues[s], len(records))
	}
	res.AverageBaseExperience = average(xp, len(records))

	if len(records) == 0 {
		return res
	}

	byWeight := sortedIndexes(records, func(p types.Pokemon) int { return p.Weight })
	res.Extremes.Heaviest = extreme(records, byWeight[0], types.Pokemon.WeightKg)
	res.Extremes.Lightest = extreme(records, byWeight[len(byWeight)-1], types.Pokemon.WeightKg)

	byHeight := sortedIndexes(records, func(p types.Pokemon) int { return p.Height })
	res.Extremes.Tallest = extreme(records, byHeight[0], types.Pokemon.HeightMeters)
	res.Extremes.Shortest = extreme(records, byHeight[len(byHeight)-1], types.Pokemon.HeightMeters)

	if ranked := freq.Ranked(); len(ranked) > 0 {
		res.ModalType = ranked[0].Type
		res.ModalCount = ranked[0].Count
	}
	return res
}

// average divides the sum by n (not len(values)) and rounds half away from zero.
func average(values []float64, n int) int {
	if n == 0 {
		return 0
	}
	sum, err := stats.Sum(values)
	if err != nil {
		// stats reports empty input as an error; nothing reported sums to 0
		sum = 0
	}
	avg, err := stats.Round(sum/float64(n), 0)
	if err != nil {
		return 0
	}
	return int(avg)
}

// sortedIndexes returns record positions ordered by key descending, stable.
func sortedIndexes(records []types.Pokemon, key func(types.Pokemon) int) []int {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(key(records[b]), key(records[a]))
	})
	return idx
}

func extreme(records []types.Pokemon, i int, scaled func(types.Pokemon) float64) *Extreme {
	v := scaled(records[i])
	return &Extreme{
		Record:  &records[i],
		Name:    records[i].Name,
		Value:   v,
		Display: fmt.Sprintf("%.1f", v),
	}
}
