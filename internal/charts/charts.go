package charts

import (
	"errors"
	"fmt"
	"math"

	"pokedex-insights-go/internal/aggregator"
	"pokedex-insights-go/internal/types"
)

// TopTypes caps the number of entries in the type distribution.
const TopTypes = 10

// One colour per slot of the type distribution, in ranking order.
var typePalette = [TopTypes]string{
	"#A8A878", "#F08030", "#6890F0", "#78C850", "#F8D030",
	"#A040A0", "#F85888", "#A8B820", "#B8A038", "#705898",
}

const (
	statFill   = "rgba(75, 192, 192, 0.6)"
	statBorder = "rgba(75, 192, 192, 1)"
)

type TypeSeries struct {
	Labels  []string `json:"labels"`
	Values  []int    `json:"values"`
	Percent []int    `json:"percent"`
	Colors  []string `json:"colors"`
}

type StatSeries struct {
	Keys   []string `json:"keys"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type Series struct {
	Types TypeSeries `json:"types"`
	Stats StatSeries `json:"stats"`
}

// Build shapes the aggregate into chart-ready parallel lists. A zeroed
// aggregate gives an empty type series and six zero stats.
func Build(res aggregator.Result) Series {
	return Series{Types: typeSeries(res.TypeFrequency), Stats: statSeries(res.StatAverage)}
}

func typeSeries(freq aggregator.Frequency) TypeSeries {
	ranked := freq.Ranked()
	if len(ranked) > TopTypes {
		ranked = ranked[:TopTypes]
	}
	ts := TypeSeries{
		Labels:  make([]string, 0, len(ranked)),
		Values:  make([]int, 0, len(ranked)),
		Percent: make([]int, 0, len(ranked)),
		Colors:  make([]string, 0, len(ranked)),
	}
	total := ranked.Total()
	for i, tc := range ranked {
		ts.Labels = append(ts.Labels, tc.Type)
		ts.Values = append(ts.Values, tc.Count)
		ts.Percent = append(ts.Percent, int(math.Round(float64(tc.Count)/float64(total)*100)))
		ts.Colors = append(ts.Colors, typePalette[i])
	}
	return ts
}

func statSeries(avg types.StatLine) StatSeries {
	ss := StatSeries{
		Keys:   make([]string, 0, types.NumStats),
		Labels: make([]string, 0, types.NumStats),
		Values: make([]int, 0, types.NumStats),
	}
	for _, s := range types.CanonicalStats {
		ss.Keys = append(ss.Keys, s.Key())
		ss.Labels = append(ss.Labels, s.Label())
		ss.Values = append(ss.Values, avg.Get(s))
	}
	return ss
}

// Top returns the leading type label, empty when the series is empty.
func (t TypeSeries) Top() string {
	if len(t.Labels) == 0 {
		return ""
	}
	return t.Labels[0]
}

// Highest returns the label with the largest value; ties go to the first.
func (s StatSeries) Highest() string {
	return s.pick(func(v, best int) bool { return v > best })
}

// Lowest returns the label with the smallest value; ties go to the first.
func (s StatSeries) Lowest() string {
	return s.pick(func(v, best int) bool { return v < best })
}

func (s StatSeries) pick(better func(v, best int) bool) string {
	if len(s.Values) == 0 {
		return ""
	}
	idx := 0
	for i, v := range s.Values {
		if better(v, s.Values[idx]) {
			idx = i
		}
	}
	return s.Labels[idx]
}

// Kind is a chart rendering style.
type Kind string

const (
	Pie   Kind = "pie"
	Bar   Kind = "bar"
	Line  Kind = "line"
	Radar Kind = "radar"
)

var (
	TypeKinds = []Kind{Pie, Bar}
	StatKinds = []Kind{Bar, Line, Radar}
)

// ErrUnsupportedKind rejects a chart kind the chart does not offer.
var ErrUnsupportedKind = errors.New("unsupported chart kind")

// ParseKind validates s against allowed. An empty s selects allowed[0].
func ParseKind(s string, allowed []Kind) (Kind, error) {
	if s == "" {
		return allowed[0], nil
	}
	for _, k := range allowed {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q (allowed: %v)", ErrUnsupportedKind, s, allowed)
}

// Config carries the presentation options of one chart.
type Config struct {
	Kind           Kind   `json:"kind"`
	Title          string `json:"title"`
	DatasetLabel   string `json:"dataset_label"`
	ShowLegend     bool   `json:"show_legend"`
	LegendPosition string `json:"legend_position,omitempty"`
	YMax           int    `json:"y_max,omitempty"`
	Fill           string `json:"fill,omitempty"`
	Border         string `json:"border,omitempty"`
}

type View struct {
	Series
	TypeChart Config `json:"type_chart"`
	StatChart Config `json:"stat_chart"`
}

// BuildView assembles series plus chart options for the requested kinds.
func BuildView(res aggregator.Result, typeKind, statKind string) (View, error) {
	tk, err := ParseKind(typeKind, TypeKinds)
	if err != nil {
		return View{}, fmt.Errorf("type chart: %w", err)
	}
	sk, err := ParseKind(statKind, StatKinds)
	if err != nil {
		return View{}, fmt.Errorf("stat chart: %w", err)
	}
	return View{
		Series: Build(res),
		TypeChart: Config{
			Kind:           tk,
			Title:          "Pokémon Type Distribution",
			DatasetLabel:   "Number of Pokémon",
			ShowLegend:     true,
			LegendPosition: "right",
		},
		StatChart: Config{
			Kind:         sk,
			Title:        "Average Base Stats",
			DatasetLabel: "Average Base Stat",
			YMax:         100,
			Fill:         statFill,
			Border:       statBorder,
		},
	}, nil
}
