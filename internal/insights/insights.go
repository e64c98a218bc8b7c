package insights

import (
	"fmt"

	"pokedex-insights-go/internal/aggregator"
	"pokedex-insights-go/internal/charts"
)

// Build returns the highlight sentences shown next to the charts. It needs
// extremes, so an empty aggregate is rejected with aggregator.ErrEmptyInput.
func Build(res aggregator.Result) ([]string, error) {
	if res.Empty() {
		return nil, aggregator.ErrEmptyInput
	}
	s := charts.Build(res)
	x := res.Extremes
	var lines []string
	// no record carried a type list
	if top := s.Types.Top(); top != "" {
		lines = append(lines, fmt.Sprintf("%s is the most common type among these Pokémon.", top))
	}
	return append(lines,
		fmt.Sprintf("Pokémon have the highest average %s and lowest average %s.", s.Stats.Highest(), s.Stats.Lowest()),
		fmt.Sprintf("The heaviest Pokémon is %s at %skg.", x.Heaviest.Name, x.Heaviest.Display),
		fmt.Sprintf("The lightest Pokémon is %s at %skg.", x.Lightest.Name, x.Lightest.Display),
		fmt.Sprintf("The tallest Pokémon is %s at %sm.", x.Tallest.Name, x.Tallest.Display),
		fmt.Sprintf("The shortest Pokémon is %s at %sm.", x.Shortest.Name, x.Shortest.Display),
	), nil
}

type Card struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Facts groups the extremes and the modal type into display cards.
func Facts(res aggregator.Result) ([]Card, error) {
	if res.Empty() {
		return nil, aggregator.ErrEmptyInput
	}
	x := res.Extremes
	typeLines := []string{"Try filtering by type using the dropdown above to see Pokémon of a specific type!"}
	if res.ModalType != "" {
		typeLines = append([]string{
			fmt.Sprintf("The most common type is %s with %d Pokémon", res.ModalType, res.ModalCount),
		}, typeLines...)
	}
	return []Card{
		{
			Title: "Size Extremes",
			Lines: []string{
				fmt.Sprintf("The tallest Pokémon is %s at %sm", x.Tallest.Name, x.Tallest.Display),
				fmt.Sprintf("The shortest Pokémon is %s at %sm", x.Shortest.Name, x.Shortest.Display),
			},
		},
		{
			Title: "Weight Extremes",
			Lines: []string{
				fmt.Sprintf("The heaviest Pokémon is %s at %skg", x.Heaviest.Name, x.Heaviest.Display),
				fmt.Sprintf("The lightest Pokémon is %s at %skg", x.Lightest.Name, x.Lightest.Display),
			},
		},
		{
			Title: "Type Distribution",
			Lines: typeLines,
		},
	}, nil
}

// SummaryCard is one headline number.
type SummaryCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// Summary returns the headline numbers. A zeroed aggregate yields zeros.
func Summary(res aggregator.Result) []SummaryCard {
	return []SummaryCard{
		{Title: "Total Pokémon", Value: fmt.Sprint(res.Total), Icon: "🔴"},
		{Title: "Avg Base XP", Value: fmt.Sprint(res.AverageBaseExperience), Icon: "⚡"},
		{Title: "Types", Value: fmt.Sprint(res.DistinctTypes()), Icon: "🏆"},
	}
}
