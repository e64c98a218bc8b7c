package detail

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"pokedex-insights-go/internal/types"
)

const (
	// MaxBaseStat is the value that fills a stat bar completely.
	MaxBaseStat = 255
	// MovesShown caps the move list; the rest is reported as a count.
	MovesShown = 20
)

type StatBar struct {
	Label        string  `json:"label"`
	Value        int     `json:"value"`
	WidthPercent float64 `json:"width_percent"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

type View struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	DisplayName    string    `json:"display_name"`
	Image          string    `json:"image,omitempty"`
	Types          []string  `json:"types"`
	Height         string    `json:"height"`
	Weight         string    `json:"weight"`
	BaseExperience string    `json:"base_experience"`
	Stats          []StatBar `json:"stats"`
	Abilities      []Ability `json:"abilities"`
	Moves          []string  `json:"moves"`
	MoreMoves      int       `json:"more_moves"`
}

// Build shapes one record for the detail page. Stats keep the order the
// source reported them in.
func Build(p types.Pokemon) View {
	v := View{
		ID:             p.ID,
		Name:           p.Name,
		DisplayName:    capitalize(p.Name),
		Image:          p.Sprites.OfficialArtwork,
		Types:          append([]string{}, p.Types...),
		Height:         fmt.Sprintf("%.1fm", p.HeightMeters()),
		Weight:         fmt.Sprintf("%.1fkg", p.WeightKg()),
		BaseExperience: "N/A",
		Stats:          make([]StatBar, 0, len(p.Stats)),
		Abilities:      make([]Ability, 0, len(p.Abilities)),
	}
	if v.Image == "" {
		v.Image = p.Sprites.FrontDefault
	}
	// zero renders as N/A too
	if p.BaseExperience != nil && *p.BaseExperience != 0 {
		v.BaseExperience = fmt.Sprint(*p.BaseExperience)
	}
	for _, s := range p.Stats {
		v.Stats = append(v.Stats, StatBar{
			Label:        types.StatLabel(s.Name),
			Value:        s.BaseValue,
			WidthPercent: math.Min(100, float64(s.BaseValue)/MaxBaseStat*100),
		})
	}
	for _, a := range p.Abilities {
		v.Abilities = append(v.Abilities, Ability{Name: titleWords(a.Name), Hidden: a.IsHidden})
	}
	moves := p.Moves
	if len(moves) > MovesShown {
		v.MoreMoves = len(moves) - MovesShown
		moves = moves[:MovesShown]
	}
	v.Moves = make([]string, 0, len(moves))
	for _, m := range moves {
		v.Moves = append(v.Moves, titleWords(m))
	}
	return v
}

// titleWords turns "solar-beam" into "Solar Beam".
func titleWords(s string) string {
	parts := strings.Split(s, "-")
	for i, w := range parts {
		parts[i] = capitalize(w)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	titler := cases.Title(language.English, cases.NoLower)
	for i := range s {
		if i > 0 {
			return titler.String(s[:i]) + s[i:]
		}
	}
	return titler.String(s)
}
